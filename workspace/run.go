package workspace

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/tsdoc/edit"
	"github.com/dhamidi/tsdoc/jsdoc"
)

// ErrChanged is returned by Batch.Check when a file lacks tags.
var ErrChanged = errors.New("documentation tags missing")

// Output selects where augmented files go.
type Output int

const (
	// Keep leaves files alone and only reports results.
	Keep Output = iota
	// InPlace rewrites changed files.
	InPlace
	// Suffixed writes changed files next to the original, with the
	// suffix appended to the name.
	Suffixed
)

// RunOptions configure a batch.
type RunOptions struct {
	Jobs     int // 0 means GOMAXPROCS
	Output   Output
	Suffix   string
	Generate jsdoc.Options
}

// RunOptions returns the batch options selected by the configuration.
func (c Config) RunOptions() RunOptions {
	opts := RunOptions{
		Jobs:     c.Generate.Jobs,
		Generate: c.Options(),
	}
	if c.Generate.Suffix != "" {
		opts.Output = Suffixed
		opts.Suffix = c.Generate.Suffix
	}
	return opts
}

// Result is the outcome for one file.
type Result struct {
	Path       string
	Written    string // file written, empty when nothing was written
	Insertions int
	Changed    bool
	Augmented  string
	Err        error
}

// Batch is the outcome of Run.
type Batch struct {
	Results []Result
	Elapsed time.Duration
}

// Changed returns the results of files that lack tags.
func (b *Batch) Changed() []Result {
	var out []Result
	for _, r := range b.Results {
		if r.Err == nil && r.Changed {
			out = append(out, r)
		}
	}
	return out
}

// Failed returns the results of files that could not be processed.
func (b *Batch) Failed() []Result {
	var out []Result
	for _, r := range b.Results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}

// Check returns an error wrapping ErrChanged when a file lacks tags.
func (b *Batch) Check() error {
	if n := len(b.Changed()); n > 0 {
		return fmt.Errorf("%d of %d files: %w", n, len(b.Results), ErrChanged)
	}
	return nil
}

// Run generates documentation tags for every path. Files are processed
// in parallel; a file that cannot be read or written is reported in its
// Result and does not stop the others. Run only fails when ctx is
// cancelled.
func Run(ctx context.Context, paths []string, opts RunOptions) (*Batch, error) {
	start := time.Now()
	batch := &Batch{Results: make([]Result, len(paths))}
	if len(paths) == 0 {
		return batch, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			batch.Results[i] = processFile(path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	batch.Elapsed = time.Since(start)
	log.Infof("processed %d files in %s", len(paths), batch.Elapsed)
	return batch, nil
}

func processFile(path string, opts RunOptions) Result {
	res := Result{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Warningf("%s: %s", path, err)
		res.Err = fmt.Errorf("read: %w", err)
		return res
	}

	text := string(data)
	ins := jsdoc.Insertions(text, opts.Generate)
	res.Insertions = len(ins)
	res.Augmented = edit.Apply(text, ins)
	res.Changed = res.Augmented != text
	log.Debugf("%s: %d insertions", path, res.Insertions)

	if !res.Changed {
		return res
	}

	var target string
	switch opts.Output {
	case InPlace:
		target = path
	case Suffixed:
		target = path + opts.Suffix
	default:
		return res
	}

	if err := writeFile(target, res.Augmented); err != nil {
		log.Warningf("%s: %s", target, err)
		res.Err = fmt.Errorf("write: %w", err)
		return res
	}
	res.Written = target
	return res
}

// writeFile replaces path keeping the permissions of an existing file.
func writeFile(path, contents string) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	return os.WriteFile(path, []byte(contents), mode)
}
