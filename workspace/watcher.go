package workspace

import (
	"context"
	"errors"
	"os"
	"time"
)

// Watcher polls a tree and regenerates files whose modification time
// advanced since the previous poll.
type Watcher struct {
	root         string
	cfg          Config
	opts         RunOptions
	pollInterval time.Duration
	modTimes     map[string]time.Time

	// OnBatch is called after every poll that processed files.
	OnBatch func(*Batch)
}

// NewWatcher returns a Watcher for root. Files are written as opts
// selects.
func NewWatcher(root string, cfg Config, opts RunOptions) *Watcher {
	return &Watcher{
		root:         root,
		cfg:          cfg,
		opts:         opts,
		pollInterval: 1 * time.Second,
		modTimes:     make(map[string]time.Time),
	}
}

// SetInterval changes the poll interval.
func (w *Watcher) SetInterval(d time.Duration) {
	w.pollInterval = d
}

// Run polls until ctx is done. The first poll processes every file.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	if err := w.poll(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := w.poll(ctx); err != nil {
				return err
			}
		}
	}
}

func (w *Watcher) poll(ctx context.Context) error {
	batch, err := w.Scan(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	if batch != nil && w.OnBatch != nil {
		w.OnBatch(batch)
	}
	return nil
}

// Scan processes the files that are new or modified since the previous
// scan and forgets files that disappeared. It returns nil when nothing
// needed processing.
func (w *Watcher) Scan(ctx context.Context) (*Batch, error) {
	files, err := Discover(w.root, w.cfg)
	if errors.Is(err, ErrNoFiles) {
		files, err = nil, nil
	}
	if err != nil {
		return nil, err
	}

	current := make(map[string]bool, len(files))
	var modified []string
	for _, path := range files {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		current[path] = true

		lastMod, known := w.modTimes[path]
		if !known || info.ModTime().After(lastMod) {
			w.modTimes[path] = info.ModTime()
			modified = append(modified, path)
		}
	}

	for path := range w.modTimes {
		if !current[path] {
			delete(w.modTimes, path)
			log.Debugf("%s: removed", path)
		}
	}

	if len(modified) == 0 {
		return nil, nil
	}

	batch, err := Run(ctx, modified, w.opts)
	if err != nil {
		return nil, err
	}

	// Our own writes must not trigger another pass.
	for _, r := range batch.Results {
		if r.Written != r.Path || r.Written == "" {
			continue
		}
		if info, err := os.Stat(r.Path); err == nil {
			w.modTimes[r.Path] = info.ModTime()
		}
	}
	return batch, nil
}
