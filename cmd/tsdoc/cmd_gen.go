package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/dhamidi/tsdoc/jsdoc"
	"github.com/dhamidi/tsdoc/workspace"
)

func newGenCmd() *cobra.Command {
	var (
		write            bool
		suffix           string
		stats            bool
		watch            bool
		interval         time.Duration
		jobs             int
		ignoreInheritDoc bool
	)

	cmd := &cobra.Command{
		Use:   "gen [path...]",
		Short: "Add missing JSDoc tags to TypeScript sources",
		Long: `Add missing JSDoc tags to the classes, interfaces and members of
TypeScript sources. Existing text is never removed.

With a single file, the augmented source is printed to stdout. With no
argument, the source is read from stdin. Directories are searched for
.ts and .tsx files, honouring .gitignore and .tsdoc.toml.

Use -w to rewrite files in place, or --suffix to write <name><suffix>
next to each file. --watch keeps polling the tree for changes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				if write || watch {
					return fmt.Errorf("-w and --watch require a path")
				}
				return genStdin(cmd.InOrStdin(), cmd.OutOrStdout(), jsdoc.Options{IgnoreInheritDoc: ignoreInheritDoc})
			}

			cfg, err := loadConfig(args[0])
			if err != nil {
				return err
			}

			opts := cfg.RunOptions()
			if cmd.Flags().Changed("jobs") {
				opts.Jobs = jobs
			}
			if cmd.Flags().Changed("ignore-inheritdoc") {
				opts.Generate.IgnoreInheritDoc = ignoreInheritDoc
			}
			if cmd.Flags().Changed("suffix") {
				opts.Suffix = suffix
				opts.Output = workspace.Keep
				if suffix != "" {
					opts.Output = workspace.Suffixed
				}
			}
			if write {
				opts.Output = workspace.InPlace
			}

			if watch {
				if opts.Output != workspace.InPlace {
					return fmt.Errorf("--watch requires -w")
				}
				return genWatch(cmd, args, cfg, opts, interval)
			}

			paths, err := discoverAll(args, cfg)
			if err != nil {
				return err
			}

			if opts.Output == workspace.Keep && len(paths) != 1 {
				return fmt.Errorf("%d files found: use -w or --suffix to write them", len(paths))
			}

			batch, err := workspace.Run(cmd.Context(), paths, opts)
			if err != nil {
				return err
			}

			if opts.Output == workspace.Keep {
				r := batch.Results[0]
				if r.Err != nil {
					return r.Err
				}
				if _, err := io.WriteString(cmd.OutOrStdout(), r.Augmented); err != nil {
					return err
				}
			} else {
				printBatch(cmd.ErrOrStderr(), batch)
			}

			if stats {
				printStats(cmd.ErrOrStderr(), batch)
			}
			if failed := batch.Failed(); len(failed) > 0 {
				return fmt.Errorf("%d of %d files failed", len(failed), len(batch.Results))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "rewrite files in place")
	cmd.Flags().StringVar(&suffix, "suffix", "", "write <name><suffix> next to each file")
	cmd.Flags().BoolVar(&stats, "stats", false, "print the number of files and the elapsed time")
	cmd.Flags().BoolVar(&watch, "watch", false, "keep polling for modified files")
	cmd.Flags().DurationVar(&interval, "interval", time.Second, "poll interval for --watch")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "files processed in parallel (0 = number of CPUs)")
	cmd.Flags().BoolVar(&ignoreInheritDoc, "ignore-inheritdoc", false, "complete comments containing @inheritDoc")

	return cmd
}

func genStdin(r io.Reader, w io.Writer, opts jsdoc.Options) error {
	source, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	_, err = io.WriteString(w, jsdoc.GenerateWith(string(source), opts))
	return err
}

func genWatch(cmd *cobra.Command, args []string, cfg workspace.Config, opts workspace.RunOptions, interval time.Duration) error {
	if len(args) != 1 {
		return fmt.Errorf("--watch takes exactly one path")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	w := workspace.NewWatcher(args[0], cfg, opts)
	w.SetInterval(interval)
	w.OnBatch = func(batch *workspace.Batch) {
		printBatch(cmd.ErrOrStderr(), batch)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "watching %s\n", args[0])
	return w.Run(ctx)
}
