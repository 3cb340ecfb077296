package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/tsdoc/workspace"
)

func newCheckCmd() *cobra.Command {
	var jobs int

	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Report files whose documentation comments lack tags",
		Long: `Report files whose documentation comments lack tags without
modifying them. Exits with status 1 when any file would change.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(args[0])
			if err != nil {
				return err
			}
			opts := cfg.RunOptions()
			opts.Output = workspace.Keep
			if cmd.Flags().Changed("jobs") {
				opts.Jobs = jobs
			}

			paths, err := discoverAll(args, cfg)
			if err != nil {
				return err
			}
			batch, err := workspace.Run(cmd.Context(), paths, opts)
			if err != nil {
				return err
			}

			printBatch(cmd.OutOrStdout(), batch)
			if err := batch.Check(); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return err
			}
			if failed := batch.Failed(); len(failed) > 0 {
				return fmt.Errorf("%d of %d files failed", len(failed), len(batch.Results))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "files processed in parallel (0 = number of CPUs)")

	return cmd
}
