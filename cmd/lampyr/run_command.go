package main

import (
	"github.com/spf13/cobra"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var input string
	var output string
	var refine bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline: scan, classify, sort, optionally refine",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolveRoot(input)
			if err != nil {
				return err
			}
			dest, err := resolveRoot(output)
			if err != nil {
				return err
			}
			return ctx.withLock(func() error {
				runCtx, stop := signalContext()
				defer stop()

				_, assignments, report, err := ctx.classifyRoot(runCtx, root, dest)
				if err != nil {
					return err
				}
				printTally(assignments)
				printCopyReport(report)

				if refine {
					return ctx.refineRoot(runCtx, root, dest)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Source directory to scan")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination root for the sorted tree")
	cmd.Flags().BoolVar(&refine, "refine", false, "Also extract flash candidates after sorting")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
