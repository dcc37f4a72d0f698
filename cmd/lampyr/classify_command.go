package main

import (
	"github.com/spf13/cobra"
)

func newClassifyCommand(ctx *commandContext) *cobra.Command {
	var input string
	var output string

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Scan, classify, and sort frames into the destination tree",
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
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Source directory to scan")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination root for the sorted tree")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
