package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lampyr/internal/report"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var input string
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the per-frame metadata table as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolveRoot(input)
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			return ctx.withLock(func() error {
				runCtx, stop := signalContext()
				defer stop()

				table, err := ctx.scanRoot(runCtx, root, false)
				if err != nil {
					return err
				}

				out := os.Stdout
				if output != "" && output != "-" {
					path, err := resolveRoot(output)
					if err != nil {
						return err
					}
					file, err := os.Create(path)
					if err != nil {
						return fmt.Errorf("create export file: %w", err)
					}
					defer file.Close()
					out = file
				}
				return report.New(report.ExifParser{}, logger).Export(runCtx, table, out)
			})
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Source directory to export")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
