package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"lampyr/internal/ingest"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var output string
	var symlink bool

	cmd := &cobra.Command{
		Use:   "import CARD",
		Short: "Import frames from a camera card into a dated source tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			card, err := resolveRoot(args[0])
			if err != nil {
				return err
			}
			dest, err := resolveRoot(output)
			if err != nil {
				return err
			}
			return ctx.withLock(func() error {
				cfg, err := ctx.ensureConfig()
				if err != nil {
					return err
				}
				logger, err := ctx.ensureLogger()
				if err != nil {
					return err
				}
				runCtx, stop := signalContext()
				defer stop()

				report, err := ingest.New(cfg, logger).Import(runCtx, card, dest, symlink)
				if err != nil {
					return err
				}
				fmt.Printf("Imported %s, skipped %s, failed %s\n",
					humanize.Comma(int64(report.Imported)),
					humanize.Comma(int64(report.Skipped)),
					humanize.Comma(int64(report.Failed)),
				)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination root for the dated tree")
	cmd.Flags().BoolVar(&symlink, "symlink", false, "Link back to the card instead of copying")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
