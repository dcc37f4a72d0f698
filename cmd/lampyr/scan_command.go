package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var input string
	var kurtosis bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Compute per-frame statistics for a source directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolveRoot(input)
			if err != nil {
				return err
			}
			return ctx.withLock(func() error {
				runCtx, stop := signalContext()
				defer stop()

				started := time.Now()
				table, err := ctx.scanRoot(runCtx, root, kurtosis)
				if err != nil {
					return err
				}
				grayscale := 0
				for _, rec := range table.Records {
					if rec.Grayscale {
						grayscale++
					}
				}
				fmt.Printf("Scanned %s frames (%s grayscale) in %s\n",
					humanize.Comma(int64(table.Len())),
					humanize.Comma(int64(grayscale)),
					time.Since(started).Round(time.Millisecond),
				)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Source directory to scan")
	cmd.Flags().BoolVar(&kurtosis, "kurtosis", false, "Run the extended kurtosis pass")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
