package main

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"lampyr/internal/dedup"
)

func newDupesCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dupes DIR",
		Short: "Report near-duplicate frames in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveRoot(args[0])
			if err != nil {
				return err
			}
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

			pairs, err := dedup.New(cfg, logger).Find(runCtx, dir)
			if err != nil {
				return err
			}
			if len(pairs) == 0 {
				fmt.Println("No near-duplicates found")
				return nil
			}

			rows := make([][]string, len(pairs))
			for i, pair := range pairs {
				rows[i] = []string{pair.A, pair.B, strconv.Itoa(pair.Distance)}
			}
			fmt.Println(renderTable(
				[]string{"Frame", "Duplicate of", "Distance"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight},
			))
			fmt.Printf("%s near-duplicate pairs\n", humanize.Comma(int64(len(pairs))))
			return nil
		},
	}
	return cmd
}
