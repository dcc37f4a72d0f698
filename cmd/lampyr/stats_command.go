package main

import (
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show stored statistics for a scanned directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolveRoot(input)
			if err != nil {
				return err
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			table, err := store.TableForRoot(cmd.Context(), root)
			if err != nil {
				return err
			}
			if table.Len() == 0 {
				fmt.Println("No stored statistics; run `lampyr scan` first")
				return nil
			}

			rows := make([][]string, 0, table.Len())
			for _, rec := range table.Records {
				gray := ""
				if rec.Grayscale {
					gray = "yes"
				}
				kurtosis := ""
				if rec.Kurtosis != nil {
					kurtosis = formatFloat(*rec.Kurtosis)
				}
				rows = append(rows, []string{
					filepath.Base(rec.Folder),
					rec.Name,
					gray,
					formatFloat(rec.Mean),
					formatFloat(rec.Std),
					formatFloat(rec.Max),
					kurtosis,
				})
			}
			fmt.Println(renderTable(
				[]string{"Folder", "Frame", "Gray", "Mean", "Std", "Max", "Kurtosis"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight},
			))
			fmt.Printf("%s frames\n", humanize.Comma(int64(table.Len())))
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Scanned source directory")
	_ = cmd.MarkFlagRequired("input")

	cmd.AddCommand(newStatsClearCommand(ctx))
	return cmd
}

func newStatsClearCommand(ctx *commandContext) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete stored statistics for a directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolveRoot(input)
			if err != nil {
				return err
			}
			return ctx.withLock(func() error {
				store, err := ctx.openStore()
				if err != nil {
					return err
				}
				defer store.Close()

				removed, err := store.ClearRoot(cmd.Context(), root)
				if err != nil {
					return err
				}
				fmt.Printf("Removed %s stored records\n", humanize.Comma(removed))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Scanned source directory")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
