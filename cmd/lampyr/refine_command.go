package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"lampyr/internal/blob"
	"lampyr/internal/organize"
)

func newRefineCommand(ctx *commandContext) *cobra.Command {
	var input string
	var output string

	cmd := &cobra.Command{
		Use:   "refine",
		Short: "Extract isolated flash candidates into the flash bucket",
		Long: "Refine runs the extended kurtosis scan, keeps isolated high-kurtosis\n" +
			"frames whose bright region is a compact spot, and copies them into\n" +
			"the flash bucket of the destination tree.",
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
				return ctx.refineRoot(runCtx, root, dest)
			})
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Source directory to scan")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination root for the sorted tree")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func (c *commandContext) refineRoot(runCtx context.Context, root, dest string) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return err
	}

	table, err := c.scanRoot(runCtx, root, true)
	if err != nil {
		return err
	}
	candidates, err := blob.New(cfg, logger).Refine(runCtx, table)
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		fmt.Println("No flash candidates found")
		return nil
	}

	indices := make([]int, len(candidates))
	rows := make([][]string, len(candidates))
	for i, cand := range candidates {
		indices[i] = cand.Index
		rec := table.Records[cand.Index]
		rows[i] = []string{
			rec.Path(),
			strconv.Itoa(cand.BlobCount),
			strconv.Itoa(cand.LargestArea),
			formatFloat(*rec.Kurtosis),
		}
	}
	fmt.Println(renderTable(
		[]string{"Frame", "Blobs", "Largest area", "Kurtosis"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight},
	))

	report, err := organize.New(cfg, logger).OrganizeCandidates(runCtx, table, indices, dest)
	if err != nil {
		return err
	}
	printCopyReport(report)
	return nil
}
