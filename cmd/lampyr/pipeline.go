package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"

	"lampyr/internal/classify"
	"lampyr/internal/organize"
	"lampyr/internal/scanner"
	"lampyr/internal/stats"
)

// scanRoot runs a scan over root, with or without the extended kurtosis pass,
// and returns the ordered stats table.
func (c *commandContext) scanRoot(ctx context.Context, root string, kurtosis bool) (*stats.Table, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	store, err := c.openStore()
	if err != nil {
		return nil, err
	}
	defer store.Close()

	if kurtosis {
		cfg.Scan.Kurtosis = true
	}
	sc := scanner.New(cfg, store, logger)
	attachProgress(sc, "scanning")
	return sc.Scan(ctx, root)
}

// classifyRoot scans root and materializes the classification at dest.
func (c *commandContext) classifyRoot(ctx context.Context, root, dest string) (*stats.Table, []classify.Category, *organize.Report, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, nil, nil, err
	}

	table, err := c.scanRoot(ctx, root, false)
	if err != nil {
		return nil, nil, nil, err
	}
	assignments := classify.New(cfg.Thresholds).Assign(table)
	report, err := organize.New(cfg, logger).Organize(ctx, table, assignments, dest)
	if err != nil {
		return table, assignments, report, err
	}
	return table, assignments, report, nil
}

func printTally(assignments []classify.Category) {
	counts := classify.Tally(assignments)
	rows := make([][]string, 0, 4)
	for _, cat := range classify.Categories() {
		rows = append(rows, []string{string(cat), humanize.Comma(int64(counts[cat]))})
	}
	fmt.Println(renderTable(
		[]string{"Category", "Frames"},
		rows,
		[]columnAlignment{alignLeft, alignRight},
	))
}

func printCopyReport(report *organize.Report) {
	fmt.Printf("Copied %s, skipped %s, failed %s\n",
		humanize.Comma(int64(report.Copied)),
		humanize.Comma(int64(report.Skipped)),
		humanize.Comma(int64(report.Failed)),
	)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
