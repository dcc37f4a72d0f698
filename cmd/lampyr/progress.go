package main

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"lampyr/internal/scanner"
)

func stderrIsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// attachProgress wires a terminal progress bar to the scanner. On
// non-terminal stderr the scanner's own log lines are the progress report.
func attachProgress(sc *scanner.Scanner, description string) {
	if !stderrIsTerminal() {
		return
	}
	var bar *progressbar.ProgressBar
	sc.OnProgress = func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetDescription(description),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
		}
		_ = bar.Set(done)
	}
}
