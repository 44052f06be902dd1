package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"

	"localopts/internal/errors"
	"localopts/internal/ir"
)

// loadModule reads and builds an IR file. Diagnostics are written to
// errOut; the returned error is non-nil when any of them is an error.
func loadModule(path string, errOut io.Writer) (*ir.Module, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	m, diags := ir.ParseModule(path, string(source))
	if len(diags) > 0 {
		reporter := errors.NewErrorReporter(path, string(source))
		fmt.Fprint(errOut, reporter.FormatErrors(diags))
	}
	if errors.HasErrors(diags) {
		return nil, fmt.Errorf("%s: %d diagnostic(s), IR not accepted", path, len(diags))
	}
	return m, nil
}

// printReport writes one line per pass result
func printReport(w io.Writer, report ir.PipelineReport) {
	changed := color.New(color.FgGreen).SprintFunc()
	unchanged := color.New(color.Faint).SprintFunc()

	for _, res := range report.Results {
		status := unchanged("unchanged")
		if res.Changed {
			status = changed("changed")
		}
		fmt.Fprintf(w, "  %-20s %s (%s)\n", res.Pass, status, formatDuration(res.Duration))
	}
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
