// ABOUTME: Shared helpers for CLI commands
// ABOUTME: Output writer, date parsing and positional id handling
package cli

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"
)

const dateLayout = "2006-01-02"

// stdout is where commands print user-facing output. Tests swap it.
var stdout io.Writer = os.Stdout

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
}

func parseDate(flagName, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q (want YYYY-MM-DD): %w", flagName, value, err)
	}
	return &t, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(dateLayout)
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

func truncate(value string, n int) string {
	r := []rune(value)
	if len(r) <= n {
		return value
	}
	return string(r[:n-1]) + "…"
}
