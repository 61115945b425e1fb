// Package status renders the human-readable outcome of a synthesis run.
package status

import (
	"fmt"
	"io"
	"time"
)

type Report struct {
	SynthesizedAt time.Time
	Revision      string
	Summary       string
	Units         []string
}

func PrintReport(w io.Writer, r *Report) {
	_, _ = fmt.Fprintf(w, "Synthesized at: %s\n", r.SynthesizedAt.Format(time.RFC3339))
	if r.Revision != "" {
		_, _ = fmt.Fprintf(w, "Revision: %s\n", r.Revision)
	}
	for _, u := range r.Units {
		_, _ = fmt.Fprintf(w, "- %s\n", u)
	}
	if r.Summary != "" {
		_, _ = fmt.Fprintln(w, r.Summary)
	}
}
