package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"seq/internal/diag"
	"seq/internal/diagfmt"
	"seq/internal/driver"
	"seq/internal/source"
)

// diagnosticFormats lists the values accepted by --diagnostics-format and check --format.
var diagnosticFormats = []string{"pretty", "json", "short", "golden"}

func validDiagnosticFormat(format string) error {
	if slices.Contains(diagnosticFormats, format) {
		return nil
	}
	return fmt.Errorf("unknown diagnostics format %q (expected %s)", format, strings.Join(diagnosticFormats, "|"))
}

// printResultDiagnostics renders the diagnostics of every result in order.
// Quiet drops everything below errors.
func printResultDiagnostics(w io.Writer, fs *source.FileSet, results []*driver.ExpandResult, s *settings, format string) error {
	merged := diag.NewBag(0)
	for _, res := range results {
		if res == nil || res.Bag == nil {
			continue
		}
		for _, d := range res.Bag.Items() {
			if s.quiet && !d.Severity.AtLeast(diag.SevError) {
				continue
			}
			merged.Add(d)
		}
	}
	switch format {
	case "json":
		return diagfmt.JSON(w, merged, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeRelative,
			IncludeNotes:     true,
			IncludeFixes:     true,
		})
	case "short", "golden":
		var out string
		if format == "short" {
			out = diag.FormatShortDiagnostics(merged.Items(), fs)
		} else {
			out = diag.FormatGoldenDiagnostics(merged.Items(), fs, true)
		}
		if out == "" {
			return nil
		}
		_, err := fmt.Fprintln(w, out)
		return err
	}
	if merged.Len() == 0 {
		return nil
	}
	diagfmt.Pretty(w, merged, fs, s.prettyOpts())
	return nil
}

type runSummary struct {
	files, sites, failed, errors, cached int
}

func summarize(results []*driver.ExpandResult) runSummary {
	var sum runSummary
	for _, res := range results {
		if res == nil {
			continue
		}
		sum.files++
		sum.sites += res.Sites
		sum.failed += res.Failed
		if res.Cached {
			sum.cached++
		}
		if res.Bag != nil {
			sum.errors += res.Bag.ErrorCount()
		}
	}
	return sum
}

func (s runSummary) String() string {
	msg := fmt.Sprintf("%d file(s), %d site(s) expanded", s.files, s.sites)
	if s.failed > 0 {
		msg += fmt.Sprintf(", %d failed", s.failed)
	}
	if s.cached > 0 {
		msg += fmt.Sprintf(", %d from cache", s.cached)
	}
	if s.errors > 0 {
		msg += fmt.Sprintf(", %d error(s)", s.errors)
	}
	return msg
}
