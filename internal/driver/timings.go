package driver

import (
	"encoding/json"
	"fmt"

	"seq/internal/diag"
	"seq/internal/observ"
	"seq/internal/source"
)

// timingNote is the JSON carried by the note of an ObsTimings diagnostic.
type timingNote struct {
	Kind string `json:"kind"`
	Path string `json:"path,omitempty"`
	observ.Report
}

// recordTimings attaches the per-file phase report to bag as an info
// diagnostic. A full bag is grown for it: timings are never dropped.
func recordTimings(bag *diag.Bag, path string, report observ.Report) {
	if bag == nil {
		return
	}
	note, err := json.Marshal(timingNote{Kind: "file", Path: path, Report: report})
	if err != nil {
		return
	}
	msg := fmt.Sprintf("timings (file): total %.2f ms", report.TotalMS)
	if path != "" {
		msg += ", " + path
	}
	one := diag.NewBag(1)
	one.Add(diag.New(diag.SevInfo, diag.ObsTimings, source.Span{}, msg).WithNote(source.Span{}, string(note)))
	bag.Merge(one)
}
