package formatter

import (
	"encoding/json"
	"io"

	"github.com/flamegraph-analysis/pkg/model"
)

// JSONFormatter renders a report as JSON for machine consumption.
type JSONFormatter struct {
	Indent bool
}

// Name returns the format name as selected on the command line.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Format writes the report as JSON to the writer.
func (f *JSONFormatter) Format(w io.Writer, report *model.HotspotReport) error {
	enc := json.NewEncoder(w)
	if f.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(report)
}
