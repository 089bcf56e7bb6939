// Package formatter renders hotspot reports for terminal and machine
// consumption.
package formatter

import (
	"io"

	apperrors "github.com/flamegraph-analysis/pkg/errors"
	"github.com/flamegraph-analysis/pkg/model"
)

// ReportFormatter is the interface for report renderers.
type ReportFormatter interface {
	// Format writes the rendered report to the writer.
	Format(w io.Writer, report *model.HotspotReport) error

	// Name returns the format name as selected on the command line.
	Name() string
}

// New returns the formatter for a format name.
func New(format string) (ReportFormatter, error) {
	switch format {
	case "", "text":
		return NewTextFormatter(), nil
	case "json":
		return &JSONFormatter{Indent: true}, nil
	default:
		return nil, apperrors.New(apperrors.CodeInvalidInput, "unknown output format: "+format)
	}
}
