// Package analyzer wires the flamegraph parsing stages into one analysis
// pipeline.
package analyzer

import (
	"context"
	"io"

	"github.com/flamegraph-analysis/pkg/model"
)

// Analyzer is the interface for report analyzers.
type Analyzer interface {
	// Analyze parses the report document and returns the hotspot report.
	Analyze(ctx context.Context, document string) (*model.HotspotReport, error)

	// AnalyzeFromReader reads the whole document from the reader first.
	AnalyzeFromReader(ctx context.Context, reader io.Reader) (*model.HotspotReport, error)

	// Name returns the name of this analyzer.
	Name() string
}
