package analyzer

import (
	"context"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/flamegraph-analysis/internal/flamegraph"
	"github.com/flamegraph-analysis/internal/hotspot"
	apperrors "github.com/flamegraph-analysis/pkg/errors"
	"github.com/flamegraph-analysis/pkg/model"
	"github.com/flamegraph-analysis/pkg/utils"
)

const tracerName = "flamegraph-analyzer"

// FlamegraphAnalyzer runs the four pipeline stages over one report document:
// pool decompression, reference extraction, aggregation, and report building.
// Each stage is a pure transform; the analyzer holds no state between runs.
type FlamegraphAnalyzer struct {
	opts hotspot.Options
	log  utils.Logger
}

// NewFlamegraphAnalyzer creates an analyzer with the given report options.
func NewFlamegraphAnalyzer(opts hotspot.Options, log utils.Logger) *FlamegraphAnalyzer {
	if log == nil {
		log = &utils.NullLogger{}
	}
	return &FlamegraphAnalyzer{opts: opts, log: log}
}

// Name returns the name of this analyzer.
func (a *FlamegraphAnalyzer) Name() string {
	return "flamegraph-html"
}

// Analyze parses the report document and returns the hotspot report.
func (a *FlamegraphAnalyzer) Analyze(ctx context.Context, document string) (*model.HotspotReport, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "analyze")
	defer span.End()

	pool, err := flamegraph.ExtractPool(document)
	if err != nil {
		return nil, err
	}
	a.log.Info("Extracted %d frames from constant pool", len(pool))

	refs := flamegraph.ExtractRefs(document)
	a.log.Debug("Extracted %d frame references", len(refs))

	counts := flamegraph.Aggregate(pool, refs)
	a.log.Debug("Aggregated %d distinct frames, %d total samples", counts.Len(), counts.Total())

	report := hotspot.BuildReport(counts, a.opts)
	report.PoolSize = len(pool)

	span.SetAttributes(
		attribute.Int("report.pool_size", len(pool)),
		attribute.Int64("report.total_samples", report.TotalSamples),
		attribute.Bool("report.fallback", report.Fallback),
	)

	return report, nil
}

// AnalyzeFromReader reads the whole document from the reader, then analyzes
// it. The report format is not streamable: the constant pool and the
// rendering calls may appear anywhere in the document.
func (a *FlamegraphAnalyzer) AnalyzeFromReader(ctx context.Context, reader io.Reader) (*model.HotspotReport, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "failed to read report document", err)
	}
	return a.Analyze(ctx, string(data))
}
