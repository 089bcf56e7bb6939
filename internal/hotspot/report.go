package hotspot

import (
	"sort"

	"github.com/flamegraph-analysis/internal/flamegraph"
	"github.com/flamegraph-analysis/pkg/model"
)

// Default report sizes, matching the original analyzer.
const (
	DefaultTopN         = 30
	DefaultFallbackTopN = 20
	DefaultCategoryTopN = 5
)

// DefaultRelevance is the substring set selecting domain-relevant frames.
var DefaultRelevance = []string{"mimecast/robin", "EmailDelivery", "EmailReceipt"}

// Options configures report building.
type Options struct {
	// Relevance holds the case-sensitive substrings that mark a frame as
	// domain-relevant.
	Relevance []string

	// TopN is the length of the ranked hotspot list.
	TopN int

	// FallbackTopN is the length of the overall list reported when no
	// frame matches the relevance filter.
	FallbackTopN int

	// CategoryTopN is the number of frames listed per category rollup.
	CategoryTopN int

	// Rules is the ordered category taxonomy; first match wins.
	Rules []Rule

	// LabelOrder fixes the category display order.
	LabelOrder []string
}

// DefaultOptions returns the options used by the original analyzer.
func DefaultOptions() Options {
	return Options{
		Relevance:    DefaultRelevance,
		TopN:         DefaultTopN,
		FallbackTopN: DefaultFallbackTopN,
		CategoryTopN: DefaultCategoryTopN,
		Rules:        DefaultRules(),
		LabelOrder:   DefaultLabelOrder(),
	}
}

type frameEntry struct {
	name    string
	samples int64
}

// BuildReport derives the hotspot report from aggregated frame counts.
//
// Frames matching the relevance filter are ranked by descending weight; ties
// keep their first-insertion order (stable sort, no secondary key). When no
// frame is relevant the report falls back to the top frames overall, which
// is a defined alternate mode rather than an error. All percentages degrade
// to 0 when their denominator is 0.
func BuildReport(fc *flamegraph.FrameCount, opts Options) *model.HotspotReport {
	total := fc.Total()

	relevant := make([]frameEntry, 0)
	isRelevant := ContainsAny(opts.Relevance...)
	for _, name := range fc.Frames() {
		if isRelevant(name) {
			relevant = append(relevant, frameEntry{name: name, samples: fc.Get(name)})
		}
	}

	if len(relevant) == 0 {
		return fallbackReport(fc, total, opts)
	}

	var relevantTotal int64
	for _, e := range relevant {
		relevantTotal += e.samples
	}

	sort.SliceStable(relevant, func(i, j int) bool {
		return relevant[i].samples > relevant[j].samples
	})

	report := &model.HotspotReport{
		TotalSamples:    total,
		RelevantSamples: relevantTotal,
	}

	topN := opts.TopN
	if topN > len(relevant) {
		topN = len(relevant)
	}
	for _, e := range relevant[:topN] {
		report.Ranked = append(report.Ranked, rankedFrame(e, total, relevantTotal))
	}

	report.Categories = buildRollups(relevant, total, relevantTotal, opts)

	return report
}

// fallbackReport lists the top frames overall when nothing matched the
// relevance filter.
func fallbackReport(fc *flamegraph.FrameCount, total int64, opts Options) *model.HotspotReport {
	all := make([]frameEntry, 0, fc.Len())
	for _, name := range fc.Frames() {
		all = append(all, frameEntry{name: name, samples: fc.Get(name)})
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].samples > all[j].samples
	})

	topN := opts.FallbackTopN
	if topN > len(all) {
		topN = len(all)
	}

	report := &model.HotspotReport{
		TotalSamples: total,
		Fallback:     true,
	}
	for _, e := range all[:topN] {
		report.Ranked = append(report.Ranked, rankedFrame(e, total, 0))
	}

	return report
}

// buildRollups partitions the relevant frames into categories and computes
// per-category totals and top frames. Every relevant frame lands in exactly
// one bucket; categories with no frames are omitted from the report.
func buildRollups(relevant []frameEntry, total, relevantTotal int64, opts Options) []model.CategoryRollup {
	buckets := make(map[string][]frameEntry)
	for _, e := range relevant {
		label := Classify(e.name, opts.Rules)
		buckets[label] = append(buckets[label], e)
	}

	var rollups []model.CategoryRollup
	for _, label := range opts.LabelOrder {
		frames, ok := buckets[label]
		if !ok {
			continue
		}

		var catTotal int64
		for _, e := range frames {
			catTotal += e.samples
		}

		rollup := model.CategoryRollup{
			Label:             label,
			Samples:           catTotal,
			PercentOfTotal:    percent(catTotal, total),
			PercentOfRelevant: percent(catTotal, relevantTotal),
		}

		sort.SliceStable(frames, func(i, j int) bool {
			return frames[i].samples > frames[j].samples
		})

		topN := opts.CategoryTopN
		if topN > len(frames) {
			topN = len(frames)
		}
		for _, e := range frames[:topN] {
			rollup.TopFrames = append(rollup.TopFrames, rankedFrame(e, total, relevantTotal))
		}

		rollups = append(rollups, rollup)
	}

	return rollups
}

func rankedFrame(e frameEntry, total, relevantTotal int64) model.RankedFrame {
	return model.RankedFrame{
		Name:              e.name,
		Samples:           e.samples,
		PercentOfTotal:    percent(e.samples, total),
		PercentOfRelevant: percent(e.samples, relevantTotal),
	}
}

// percent computes part/whole as a percentage, degrading to 0 when the
// denominator is 0.
func percent(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
