package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/flamegraph-analysis/pkg/model"
)

const bannerWidth = 100

// DefaultDisplayWidth is the truncation width for frame names in category
// rollups.
const DefaultDisplayWidth = 70

// TextFormatter renders a report in the classic terminal layout: a ranked
// hotspot list followed by per-category rollups.
type TextFormatter struct {
	// DisplayWidth truncates frame names in category rollups. Ranked list
	// entries are never truncated.
	DisplayWidth int
}

// NewTextFormatter creates a text formatter with the default display width.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{DisplayWidth: DefaultDisplayWidth}
}

// Name returns the format name as selected on the command line.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format writes the rendered report to the writer.
func (f *TextFormatter) Format(w io.Writer, report *model.HotspotReport) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Total samples: %s\n\n", comma(report.TotalSamples))

	if report.Fallback {
		f.writeFallback(&b, report)
	} else {
		f.writeRanked(&b, report)
		f.writeCategories(&b, report)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// writeFallback lists the top frames overall when nothing matched the
// relevance filter.
func (f *TextFormatter) writeFallback(b *strings.Builder, report *model.HotspotReport) {
	fmt.Fprintf(b, "No relevant frames found.\n\n")
	fmt.Fprintf(b, "Top %d frames overall:\n", len(report.Ranked))
	for _, frame := range report.Ranked {
		fmt.Fprintf(b, "  %6s (%5.2f%%)  %s\n", comma(frame.Samples), frame.PercentOfTotal, frame.Name)
	}
}

func (f *TextFormatter) writeRanked(b *strings.Builder, report *model.HotspotReport) {
	banner := strings.Repeat("=", bannerWidth)

	fmt.Fprintf(b, "%s\n", banner)
	fmt.Fprintf(b, "HOTSPOTS (sorted by sample count)\n")
	fmt.Fprintf(b, "%s\n\n", banner)

	for i, frame := range report.Ranked {
		fmt.Fprintf(b, "%2d. %6s samples (%5.2f%% total, %5.2f%% relevant)\n",
			i+1, comma(frame.Samples), frame.PercentOfTotal, frame.PercentOfRelevant)
		fmt.Fprintf(b, "    %s\n\n", frame.Name)
	}

	relevantPct := 0.0
	if report.TotalSamples > 0 {
		relevantPct = float64(report.RelevantSamples) / float64(report.TotalSamples) * 100
	}
	fmt.Fprintf(b, "%s\n", banner)
	fmt.Fprintf(b, "Total relevant samples: %s / %s (%.2f%%)\n",
		comma(report.RelevantSamples), comma(report.TotalSamples), relevantPct)
	fmt.Fprintf(b, "%s\n", banner)
}

func (f *TextFormatter) writeCategories(b *strings.Builder, report *model.HotspotReport) {
	if len(report.Categories) == 0 {
		return
	}

	banner := strings.Repeat("=", bannerWidth)

	fmt.Fprintf(b, "\n\n%s\n", banner)
	fmt.Fprintf(b, "HOTSPOT CATEGORIES\n")
	fmt.Fprintf(b, "%s\n\n", banner)

	width := f.DisplayWidth
	if width <= 0 {
		width = DefaultDisplayWidth
	}

	for _, cat := range report.Categories {
		fmt.Fprintf(b, "%s\n", cat.Label)
		fmt.Fprintf(b, "  Total: %s samples (%5.2f%% of all, %5.2f%% of relevant)\n",
			comma(cat.Samples), cat.PercentOfTotal, cat.PercentOfRelevant)
		fmt.Fprintf(b, "  Top frames:\n")
		for _, frame := range cat.TopFrames {
			// Share of the category, not of the whole profile.
			share := 0.0
			if cat.Samples > 0 {
				share = float64(frame.Samples) / float64(cat.Samples) * 100
			}
			fmt.Fprintf(b, "    %6s (%5.1f%%)  %s\n",
				comma(frame.Samples), share, truncateString(lastSegment(frame.Name), width))
		}
		fmt.Fprintf(b, "\n")
	}
}

// comma formats an integer with thousands separators.
func comma(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// lastSegment returns the part of the frame name after the last slash,
// which is the class and method without the package path.
func lastSegment(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}

// truncateString truncates a string to the given number of characters.
func truncateString(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
