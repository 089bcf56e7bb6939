package model

import "time"

// AnalysisRun records one completed analysis for the history database.
type AnalysisRun struct {
	ID              int64           `json:"id"`
	ReportPath      string          `json:"report_path"`
	PoolSize        int             `json:"pool_size"`
	TotalSamples    int64           `json:"total_samples"`
	RelevantSamples int64           `json:"relevant_samples"`
	Fallback        bool            `json:"fallback"`
	CreatedAt       time.Time       `json:"created_at"`
	Hotspots        []HotspotRecord `json:"hotspots,omitempty"`
}

// HotspotRecord is one ranked frame persisted with its run.
type HotspotRecord struct {
	Rank     int    `json:"rank"`
	Frame    string `json:"frame"`
	Samples  int64  `json:"samples"`
	Category string `json:"category,omitempty"`
}

// RunFromReport builds an AnalysisRun from a finished report.
func RunFromReport(reportPath string, report *HotspotReport) *AnalysisRun {
	run := &AnalysisRun{
		ReportPath:      reportPath,
		PoolSize:        report.PoolSize,
		TotalSamples:    report.TotalSamples,
		RelevantSamples: report.RelevantSamples,
		Fallback:        report.Fallback,
	}
	for i, frame := range report.Ranked {
		run.Hotspots = append(run.Hotspots, HotspotRecord{
			Rank:    i + 1,
			Frame:   frame.Name,
			Samples: frame.Samples,
		})
	}
	return run
}
