package repository

import (
	"time"

	"github.com/flamegraph-analysis/pkg/model"
)

// AnalysisRunRow represents the analysis_runs table.
type AnalysisRunRow struct {
	ID              int64           `gorm:"column:id;primaryKey;autoIncrement"`
	ReportPath      string          `gorm:"column:report_path;type:varchar(512)"`
	PoolSize        int             `gorm:"column:pool_size"`
	TotalSamples    int64           `gorm:"column:total_samples"`
	RelevantSamples int64           `gorm:"column:relevant_samples"`
	Fallback        bool            `gorm:"column:fallback"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
	Hotspots        []RunHotspotRow `gorm:"foreignKey:RunID"`
}

// TableName returns the table name for AnalysisRunRow.
func (AnalysisRunRow) TableName() string {
	return "analysis_runs"
}

// RunHotspotRow represents the run_hotspots table.
type RunHotspotRow struct {
	ID      int64  `gorm:"column:id;primaryKey;autoIncrement"`
	RunID   int64  `gorm:"column:run_id;index"`
	Rank    int    `gorm:"column:rank_no"`
	Frame   string `gorm:"column:frame;type:text"`
	Samples int64  `gorm:"column:samples"`
	// Category may be empty for fallback runs, which have no taxonomy.
	Category string `gorm:"column:category;type:varchar(128)"`
}

// TableName returns the table name for RunHotspotRow.
func (RunHotspotRow) TableName() string {
	return "run_hotspots"
}

// ToModel converts AnalysisRunRow to model.AnalysisRun.
func (r *AnalysisRunRow) ToModel() *model.AnalysisRun {
	run := &model.AnalysisRun{
		ID:              r.ID,
		ReportPath:      r.ReportPath,
		PoolSize:        r.PoolSize,
		TotalSamples:    r.TotalSamples,
		RelevantSamples: r.RelevantSamples,
		Fallback:        r.Fallback,
		CreatedAt:       r.CreatedAt,
	}
	for _, h := range r.Hotspots {
		run.Hotspots = append(run.Hotspots, model.HotspotRecord{
			Rank:     h.Rank,
			Frame:    h.Frame,
			Samples:  h.Samples,
			Category: h.Category,
		})
	}
	return run
}

// rowFromModel converts model.AnalysisRun to AnalysisRunRow.
func rowFromModel(run *model.AnalysisRun) *AnalysisRunRow {
	row := &AnalysisRunRow{
		ID:              run.ID,
		ReportPath:      run.ReportPath,
		PoolSize:        run.PoolSize,
		TotalSamples:    run.TotalSamples,
		RelevantSamples: run.RelevantSamples,
		Fallback:        run.Fallback,
	}
	for _, h := range run.Hotspots {
		row.Hotspots = append(row.Hotspots, RunHotspotRow{
			Rank:     h.Rank,
			Frame:    h.Frame,
			Samples:  h.Samples,
			Category: h.Category,
		})
	}
	return row
}
