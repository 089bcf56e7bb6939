// Package model defines the shared data types exchanged between the
// analysis pipeline, the formatters, and the run repository.
package model

// RankedFrame is one frame in a ranked hotspot list.
type RankedFrame struct {
	Name              string  `json:"name"`
	Samples           int64   `json:"samples"`
	PercentOfTotal    float64 `json:"pct_total"`
	PercentOfRelevant float64 `json:"pct_relevant"`
}

// CategoryRollup aggregates the relevant frames assigned to one category.
type CategoryRollup struct {
	Label             string        `json:"label"`
	Samples           int64         `json:"samples"`
	PercentOfTotal    float64       `json:"pct_total"`
	PercentOfRelevant float64       `json:"pct_relevant"`
	TopFrames         []RankedFrame `json:"top_frames"`
}

// HotspotReport is the derived, read-only result of one analysis run.
//
// When Fallback is true no frame matched the relevance filter and Ranked
// holds the top frames overall instead of the relevant subset; Categories
// is empty in that mode.
type HotspotReport struct {
	TotalSamples    int64            `json:"total_samples"`
	RelevantSamples int64            `json:"relevant_samples"`
	PoolSize        int              `json:"pool_size"`
	Fallback        bool             `json:"fallback"`
	Ranked          []RankedFrame    `json:"ranked"`
	Categories      []CategoryRollup `json:"categories"`
}
