package models

import "time"

// SectorDefinition names a sector and its ordered instrument universe.
// Supplied externally (config); never mutated by the pipeline.
type SectorDefinition struct {
	Name    string   `yaml:"name" json:"name"`
	Symbols []string `yaml:"symbols" json:"symbols"`
}

// SummaryStats holds the per-sector summary statistics.
type SummaryStats struct {
	Count     int     `json:"count"`
	AvgPctChg float64 `json:"avg_pct_chg"`
	NetMFVol  float64 `json:"net_mf_vol"`
}

// SectorSummary is the scored snapshot of one sector for one trade date.
// Recomputed every run; never mutated after creation.
type SectorSummary struct {
	Date    string       `json:"date"`
	Sector  string       `json:"sector"`
	Symbols []string     `json:"symbols"`
	Score   float64      `json:"score"`
	Stats   SummaryStats `json:"stats"`
}

// AnalysisResult is the narrative produced for one sector, or its degraded
// stand-in when the narrative service failed.
type AnalysisResult struct {
	Sector   string         `json:"sector"`
	Analysis string         `json:"analysis"`
	Raw      map[string]any `json:"raw"`
	Degraded bool           `json:"degraded,omitempty"`
}

// DegradedFailureMessage is the fixed narrative text used when the narrative
// service fails for a sector.
const DegradedFailureMessage = "AI analysis failed."

// DegradedResult builds the stand-in AnalysisResult for a failed narrative call.
func DegradedResult(sector string, err error) AnalysisResult {
	return AnalysisResult{
		Sector:   sector,
		Analysis: DegradedFailureMessage,
		Raw:      map[string]any{"error": err.Error()},
		Degraded: true,
	}
}

// AnalysisRecord is the unit of storage and retrieval. CreatedAt is assigned
// by the store on save and is non-decreasing across the collection.
type AnalysisRecord struct {
	Summary   SectorSummary  `json:"summary"`
	Analysis  AnalysisResult `json:"analysis"`
	CreatedAt time.Time      `json:"created_at"`
}

// SectorScore pairs a sector name with its composite score, keeping the
// universe iteration order so ranking ties stay stable.
type SectorScore struct {
	Sector string  `json:"sector"`
	Score  float64 `json:"score"`
}
