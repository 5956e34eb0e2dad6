package dashboard

import (
	"time"

	"cargo-inspection-dashboard/internal/backend"
)

// Session is one latest-per-cargo row on the overview and history screens.
type Session struct {
	CargoID     string    `json:"cargo_id"`
	Time        string    `json:"time"`
	Type        string    `json:"type"` // Video or Image
	DamageTypes []string  `json:"damage_types"`
	DamageType  string    `json:"damage_type"` // joined display form
	Stage       string    `json:"stage"`
	Warehouse   string    `json:"warehouse"`
	Timestamp   time.Time `json:"timestamp"`
}

// HistoryFilter narrows the history list after the fetch.
type HistoryFilter struct {
	DateRange string `form:"date_range"` // all, today, week, month
	MediaType string `form:"media_type"` // all, image, video
	CargoID   string `form:"cargo_id"`   // substring match
}

// StatCard is one KPI tile on the QC dashboard.
type StatCard struct {
	Title       string `json:"title"`
	Count       string `json:"count"`
	Description string `json:"description"`
	Link        string `json:"link,omitempty"`
}

// Verification is one row of the recent-verifications table.
type Verification struct {
	CargoID       string `json:"cargo_id"`
	DetectionTime string `json:"detection_time"`
	Location      string `json:"location"`
	Type          string `json:"type"`
	Defect        string `json:"defect"`
	ConfidencePct string `json:"confidence_pct"`
	Status        string `json:"status"`
}

// Alert is one low-confidence alert card.
type Alert struct {
	CargoID    string  `json:"cargo_id"`
	Confidence float64 `json:"confidence"`
	DamageType string  `json:"damage_type"`
	FileType   string  `json:"file_type"`
	StageName  string  `json:"stage_name"`
	ImagePath  string  `json:"image_path,omitempty"`
}

// QCView is the assembled QC dashboard.
type QCView struct {
	Stats         []StatCard     `json:"stats"`
	Verifications []Verification `json:"verifications"`
	Alerts        []Alert        `json:"alerts"`
}

// TrendPoint is one chart-friendly damage-rate sample.
type TrendPoint struct {
	Label string  `json:"label"`
	Rate  float64 `json:"rate"`
}

// InspectionPoint is one chart-friendly inspection-volume sample.
type InspectionPoint struct {
	Date      string  `json:"date"`
	Total     float64 `json:"total"`
	Inspected float64 `json:"inspected"`
}

// SummaryFilter narrows the per-cargo summary media.
type SummaryFilter struct {
	Stage   string   // empty or "All Stages" keeps everything
	Defects []string // image matches when it carries any selected defect
}

// SummaryView is the per-cargo defect summary with its stage vocabulary.
type SummaryView struct {
	CargoInfo map[string]interface{} `json:"cargo_info"`
	Stages    []string               `json:"stages"`
	Defects   []string               `json:"defects"`
	Images    []backend.SummaryImage `json:"images"`
	Videos    []backend.SummaryVideo `json:"videos"`
}

// ResultsView is the stage-results payload with its derived average.
type ResultsView struct {
	CargoInfo         map[string]interface{} `json:"cargo_info"`
	Defects           []string               `json:"defects"`
	Images            []backend.SummaryImage `json:"images"`
	Videos            []backend.SummaryVideo `json:"videos"`
	AverageConfidence *float64               `json:"average_confidence,omitempty"`
}
