package backend

import "encoding/json"

// DamageRecord is one detection row from /damage_info.
type DamageRecord struct {
	CargoID         string   `json:"Cargo_id"`
	Timestamp       string   `json:"Timestamp"`
	FileType        string   `json:"File_type"`
	DefectClasses   []string `json:"Defect_classes"`
	StageName       string   `json:"Stage_name"`
	Confidence      float64  `json:"Confidence"`
	OutputImagePath string   `json:"Output_image_path"`
	Warehouse       string   `json:"Warehouse"`
}

type damageInfoResponse struct {
	DamageInfo []DamageRecord `json:"damage_info"`
}

type cargoIDsResponse struct {
	CargoIDs []string `json:"cargo_ids"`
}

// CargoDetails holds the stored metadata of an existing cargo.
type CargoDetails struct {
	Region    string  `json:"Region"`
	Country   string  `json:"Country"`
	Warehouse string  `json:"Warehouse"`
	LengthCm  float64 `json:"Length_cm"`
	BreadthCm float64 `json:"Breadth_cm"`
	HeightCm  float64 `json:"Height_cm"`
}

type cargoDetailsResponse struct {
	CargoDetails []CargoDetails `json:"cargo_details"`
}

// RawIncident is an unnormalized pending-incident record. The backend mixes
// key casings (cargo_id vs Cargo_id), so records stay untyped until the
// incident domain package normalizes them.
type RawIncident map[string]interface{}

type pendingWrapper struct {
	Incidents []RawIncident `json:"incidents"`
}

// UploadResponse is the backend's reply to a media upload. Raw keeps the
// full payload so the caller can merge it with the submitted form fields.
type UploadResponse struct {
	CargoID   string
	StageName string
	FilePath  string
	Raw       map[string]interface{}
}

type submitResponse struct {
	Message string `json:"message"`
}

// SummaryImage is one inspected frame in a cargo summary.
type SummaryImage struct {
	Path       string   `json:"path"`
	Stage      string   `json:"stage"`
	Defects    []string `json:"defects"`
	Confidence float64  `json:"confidence"`
}

// SummaryVideo is one stitched inspection video in a cargo summary.
type SummaryVideo struct {
	Path  string `json:"path"`
	Stage string `json:"stage"`
}

// Summary is the per-cargo (or per-stage) rollup view model. CargoInfo is
// opaque and passed through untouched.
type Summary struct {
	CargoInfo map[string]interface{} `json:"cargoInfo"`
	Defects   []string               `json:"defects"`
	Images    []SummaryImage         `json:"images"`
	Videos    []SummaryVideo         `json:"videos"`
	Error     string                 `json:"error,omitempty"`
}

// QCSummary is the /inspection/summary payload for the QC dashboard.
type QCSummary struct {
	TotalDamagedCargos   float64                  `json:"total_damaged_cargos"`
	TotalInspectedCargos float64                  `json:"total_inspected_cargos"`
	PendingInspections   float64                  `json:"pending_inspections"`
	AverageConfidence    float64                  `json:"average_confidence"`
	RecentVerifications  []map[string]interface{} `json:"recent_verifications"`
	LowConfidenceAlerts  []map[string]interface{} `json:"low_confidence_alerts"`
}

// Aggregate is a pre-computed chart payload the client never recomputes.
type Aggregate = json.RawMessage
