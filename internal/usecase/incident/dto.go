package incident

import (
	"io"
)

// Filter narrows the incident list. Zero values mean "all".
type Filter struct {
	Status    string `form:"status"`
	DateRange string `form:"date_range"` // all, today, week, month
	Defect    string `form:"defect"`
}

// View is one incident row as the list screen renders it. Missing fields
// fall back to the N/A placeholder rather than blocking render.
type View struct {
	CargoID       string  `json:"cargo_id"`
	StageName     string  `json:"stage_name"`
	BagType       string  `json:"bag_type"`
	DefectClass   string  `json:"defect_class"`
	Confidence    float64 `json:"confidence"`
	ConfidencePct string  `json:"confidence_pct"`
	Status        string  `json:"status"`
	DetectionTime string  `json:"detection_time"`
}

// DetailView is the review screen's model. Fields the pending payload does
// not carry keep the demo defaults the screen always showed.
type DetailView struct {
	View
	Region    string   `json:"region"`
	Warehouse string   `json:"warehouse"`
	FileType  string   `json:"file_type"`
	LengthCm  int      `json:"length_cm"`
	BreadthCm int      `json:"breadth_cm"`
	HeightCm  int      `json:"height_cm"`
	ImagePath string   `json:"image_path"`
	NextSteps []string `json:"next_steps"`
}

// Mode selects which of the two independent sub-forms is being submitted.
type Mode string

const (
	ModeReview Mode = "review"
	ModeUpdate Mode = "update"
)

// Image is one attached corroborating file.
type Image struct {
	Name string
	Data io.Reader
}

// Submission carries either sub-form; both share the submit action.
type Submission struct {
	Mode       Mode
	Notes      string
	ErrorType  string
	BagType    string
	DamageType string
	Images     []Image
}

// SubmitResult reports the backend's message and where the client should
// navigate on success.
type SubmitResult struct {
	Message    string `json:"message"`
	RedirectTo string `json:"redirect_to"`
}
