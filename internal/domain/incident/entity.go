package incident

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusReviewed Status = "reviewed"
	StatusVerified Status = "verified"
)

// Incident is a detection flagged for human review. Identity is the
// (cargo id, stage name) pair: the same cargo carries independent
// incidents per processing stage.
type Incident struct {
	CargoID       string    `json:"cargo_id"`
	StageName     string    `json:"stage_name"`
	BagType       string    `json:"bag_type"`
	DefectClass   string    `json:"defect_class"`
	Confidence    float64   `json:"confidence"`
	Status        Status    `json:"status"`
	DetectionTime time.Time `json:"detection_time"`
	ImagePath     string    `json:"image_path"`
}

// Key is the composite incident identity.
type Key struct {
	CargoID   string
	StageName string
}

func (i Incident) Key() Key {
	return Key{CargoID: i.CargoID, StageName: i.StageName}
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s", k.CargoID, k.StageName)
}

// NormalizeConfidence maps scores the backend reports on a 0-100 scale
// back into [0,1]. Values already in range pass through unchanged.
func NormalizeConfidence(c float64) float64 {
	if c > 1 {
		return c / 100
	}
	return c
}

// FormatPercent renders a [0,1] confidence as a percentage with two
// decimal places, e.g. 0.8537 -> "85.37%".
func FormatPercent(c float64) string {
	return fmt.Sprintf("%.2f%%", c*100)
}
