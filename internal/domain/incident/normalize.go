package incident

import (
	"encoding/json"
	"strconv"
	"strings"

	"cargo-inspection-dashboard/internal/domain/cargo"
)

// The backend emits records with inconsistent key casing (cargo_id and
// Cargo_id both occur, likewise for stage, bag, defect, confidence and
// status). Normalize coalesces each pair at this boundary so nothing
// downstream ever branches on casing.

// Raw is one unnormalized pending-incident record.
type Raw map[string]interface{}

// Normalize maps a raw backend record into the canonical incident.
func Normalize(raw Raw) Incident {
	status := firstString(raw, "status", "Status")
	if status == "" {
		status = string(StatusPending)
	}

	detectionTime := firstString(raw, "detection_time", "inspect_time")

	return Incident{
		CargoID:       firstString(raw, "cargo_id", "Cargo_id"),
		StageName:     firstString(raw, "stage_name", "Stage_name"),
		BagType:       firstString(raw, "bag_type", "Bag_type"),
		DefectClass:   firstString(raw, "defect_class", "Defect_class"),
		Confidence:    NormalizeConfidence(firstFloat(raw, "confidence", "Confidence")),
		Status:        Status(strings.ToLower(status)),
		DetectionTime: cargo.ParseTimestamp(detectionTime),
		ImagePath:     firstString(raw, "image_path", "Image_path"),
	}
}

// NormalizeAll converts a fetched pending set, preserving backend order.
func NormalizeAll(raws []Raw) []Incident {
	incidents := make([]Incident, 0, len(raws))
	for _, r := range raws {
		incidents = append(incidents, Normalize(r))
	}
	return incidents
}

func firstString(raw Raw, keys ...string) string {
	for _, key := range keys {
		if v, ok := raw[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

func firstFloat(raw Raw, keys ...string) float64 {
	for _, key := range keys {
		v, ok := raw[key]
		if !ok {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n
		case json.Number:
			if f, err := n.Float64(); err == nil {
				return f
			}
		case string:
			if f, err := strconv.ParseFloat(n, 64); err == nil {
				return f
			}
		}
	}
	return 0
}
