package cargo

import (
	"sort"
	"strings"
	"time"
)

type FileType string

const (
	FileTypeImage FileType = "image"
	FileTypeVideo FileType = "video"
)

type StageName string

const (
	StageArrival    StageName = "Arrival"
	StageInspection StageName = "Inspection"
	StageDispatch   StageName = "Dispatch"
)

// Detection is one damage-detection record for a cargo at a stage.
type Detection struct {
	CargoID         string
	Timestamp       time.Time
	FileType        FileType
	DefectClasses   []string
	StageName       string
	Confidence      float64
	OutputImagePath string
	Warehouse       string
}

// Details holds the stored metadata of a cargo used to prefill uploads.
type Details struct {
	Region    string `json:"region"`
	Country   string `json:"country"`
	Warehouse string `json:"warehouse"`
	LengthCm  string `json:"length_cm"`
	BreadthCm string `json:"breadth_cm"`
	HeightCm  string `json:"height_cm"`
}

// DisplayType maps the backend file type to its display label.
func (d Detection) DisplayType() string {
	if d.FileType == FileTypeVideo {
		return "Video"
	}
	return "Image"
}

// DisplayDefects returns the defect classes, or the no-damage placeholder
// when the detection carried none.
func (d Detection) DisplayDefects() []string {
	if len(d.DefectClasses) == 0 {
		return []string{"No Damage"}
	}
	return d.DefectClasses
}

// JoinedDefects renders the defect classes as one display string.
func (d Detection) JoinedDefects() string {
	return strings.Join(d.DisplayDefects(), ", ")
}

// LatestPerCargo keeps, for each cargo id, the detection with the maximum
// timestamp, and returns the survivors sorted newest first.
func LatestPerCargo(detections []Detection) []Detection {
	latest := make(map[string]Detection)
	for _, d := range detections {
		current, seen := latest[d.CargoID]
		if !seen || d.Timestamp.After(current.Timestamp) {
			latest[d.CargoID] = d
		}
	}

	out := make([]Detection, 0, len(latest))
	for _, d := range latest {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp accepts the timestamp formats the backend is known to
// emit. Unparseable values yield the zero time, which sorts last.
func ParseTimestamp(s string) time.Time {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
