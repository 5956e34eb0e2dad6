package incident

import (
	"context"
	"strings"
	"time"

	"cargo-inspection-dashboard/internal/backend"
	domainIncident "cargo-inspection-dashboard/internal/domain/incident"
	"cargo-inspection-dashboard/internal/logger"
	appErrors "cargo-inspection-dashboard/pkg/errors"
	"cargo-inspection-dashboard/pkg/utils"

	"go.uber.org/zap"
)

// Backend is the slice of the detection-backend client this service needs.
// The backend has no parameterized incident endpoint, so lookups go
// through the full pending set.
type Backend interface {
	PendingIncidents(ctx context.Context) ([]backend.RawIncident, error)
	SubmitInspection(ctx context.Context, cargoID, stageName string, form backend.SubmitForm) (string, error)
}

// Service implements the incident review/verification workflow
type Service struct {
	backend Backend
	now     func() time.Time
}

func NewService(b Backend) *Service {
	return &Service{
		backend: b,
		now:     time.Now,
	}
}

// WithClock fixes the service clock. Date-range cutoffs are computed from
// it, which keeps filtering deterministic under test.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// List fetches the pending set fresh and applies the status, defect and
// date-range filters. Backend fetch order is preserved.
func (s *Service) List(ctx context.Context, filter Filter) ([]View, error) {
	raws, err := s.backend.PendingIncidents(ctx)
	if err != nil {
		return nil, err
	}

	incidents := domainIncident.NormalizeAll(toRaws(raws))
	incidents = ApplyFilter(incidents, filter, s.now())

	views := make([]View, 0, len(incidents))
	for _, inc := range incidents {
		views = append(views, toView(inc))
	}
	return views, nil
}

// Get locates one incident by its composite (cargo id, stage name) key.
func (s *Service) Get(ctx context.Context, cargoID, stageName string) (*DetailView, error) {
	cargoID = utils.SanitizeCargoID(cargoID)

	raws, err := s.backend.PendingIncidents(ctx)
	if err != nil {
		return nil, err
	}

	key := domainIncident.Key{CargoID: cargoID, StageName: stageName}
	for _, raw := range raws {
		inc := domainIncident.Normalize(domainIncident.Raw(raw))
		if inc.Key() != key {
			continue
		}

		detail := &DetailView{
			View:      toView(inc),
			Region:    "Asia",
			Warehouse: "Warehouse 1",
			FileType:  "N/A",
			LengthCm:  60,
			BreadthCm: 40,
			HeightCm:  25,
			ImagePath: inc.ImagePath,
		}
		for _, next := range domainIncident.AllowedTransitions(inc.Status) {
			detail.NextSteps = append(detail.NextSteps, string(next))
		}
		if detail.DetectionTime == "" {
			detail.DetectionTime = s.now().Format(time.RFC3339)
		}
		return detail, nil
	}

	return nil, appErrors.ErrIncidentNotFound
}

// Submit validates the active sub-form and posts the outcome to the
// backend. Failure aborts with the backend's message; nothing is persisted
// locally, the operator resubmits.
func (s *Service) Submit(ctx context.Context, cargoID, stageName string, sub Submission) (*SubmitResult, error) {
	cargoID = utils.SanitizeCargoID(cargoID)
	if cargoID == "" || stageName == "" {
		return nil, appErrors.NewAppError("MISSING_KEY", "Cargo ID and stage name are required for submission", nil)
	}

	if err := ValidateSubmission(sub); err != nil {
		return nil, err
	}

	form := backend.SubmitForm{
		ErrorType:  sub.ErrorType,
		BagType:    sub.BagType,
		DamageType: sub.DamageType,
	}
	// Only the first selected file travels to the backend.
	if len(sub.Images) > 0 {
		form.FileName = sub.Images[0].Name
		form.File = sub.Images[0].Data
	}

	message, err := s.backend.SubmitInspection(ctx, cargoID, stageName, form)
	if err != nil {
		return nil, err
	}

	logger.Info("Inspection submitted",
		zap.String("cargo_id", cargoID),
		zap.String("stage_name", stageName),
		zap.String("mode", string(sub.Mode)),
		zap.String("event", "inspection_submitted"),
	)

	return &SubmitResult{
		Message:    message,
		RedirectTo: "/incident",
	}, nil
}

// ApplyFilter narrows a normalized incident list. Cutoffs come from the
// caller's now: today keeps the same calendar day, week keeps a rolling
// 7-day window (inclusive), month goes back one calendar month.
func ApplyFilter(incidents []domainIncident.Incident, filter Filter, now time.Time) []domainIncident.Incident {
	out := incidents

	if filter.Status != "" && filter.Status != "all" {
		out = keep(out, func(inc domainIncident.Incident) bool {
			return strings.EqualFold(string(inc.Status), filter.Status)
		})
	}

	if filter.Defect != "" && filter.Defect != "all" {
		out = keep(out, func(inc domainIncident.Incident) bool {
			return strings.EqualFold(inc.DefectClass, filter.Defect)
		})
	}

	switch filter.DateRange {
	case "today":
		y, m, d := now.Date()
		out = keep(out, func(inc domainIncident.Incident) bool {
			iy, im, id := inc.DetectionTime.Date()
			return iy == y && im == m && id == d
		})
	case "week":
		cutoff := now.AddDate(0, 0, -7)
		out = keep(out, func(inc domainIncident.Incident) bool {
			return !inc.DetectionTime.Before(cutoff)
		})
	case "month":
		cutoff := now.AddDate(0, -1, 0)
		out = keep(out, func(inc domainIncident.Incident) bool {
			return !inc.DetectionTime.Before(cutoff)
		})
	}

	return out
}

func keep(incidents []domainIncident.Incident, pred func(domainIncident.Incident) bool) []domainIncident.Incident {
	filtered := make([]domainIncident.Incident, 0, len(incidents))
	for _, inc := range incidents {
		if pred(inc) {
			filtered = append(filtered, inc)
		}
	}
	return filtered
}

func toView(inc domainIncident.Incident) View {
	view := View{
		CargoID:       orNA(inc.CargoID),
		StageName:     orNA(inc.StageName),
		BagType:       orNA(inc.BagType),
		DefectClass:   orNA(inc.DefectClass),
		Confidence:    inc.Confidence,
		ConfidencePct: domainIncident.FormatPercent(inc.Confidence),
		Status:        string(inc.Status),
	}
	if !inc.DetectionTime.IsZero() {
		view.DetectionTime = inc.DetectionTime.Format(time.RFC3339)
	}
	return view
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func toRaws(raws []backend.RawIncident) []domainIncident.Raw {
	out := make([]domainIncident.Raw, 0, len(raws))
	for _, r := range raws {
		out = append(out, domainIncident.Raw(r))
	}
	return out
}
