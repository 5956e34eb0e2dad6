package dashboard

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"cargo-inspection-dashboard/internal/backend"
	domainCargo "cargo-inspection-dashboard/internal/domain/cargo"
	domainIncident "cargo-inspection-dashboard/internal/domain/incident"
	appErrors "cargo-inspection-dashboard/pkg/errors"
	"cargo-inspection-dashboard/pkg/utils"
)

const recentSessionLimit = 4

type Backend interface {
	DamageInfo(ctx context.Context) ([]backend.DamageRecord, error)
	QCInspectionSummary(ctx context.Context) (*backend.QCSummary, error)
	DamageDistribution(ctx context.Context, stageName, targetDate string) (backend.Aggregate, error)
	ConfidenceCargoDistribution(ctx context.Context, stageName, startDate string) (backend.Aggregate, error)
	DashboardKPIs(ctx context.Context, dateFilter string) (backend.Aggregate, error)
	DamageRateTrend(ctx context.Context, view string) ([]map[string]interface{}, error)
	StageWiseDamage(ctx context.Context, filter string) (backend.Aggregate, error)
	InspectionSummaryKPIs(ctx context.Context, filter string) (backend.Aggregate, error)
	InspectionTrend(ctx context.Context, view string) ([]map[string]interface{}, error)
	InspectionStageDistribution(ctx context.Context, view string) ([]map[string]interface{}, error)
	InspectionDamageDistribution(ctx context.Context, filter string) (backend.Aggregate, error)
	Summary(ctx context.Context, cargoID string) (*backend.Summary, error)
	StageSummary(ctx context.Context, cargoID, stageName string) (*backend.Summary, error)
}

// Service assembles the dashboard views. It only reshapes what the backend
// pre-computed; no rollup is calculated here.
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

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Overview returns the most recent session per cargo, capped for the
// landing screen.
func (s *Service) Overview(ctx context.Context) ([]Session, error) {
	sessions, err := s.latestSessions(ctx)
	if err != nil {
		return nil, err
	}
	if len(sessions) > recentSessionLimit {
		sessions = sessions[:recentSessionLimit]
	}
	return sessions, nil
}

// History returns the latest session per cargo with post-fetch filters
// applied.
func (s *Service) History(ctx context.Context, filter HistoryFilter) ([]Session, error) {
	sessions, err := s.latestSessions(ctx)
	if err != nil {
		return nil, err
	}
	return FilterSessions(sessions, filter, s.now()), nil
}

func (s *Service) latestSessions(ctx context.Context) ([]Session, error) {
	records, err := s.backend.DamageInfo(ctx)
	if err != nil {
		return nil, err
	}

	detections := make([]domainCargo.Detection, 0, len(records))
	for _, r := range records {
		detections = append(detections, domainCargo.Detection{
			CargoID:         r.CargoID,
			Timestamp:       domainCargo.ParseTimestamp(r.Timestamp),
			FileType:        domainCargo.FileType(r.FileType),
			DefectClasses:   r.DefectClasses,
			StageName:       r.StageName,
			Confidence:      r.Confidence,
			OutputImagePath: r.OutputImagePath,
			Warehouse:       r.Warehouse,
		})
	}

	latest := domainCargo.LatestPerCargo(detections)
	sessions := make([]Session, 0, len(latest))
	for _, d := range latest {
		sessions = append(sessions, Session{
			CargoID:     d.CargoID,
			Time:        d.Timestamp.Local().Format("1/2/2006, 3:04:05 PM"),
			Type:        d.DisplayType(),
			DamageTypes: d.DisplayDefects(),
			DamageType:  d.JoinedDefects(),
			Stage:       orNA(d.StageName),
			Warehouse:   orNA(d.Warehouse),
			Timestamp:   d.Timestamp,
		})
	}
	return sessions, nil
}

// FilterSessions applies the history filters with cutoffs derived from the
// supplied now.
func FilterSessions(sessions []Session, filter HistoryFilter, now time.Time) []Session {
	out := sessions

	switch filter.DateRange {
	case "today":
		cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		out = keepSessions(out, func(s Session) bool { return !s.Timestamp.Before(cutoff) })
	case "week":
		cutoff := now.AddDate(0, 0, -7)
		out = keepSessions(out, func(s Session) bool { return !s.Timestamp.Before(cutoff) })
	case "month":
		cutoff := now.AddDate(0, -1, 0)
		out = keepSessions(out, func(s Session) bool { return !s.Timestamp.Before(cutoff) })
	}

	if filter.MediaType != "" && filter.MediaType != "all" {
		out = keepSessions(out, func(s Session) bool {
			return strings.EqualFold(s.Type, filter.MediaType)
		})
	}

	if filter.CargoID != "" {
		needle := strings.ToLower(filter.CargoID)
		out = keepSessions(out, func(s Session) bool {
			return strings.Contains(strings.ToLower(s.CargoID), needle)
		})
	}

	return out
}

// QCDashboard assembles the QC screen: stat cards, recent verifications
// and low-confidence alerts, all from one pre-aggregated rollup.
func (s *Service) QCDashboard(ctx context.Context) (*QCView, error) {
	summary, err := s.backend.QCInspectionSummary(ctx)
	if err != nil {
		return nil, err
	}

	view := &QCView{
		Stats: []StatCard{
			{
				Title:       "Total Damage Detections",
				Count:       formatCount(summary.TotalDamagedCargos),
				Description: "Total damaged incident cargo",
			},
			{
				Title:       "Total Reviews",
				Count:       formatCount(summary.TotalInspectedCargos),
				Description: "Total cargo for inspection",
				Link:        "/incident",
			},
			{
				Title:       "Pending",
				Count:       formatCount(summary.PendingInspections),
				Description: "Cargos requiring manual verification",
				Link:        "/incident",
			},
			{
				Title:       "Avg. Confidence",
				Count:       domainIncident.FormatPercent(domainIncident.NormalizeConfidence(summary.AverageConfidence)),
				Description: "Average confidence score today",
			},
		},
	}

	for _, v := range summary.RecentVerifications {
		confidence := domainIncident.NormalizeConfidence(floatField(v, "Confidence", "confidence"))
		view.Verifications = append(view.Verifications, Verification{
			CargoID:       orNA(stringField(v, "Cargo_id", "cargo_id")),
			DetectionTime: orNA(stringField(v, "inspect_time", "detection_time")),
			Location:      orNA(stringField(v, "Stage_name", "stage_name")),
			Type:          orNA(stringField(v, "Bag_type", "bag_type")),
			Defect:        orNA(stringField(v, "Defect_class", "defect_class")),
			ConfidencePct: domainIncident.FormatPercent(confidence),
			Status:        orDefault(stringField(v, "Status", "status"), "✅"),
		})
	}

	for _, a := range summary.LowConfidenceAlerts {
		view.Alerts = append(view.Alerts, Alert{
			CargoID:    orNA(stringField(a, "Cargo_id", "cargo_id")),
			Confidence: domainIncident.NormalizeConfidence(floatField(a, "Confidence", "confidence")),
			DamageType: orNA(stringField(a, "Defect_class", "defect_class")),
			FileType:   "Image",
			StageName:  orNA(stringField(a, "Stage_name", "stage_name")),
			ImagePath:  stringField(a, "image_path", "Image_path"),
		})
	}

	return view, nil
}

// DamageDistribution forwards the QC damage chart; the "All Stages" choice
// becomes an empty stage parameter.
func (s *Service) DamageDistribution(ctx context.Context, stage, targetDate string) (backend.Aggregate, error) {
	if stage == "All Stages" {
		stage = ""
	}
	return s.backend.DamageDistribution(ctx, stage, targetDate)
}

// ConfidenceDistribution forwards the QC confidence chart.
func (s *Service) ConfidenceDistribution(ctx context.Context, stage, startDate string) (backend.Aggregate, error) {
	if stage == "All Stages" {
		stage = ""
	}
	return s.backend.ConfidenceCargoDistribution(ctx, stage, startDate)
}

// ManagerKPIs forwards the manager KPI rollup verbatim.
func (s *Service) ManagerKPIs(ctx context.Context, dateFilter string) (backend.Aggregate, error) {
	return s.backend.DashboardKPIs(ctx, dateFilter)
}

// DamageRateTrend renames the view-dependent bucket key (day, month or
// year) to a single chart label and coerces the rate to a float. A sample
// whose rate does not parse charts as zero.
func (s *Service) DamageRateTrend(ctx context.Context, view string) ([]TrendPoint, error) {
	items, err := s.backend.DamageRateTrend(ctx, view)
	if err != nil {
		return nil, err
	}

	points := make([]TrendPoint, 0, len(items))
	for _, item := range items {
		points = append(points, TrendPoint{
			Label: stringField(item, "day", "month", "year"),
			Rate:  floatField(item, "damage_rate"),
		})
	}
	return points, nil
}

// StageWiseDamage forwards the per-stage rollup verbatim.
func (s *Service) StageWiseDamage(ctx context.Context, filter string) (backend.Aggregate, error) {
	return s.backend.StageWiseDamage(ctx, filter)
}

// QAKPIs forwards the QA performance KPI rollup; the filter value is
// lowercased the way the screen sends it.
func (s *Service) QAKPIs(ctx context.Context, filter string) (backend.Aggregate, error) {
	return s.backend.InspectionSummaryKPIs(ctx, strings.ToLower(filter))
}

// InspectionTrend reshapes the inspection-volume series into chart keys.
func (s *Service) InspectionTrend(ctx context.Context, view string) ([]InspectionPoint, error) {
	items, err := s.backend.InspectionTrend(ctx, view)
	if err != nil {
		return nil, err
	}

	points := make([]InspectionPoint, 0, len(items))
	for _, item := range items {
		points = append(points, InspectionPoint{
			Date:      stringField(item, "label"),
			Total:     floatField(item, "total_inspection"),
			Inspected: floatField(item, "inspected_count"),
		})
	}
	return points, nil
}

// StageDistribution passes the stacked per-stage series through; every key
// except the label is a stage bucket and stays untouched.
func (s *Service) StageDistribution(ctx context.Context, view string) ([]map[string]interface{}, error) {
	return s.backend.InspectionStageDistribution(ctx, view)
}

// QADamageDistribution forwards the QA damage rollup verbatim.
func (s *Service) QADamageDistribution(ctx context.Context, filter string) (backend.Aggregate, error) {
	return s.backend.InspectionDamageDistribution(ctx, filter)
}

// CargoSummary returns the cross-stage summary for one cargo with the
// stage/defect filters applied and the stage tab list derived from the
// media present.
func (s *Service) CargoSummary(ctx context.Context, cargoID string, filter SummaryFilter) (*SummaryView, error) {
	summary, err := s.backend.Summary(ctx, utils.SanitizeCargoID(cargoID))
	if err != nil {
		return nil, err
	}
	if summary.Error != "" {
		return nil, appErrors.NewAppError("SUMMARY_ERROR", summary.Error, nil)
	}

	stageSet := make(map[string]bool)
	for _, img := range summary.Images {
		stageSet[img.Stage] = true
	}
	for _, vid := range summary.Videos {
		stageSet[vid.Stage] = true
	}
	stages := make([]string, 0, len(stageSet)+1)
	for stage := range stageSet {
		if stage != "" {
			stages = append(stages, stage)
		}
	}
	sort.Strings(stages)
	stages = append([]string{"All Stages"}, stages...)

	allStages := filter.Stage == "" || filter.Stage == "All Stages"

	images := make([]backend.SummaryImage, 0, len(summary.Images))
	for _, img := range summary.Images {
		if !allStages && img.Stage != filter.Stage {
			continue
		}
		if !matchesAnyDefect(img.Defects, filter.Defects) {
			continue
		}
		images = append(images, img)
	}

	videos := make([]backend.SummaryVideo, 0, len(summary.Videos))
	for _, vid := range summary.Videos {
		if !allStages && vid.Stage != filter.Stage {
			continue
		}
		videos = append(videos, vid)
	}

	return &SummaryView{
		CargoInfo: summary.CargoInfo,
		Stages:    stages,
		Defects:   summary.Defects,
		Images:    images,
		Videos:    videos,
	}, nil
}

// StageResults returns the (cargo, stage) results view with the derived
// average image confidence.
func (s *Service) StageResults(ctx context.Context, cargoID, stageName string) (*ResultsView, error) {
	summary, err := s.backend.StageSummary(ctx, utils.SanitizeCargoID(cargoID), stageName)
	if err != nil {
		return nil, err
	}
	if summary.Error != "" {
		return nil, appErrors.NewAppError("SUMMARY_ERROR", summary.Error, nil)
	}

	return &ResultsView{
		CargoInfo:         summary.CargoInfo,
		Defects:           summary.Defects,
		Images:            summary.Images,
		Videos:            summary.Videos,
		AverageConfidence: AverageConfidence(summary.Images),
	}, nil
}

// AverageConfidence averages the reported image confidences, skipping
// zero/missing values. Nil when nothing is reported.
func AverageConfidence(images []backend.SummaryImage) *float64 {
	var sum float64
	var n int
	for _, img := range images {
		if img.Confidence == 0 {
			continue
		}
		sum += img.Confidence
		n++
	}
	if n == 0 {
		return nil
	}
	avg := sum / float64(n)
	return &avg
}

func matchesAnyDefect(have, want []string) bool {
	if len(want) == 0 {
		return true
	}
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

func keepSessions(sessions []Session, pred func(Session) bool) []Session {
	filtered := make([]Session, 0, len(sessions))
	for _, s := range sessions {
		if pred(s) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

func stringField(m map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if v, ok := m[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

func floatField(m map[string]interface{}, keys ...string) float64 {
	for _, key := range keys {
		v, ok := m[key]
		if !ok {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n
		case string:
			if f, err := strconv.ParseFloat(n, 64); err == nil {
				return f
			}
		}
	}
	return 0
}

// formatCount renders a backend count for a stat card; the rollup reports
// whole numbers.
func formatCount(v float64) string {
	return strconv.FormatInt(int64(v), 10)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
