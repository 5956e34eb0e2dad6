package dashboard

import (
	"context"
	"testing"
	"time"

	"cargo-inspection-dashboard/internal/backend"
)

type fakeBackend struct {
	damageInfo []backend.DamageRecord
	qcSummary  *backend.QCSummary
	trend      []map[string]interface{}
	inspection []map[string]interface{}
	summary    *backend.Summary
	stage      *backend.Summary
	err        error

	qaFilter string
}

func (f *fakeBackend) DamageInfo(ctx context.Context) ([]backend.DamageRecord, error) {
	return f.damageInfo, f.err
}

func (f *fakeBackend) QCInspectionSummary(ctx context.Context) (*backend.QCSummary, error) {
	return f.qcSummary, f.err
}

func (f *fakeBackend) DamageDistribution(ctx context.Context, stageName, targetDate string) (backend.Aggregate, error) {
	return backend.Aggregate(`{"stage":"` + stageName + `"}`), f.err
}

func (f *fakeBackend) ConfidenceCargoDistribution(ctx context.Context, stageName, startDate string) (backend.Aggregate, error) {
	return backend.Aggregate(`{"stage":"` + stageName + `"}`), f.err
}

func (f *fakeBackend) DashboardKPIs(ctx context.Context, dateFilter string) (backend.Aggregate, error) {
	return backend.Aggregate(`{}`), f.err
}

func (f *fakeBackend) DamageRateTrend(ctx context.Context, view string) ([]map[string]interface{}, error) {
	return f.trend, f.err
}

func (f *fakeBackend) StageWiseDamage(ctx context.Context, filter string) (backend.Aggregate, error) {
	return backend.Aggregate(`{}`), f.err
}

func (f *fakeBackend) InspectionSummaryKPIs(ctx context.Context, filter string) (backend.Aggregate, error) {
	f.qaFilter = filter
	return backend.Aggregate(`{}`), f.err
}

func (f *fakeBackend) InspectionTrend(ctx context.Context, view string) ([]map[string]interface{}, error) {
	return f.inspection, f.err
}

func (f *fakeBackend) InspectionStageDistribution(ctx context.Context, view string) ([]map[string]interface{}, error) {
	return f.inspection, f.err
}

func (f *fakeBackend) InspectionDamageDistribution(ctx context.Context, filter string) (backend.Aggregate, error) {
	return backend.Aggregate(`{}`), f.err
}

func (f *fakeBackend) Summary(ctx context.Context, cargoID string) (*backend.Summary, error) {
	return f.summary, f.err
}

func (f *fakeBackend) StageSummary(ctx context.Context, cargoID, stageName string) (*backend.Summary, error) {
	return f.stage, f.err
}

func TestOverviewLatestPerCargo(t *testing.T) {
	b := &fakeBackend{damageInfo: []backend.DamageRecord{
		{CargoID: "C-1", Timestamp: "2024-06-07T08:00:00", StageName: "Arrival", FileType: "image"},
		{CargoID: "C-1", Timestamp: "2024-06-07T12:00:00", StageName: "Dispatch", FileType: "video"},
		{CargoID: "C-2", Timestamp: "2024-06-07T09:00:00", StageName: "Arrival", DefectClasses: []string{"Break_Carton"}},
	}}
	svc := NewService(b)

	sessions, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview() error = %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("Overview() returned %d sessions, want 2", len(sessions))
	}
	if sessions[0].CargoID != "C-1" || sessions[0].Stage != "Dispatch" {
		t.Errorf("sessions[0] = %s/%s, want the newest C-1 record", sessions[0].CargoID, sessions[0].Stage)
	}
	if sessions[0].Type != "Video" {
		t.Errorf("sessions[0].Type = %q, want Video", sessions[0].Type)
	}
	if sessions[1].DamageType != "Break_Carton" {
		t.Errorf("sessions[1].DamageType = %q, want Break_Carton", sessions[1].DamageType)
	}
	if sessions[0].DamageType != "No Damage" {
		t.Errorf("sessions[0].DamageType = %q, want the no-damage placeholder", sessions[0].DamageType)
	}
}

func TestOverviewCap(t *testing.T) {
	records := make([]backend.DamageRecord, 0, 6)
	for _, id := range []string{"C-1", "C-2", "C-3", "C-4", "C-5", "C-6"} {
		records = append(records, backend.DamageRecord{CargoID: id, Timestamp: "2024-06-07T08:00:00"})
	}
	svc := NewService(&fakeBackend{damageInfo: records})

	sessions, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview() error = %v", err)
	}
	if len(sessions) != recentSessionLimit {
		t.Errorf("Overview() returned %d sessions, want cap of %d", len(sessions), recentSessionLimit)
	}
}

func TestFilterSessions(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	sessions := []Session{
		{CargoID: "CMBO-1111", Type: "Image", Timestamp: now.Add(-2 * time.Hour)},
		{CargoID: "CMBO-2222", Type: "Video", Timestamp: now.AddDate(0, 0, -3)},
		{CargoID: "OTHER-33", Type: "Image", Timestamp: now.AddDate(0, 0, -20)},
	}

	tests := []struct {
		name    string
		filter  HistoryFilter
		wantIDs []string
	}{
		{
			name:    "no filter",
			filter:  HistoryFilter{},
			wantIDs: []string{"CMBO-1111", "CMBO-2222", "OTHER-33"},
		},
		{
			name:    "today starts at midnight",
			filter:  HistoryFilter{DateRange: "today"},
			wantIDs: []string{"CMBO-1111"},
		},
		{
			name:    "week window",
			filter:  HistoryFilter{DateRange: "week"},
			wantIDs: []string{"CMBO-1111", "CMBO-2222"},
		},
		{
			name:    "media type is case insensitive",
			filter:  HistoryFilter{MediaType: "video"},
			wantIDs: []string{"CMBO-2222"},
		},
		{
			name:    "cargo id substring",
			filter:  HistoryFilter{CargoID: "cmbo"},
			wantIDs: []string{"CMBO-1111", "CMBO-2222"},
		},
		{
			name:    "combined",
			filter:  HistoryFilter{DateRange: "week", MediaType: "image"},
			wantIDs: []string{"CMBO-1111"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterSessions(sessions, tt.filter, now)
			gotIDs := make([]string, 0, len(got))
			for _, s := range got {
				gotIDs = append(gotIDs, s.CargoID)
			}
			if len(gotIDs) != len(tt.wantIDs) {
				t.Fatalf("kept %v, want %v", gotIDs, tt.wantIDs)
			}
			for i := range tt.wantIDs {
				if gotIDs[i] != tt.wantIDs[i] {
					t.Errorf("kept %v, want %v", gotIDs, tt.wantIDs)
					break
				}
			}
		})
	}
}

func TestQCDashboard(t *testing.T) {
	b := &fakeBackend{qcSummary: &backend.QCSummary{
		TotalDamagedCargos:   12,
		TotalInspectedCargos: 48,
		PendingInspections:   5,
		AverageConfidence:    87.5,
		RecentVerifications: []map[string]interface{}{
			{"Cargo_id": "C-1", "Stage_name": "Arrival", "Confidence": 0.8537},
		},
		LowConfidenceAlerts: []map[string]interface{}{
			{"cargo_id": "C-2", "confidence": 0.31, "defect_class": "Wet_Carton"},
		},
	}}
	svc := NewService(b)

	view, err := svc.QCDashboard(context.Background())
	if err != nil {
		t.Fatalf("QCDashboard() error = %v", err)
	}

	if len(view.Stats) != 4 {
		t.Fatalf("got %d stat cards, want 4", len(view.Stats))
	}
	if view.Stats[0].Count != "12" || view.Stats[2].Count != "5" {
		t.Errorf("counts = %s/%s, want 12/5", view.Stats[0].Count, view.Stats[2].Count)
	}
	if view.Stats[3].Count != "87.50%" {
		t.Errorf("average confidence card = %q, want 87.50%%", view.Stats[3].Count)
	}

	if len(view.Verifications) != 1 {
		t.Fatalf("got %d verifications, want 1", len(view.Verifications))
	}
	v := view.Verifications[0]
	if v.ConfidencePct != "85.37%" {
		t.Errorf("verification confidence = %q, want 85.37%%", v.ConfidencePct)
	}
	if v.Status != "✅" {
		t.Errorf("verification status = %q, want default check mark", v.Status)
	}
	if v.Type != "N/A" {
		t.Errorf("missing bag type = %q, want N/A placeholder", v.Type)
	}

	if len(view.Alerts) != 1 {
		t.Fatalf("got %d alerts, want 1", len(view.Alerts))
	}
	if view.Alerts[0].FileType != "Image" {
		t.Errorf("alert file type = %q, want Image", view.Alerts[0].FileType)
	}
}

func TestDamageRateTrend(t *testing.T) {
	b := &fakeBackend{trend: []map[string]interface{}{
		{"day": "2024-06-14", "damage_rate": 3.2},
		{"month": "2024-06", "damage_rate": "4.5"},
		{"year": "2024", "damage_rate": "not-a-number"},
	}}
	svc := NewService(b)

	points, err := svc.DamageRateTrend(context.Background(), "daily")
	if err != nil {
		t.Fatalf("DamageRateTrend() error = %v", err)
	}
	want := []TrendPoint{
		{Label: "2024-06-14", Rate: 3.2},
		{Label: "2024-06", Rate: 4.5},
		{Label: "2024", Rate: 0},
	}
	for i := range want {
		if points[i] != want[i] {
			t.Errorf("points[%d] = %+v, want %+v", i, points[i], want[i])
		}
	}
}

func TestInspectionTrend(t *testing.T) {
	b := &fakeBackend{inspection: []map[string]interface{}{
		{"label": "2024-06-14", "total_inspection": 20.0, "inspected_count": 17.0},
	}}
	svc := NewService(b)

	points, err := svc.InspectionTrend(context.Background(), "daily")
	if err != nil {
		t.Fatalf("InspectionTrend() error = %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("got %d points, want 1", len(points))
	}
	if points[0].Date != "2024-06-14" || points[0].Total != 20 || points[0].Inspected != 17 {
		t.Errorf("points[0] = %+v", points[0])
	}
}

func TestQAKPIsLowercasesFilter(t *testing.T) {
	b := &fakeBackend{}
	svc := NewService(b)

	if _, err := svc.QAKPIs(context.Background(), "Weekly"); err != nil {
		t.Fatalf("QAKPIs() error = %v", err)
	}
	if b.qaFilter != "weekly" {
		t.Errorf("backend filter = %q, want weekly", b.qaFilter)
	}
}

func TestDamageDistributionAllStages(t *testing.T) {
	svc := NewService(&fakeBackend{})

	data, err := svc.DamageDistribution(context.Background(), "All Stages", "2024-06-14")
	if err != nil {
		t.Fatalf("DamageDistribution() error = %v", err)
	}
	if string(data) != `{"stage":""}` {
		t.Errorf("All Stages must reach the backend as an empty stage, got %s", data)
	}
}

func TestCargoSummary(t *testing.T) {
	b := &fakeBackend{summary: &backend.Summary{
		Defects: []string{"Break_Carton", "Wet_Carton"},
		Images: []backend.SummaryImage{
			{Path: "a.jpg", Stage: "Arrival", Defects: []string{"Break_Carton"}},
			{Path: "b.jpg", Stage: "Dispatch", Defects: []string{"Wet_Carton"}},
		},
		Videos: []backend.SummaryVideo{{Path: "v.mp4", Stage: "Arrival"}},
	}}
	svc := NewService(b)

	view, err := svc.CargoSummary(context.Background(), "C-1", SummaryFilter{})
	if err != nil {
		t.Fatalf("CargoSummary() error = %v", err)
	}
	wantStages := []string{"All Stages", "Arrival", "Dispatch"}
	for i := range wantStages {
		if view.Stages[i] != wantStages[i] {
			t.Fatalf("stages = %v, want %v", view.Stages, wantStages)
		}
	}

	view, err = svc.CargoSummary(context.Background(), "C-1", SummaryFilter{Stage: "Arrival", Defects: []string{"Break_Carton"}})
	if err != nil {
		t.Fatalf("CargoSummary(filtered) error = %v", err)
	}
	if len(view.Images) != 1 || view.Images[0].Path != "a.jpg" {
		t.Errorf("filtered images = %v, want only a.jpg", view.Images)
	}
	if len(view.Videos) != 1 {
		t.Errorf("filtered videos = %v, want the Arrival video", view.Videos)
	}
}

func TestCargoSummaryError(t *testing.T) {
	b := &fakeBackend{summary: &backend.Summary{Error: "No data found for cargo"}}
	svc := NewService(b)

	if _, err := svc.CargoSummary(context.Background(), "C-404", SummaryFilter{}); err == nil {
		t.Error("a summary payload carrying an error must fail")
	}
}

func TestAverageConfidence(t *testing.T) {
	tests := []struct {
		name   string
		images []backend.SummaryImage
		want   *float64
	}{
		{name: "no images", images: nil, want: nil},
		{name: "all zero", images: []backend.SummaryImage{{Confidence: 0}}, want: nil},
		{
			name: "skips zeros",
			images: []backend.SummaryImage{
				{Confidence: 0.8}, {Confidence: 0}, {Confidence: 0.6},
			},
			want: floatPtr(0.7),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AverageConfidence(tt.images)
			switch {
			case got == nil && tt.want == nil:
			case got == nil || tt.want == nil:
				t.Errorf("AverageConfidence() = %v, want %v", got, tt.want)
			default:
				if diff := *got - *tt.want; diff > 1e-9 || diff < -1e-9 {
					t.Errorf("AverageConfidence() = %v, want %v", *got, *tt.want)
				}
			}
		})
	}
}

func floatPtr(v float64) *float64 { return &v }
