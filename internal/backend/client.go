package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"cargo-inspection-dashboard/internal/config"
)

// Client talks to the external detection backend over REST. One method per
// endpoint, no retries, no caching; every call takes a context.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// APIError carries a non-2xx backend reply. The message is surfaced to the
// operator verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Message)
}

func NewClient(cfg config.BackendConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout(),
		},
	}
}

// Ping checks whether the detection backend is reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/cargo_ids", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return readAPIError(resp)
	}
	return nil
}

// CargoIDs returns every known cargo identifier.
func (c *Client) CargoIDs(ctx context.Context) ([]string, error) {
	var out cargoIDsResponse
	if err := c.getJSON(ctx, "/cargo_ids", nil, &out); err != nil {
		return nil, err
	}
	return out.CargoIDs, nil
}

// CargoDetails returns the stored metadata for one cargo. The backend wraps
// a single record in a list; an empty list means the cargo is unknown.
func (c *Client) CargoDetails(ctx context.Context, cargoID string) (*CargoDetails, error) {
	var out cargoDetailsResponse
	path := "/cargo_details/" + url.PathEscape(cargoID)
	if err := c.getJSON(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	if len(out.CargoDetails) == 0 {
		return nil, nil
	}
	return &out.CargoDetails[0], nil
}

// DamageInfo returns every detection record.
func (c *Client) DamageInfo(ctx context.Context) ([]DamageRecord, error) {
	var out damageInfoResponse
	if err := c.getJSON(ctx, "/damage_info", nil, &out); err != nil {
		return nil, err
	}
	return out.DamageInfo, nil
}

// DamageInfoByCargo returns the detection records of one cargo.
func (c *Client) DamageInfoByCargo(ctx context.Context, cargoID string) ([]DamageRecord, error) {
	var out damageInfoResponse
	path := "/damage_info/" + url.PathEscape(cargoID)
	if err := c.getJSON(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return out.DamageInfo, nil
}

// PendingIncidents fetches the pending review queue. The backend answers
// with either a bare array or an {incidents: [...]} wrapper; both are
// accepted. Records come back raw for the normalization layer.
func (c *Client) PendingIncidents(ctx context.Context) ([]RawIncident, error) {
	body, err := c.get(ctx, "/pending", nil)
	if err != nil {
		return nil, err
	}

	var list []RawIncident
	if err := json.Unmarshal(body, &list); err == nil {
		return list, nil
	}

	var wrapped pendingWrapper
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to decode pending incidents: %w", err)
	}
	return wrapped.Incidents, nil
}

// UploadRequest is the multipart payload for a new inspection upload.
// CargoID is included only when non-empty; an empty value lets the backend
// mint a fresh identifier.
type UploadRequest struct {
	FileName  string
	File      io.Reader
	StageName string
	Region    string
	Country   string
	Warehouse string
	Length    string
	Breadth   string
	Height    string
	CargoID   string
}

// Upload posts inspection media plus cargo metadata to /upload.
func (c *Client) Upload(ctx context.Context, req UploadRequest) (*UploadResponse, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", req.FileName)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, req.File); err != nil {
		return nil, fmt.Errorf("failed to copy file data: %w", err)
	}

	fields := map[string]string{
		"stage_name": req.StageName,
		"region":     req.Region,
		"country":    req.Country,
		"warehouse":  req.Warehouse,
		"length":     req.Length,
		"breadth":    req.Breadth,
		"height":     req.Height,
	}
	if req.CargoID != "" {
		fields["cargo_id"] = req.CargoID
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("failed to write form field %s: %w", name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	raw, err := c.postMultipart(ctx, "/upload", writer.FormDataContentType(), body)
	if err != nil {
		return nil, err
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode upload response: %w", err)
	}

	return &UploadResponse{
		CargoID:   stringValue(payload["cargo_id"]),
		StageName: stringValue(payload["stage_name"]),
		FilePath:  stringValue(payload["file_path"]),
		Raw:       payload,
	}, nil
}

// SubmitForm is the review/update submission payload. Only the first
// selected file travels to the backend.
type SubmitForm struct {
	ErrorType  string
	BagType    string
	DamageType string
	FileName   string
	File       io.Reader
}

// SubmitInspection posts a verification outcome for one (cargo, stage) pair.
func (c *Client) SubmitInspection(ctx context.Context, cargoID, stageName string, form SubmitForm) (string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if form.ErrorType != "" {
		if err := writer.WriteField("error", form.ErrorType); err != nil {
			return "", fmt.Errorf("failed to write form field error: %w", err)
		}
	}
	if form.BagType != "" {
		if err := writer.WriteField("bag_type", form.BagType); err != nil {
			return "", fmt.Errorf("failed to write form field bag_type: %w", err)
		}
	}
	if form.DamageType != "" {
		if err := writer.WriteField("damage_type", form.DamageType); err != nil {
			return "", fmt.Errorf("failed to write form field damage_type: %w", err)
		}
	}
	if form.File != nil {
		part, err := writer.CreateFormFile("file_path", form.FileName)
		if err != nil {
			return "", fmt.Errorf("failed to create form file: %w", err)
		}
		if _, err := io.Copy(part, form.File); err != nil {
			return "", fmt.Errorf("failed to copy file data: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	path := "/Submit/" + url.PathEscape(cargoID) + "/" + url.PathEscape(stageName)
	raw, err := c.postMultipart(ctx, path, writer.FormDataContentType(), body)
	if err != nil {
		return "", err
	}

	var out submitResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("failed to decode submit response: %w", err)
	}
	return out.Message, nil
}

// Summary returns the cross-stage rollup for one cargo.
func (c *Client) Summary(ctx context.Context, cargoID string) (*Summary, error) {
	var out Summary
	path := "/summary/" + url.PathEscape(cargoID)
	if err := c.getJSON(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StageSummary returns the rollup for one (cargo, stage) pair.
func (c *Client) StageSummary(ctx context.Context, cargoID, stageName string) (*Summary, error) {
	var out Summary
	path := "/summary/" + url.PathEscape(cargoID) + "/" + url.PathEscape(stageName)
	if err := c.getJSON(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// QCInspectionSummary returns the QC dashboard rollup.
func (c *Client) QCInspectionSummary(ctx context.Context) (*QCSummary, error) {
	var out QCSummary
	if err := c.getJSON(ctx, "/inspection/summary", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DashboardKPIs returns the manager KPI rollup for a date filter.
func (c *Client) DashboardKPIs(ctx context.Context, dateFilter string) (Aggregate, error) {
	return c.get(ctx, "/dashboard/kpis", url.Values{"date_filter": {dateFilter}})
}

// DamageRateTrend returns the damage-rate series for a view (daily,
// monthly, yearly).
func (c *Client) DamageRateTrend(ctx context.Context, view string) ([]map[string]interface{}, error) {
	return c.getList(ctx, "/damage-rate-trend", url.Values{"view": {view}})
}

// StageWiseDamage returns the per-stage damage rollup.
func (c *Client) StageWiseDamage(ctx context.Context, filter string) (Aggregate, error) {
	return c.get(ctx, "/stage-wise-damage", url.Values{"filter": {filter}})
}

// InspectionSummaryKPIs returns the QA performance KPI rollup.
func (c *Client) InspectionSummaryKPIs(ctx context.Context, filter string) (Aggregate, error) {
	return c.get(ctx, "/inspection_summary", url.Values{"filter": {filter}})
}

// InspectionTrend returns the inspection-volume series.
func (c *Client) InspectionTrend(ctx context.Context, view string) ([]map[string]interface{}, error) {
	return c.getList(ctx, "/inspection/trend", url.Values{"view": {view}})
}

// InspectionStageDistribution returns the per-stage inspection series.
func (c *Client) InspectionStageDistribution(ctx context.Context, view string) ([]map[string]interface{}, error) {
	return c.getList(ctx, "/inspection/stage-distribution", url.Values{"view": {view}})
}

// InspectionDamageDistribution returns the QA damage-distribution rollup.
func (c *Client) InspectionDamageDistribution(ctx context.Context, filter string) (Aggregate, error) {
	return c.get(ctx, "/inspection/damage-distribution", url.Values{"filter": {filter}})
}

// DamageDistribution returns the QC damage-distribution chart. An empty
// stage means all stages.
func (c *Client) DamageDistribution(ctx context.Context, stageName, targetDate string) (Aggregate, error) {
	return c.get(ctx, "/damage-distribution", url.Values{
		"stage_name":  {stageName},
		"target_date": {targetDate},
	})
}

// ConfidenceCargoDistribution returns the QC confidence chart.
func (c *Client) ConfidenceCargoDistribution(ctx context.Context, stageName, startDate string) (Aggregate, error) {
	return c.get(ctx, "/chart/confidence-cargo-distribution", url.Values{
		"stage_name": {stageName},
		"start_date": {startDate},
	})
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, readAPIError(resp)
	}

	return io.ReadAll(resp.Body)
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	body, err := c.get(ctx, path, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

func (c *Client) getList(ctx context.Context, path string, query url.Values) ([]map[string]interface{}, error) {
	body, err := c.get(ctx, path, query)
	if err != nil {
		return nil, err
	}
	var list []map[string]interface{}
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return list, nil
}

func (c *Client) postMultipart(ctx context.Context, path, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, readAPIError(resp)
	}

	return io.ReadAll(resp.Body)
}

// readAPIError extracts the backend's error message verbatim. FastAPI-style
// backends answer with either {"detail": ...} or {"message": ...}.
func readAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var parsed struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	message := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Detail != "" {
			message = parsed.Detail
		} else if parsed.Message != "" {
			message = parsed.Message
		}
	}

	return &APIError{StatusCode: resp.StatusCode, Message: message}
}

func stringValue(v interface{}) string {
	s, _ := v.(string)
	return s
}
