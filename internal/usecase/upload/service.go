package upload

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"cargo-inspection-dashboard/internal/backend"
	domainCargo "cargo-inspection-dashboard/internal/domain/cargo"
	"cargo-inspection-dashboard/internal/logger"
	appErrors "cargo-inspection-dashboard/pkg/errors"
	"cargo-inspection-dashboard/pkg/utils"

	"go.uber.org/zap"
)

type Backend interface {
	CargoIDs(ctx context.Context) ([]string, error)
	CargoDetails(ctx context.Context, cargoID string) (*backend.CargoDetails, error)
	Upload(ctx context.Context, req backend.UploadRequest) (*backend.UploadResponse, error)
}

// Service implements the inspection upload flow
type Service struct {
	backend Backend
}

func NewService(b Backend) *Service {
	return &Service{backend: b}
}

// CargoIDs returns every known cargo id, sorted, as the autocomplete
// source for attaching an upload to an existing cargo.
func (s *Service) CargoIDs(ctx context.Context) ([]string, error) {
	ids, err := s.backend.CargoIDs(ctx)
	if err != nil {
		return nil, err
	}
	sort.Strings(ids)
	return ids, nil
}

// CargoDetails returns the stored metadata of an existing cargo so the
// client can prefill the form. The stored values simply overwrite whatever
// the operator typed; last fetch wins.
func (s *Service) CargoDetails(ctx context.Context, cargoID string) (*domainCargo.Details, error) {
	details, err := s.backend.CargoDetails(ctx, utils.SanitizeCargoID(cargoID))
	if err != nil {
		return nil, err
	}
	if details == nil {
		return nil, appErrors.ErrCargoNotFound
	}

	return &domainCargo.Details{
		Region:    details.Region,
		Country:   details.Country,
		Warehouse: details.Warehouse,
		LengthCm:  formatDimension(details.LengthCm),
		BreadthCm: formatDimension(details.BreadthCm),
		HeightCm:  formatDimension(details.HeightCm),
	}, nil
}

// Upload validates the form, posts the media to the backend, and merges
// the response with the submitted fields into the results view model.
func (s *Service) Upload(ctx context.Context, req Request) (*Result, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}
	if req.File == nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "An inspection file is required", nil)
	}

	resp, err := s.backend.Upload(ctx, backend.UploadRequest{
		FileName:  req.FileName,
		File:      req.File,
		StageName: req.StageName,
		Region:    req.Region,
		Country:   req.Country,
		Warehouse: req.Warehouse,
		Length:    req.Length,
		Breadth:   req.Breadth,
		Height:    req.Height,
		CargoID:   utils.SanitizeCargoID(req.CargoID),
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Inspection media uploaded",
		zap.String("cargo_id", resp.CargoID),
		zap.String("stage_name", resp.StageName),
		zap.String("file_name", req.FileName),
		zap.String("event", "inspection_uploaded"),
	)

	// The results view shows the server response enriched with what the
	// operator submitted.
	details := make(map[string]interface{}, len(resp.Raw)+9)
	for k, v := range resp.Raw {
		details[k] = v
	}
	details["input_image_path"] = resp.FilePath
	details["region"] = req.Region
	details["country"] = req.Country
	details["warehouse"] = req.Warehouse
	details["stage_name"] = req.StageName
	details["length"] = req.Length
	details["breadth"] = req.Breadth
	details["height"] = req.Height
	details["file_name"] = req.FileName

	return &Result{
		CargoID:    resp.CargoID,
		StageName:  resp.StageName,
		RedirectTo: fmt.Sprintf("/results/%s/%s", resp.CargoID, resp.StageName),
		Details:    details,
	}, nil
}

func formatDimension(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
