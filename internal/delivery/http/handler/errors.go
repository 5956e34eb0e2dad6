package handler

import (
	"errors"
	"net/http"

	"cargo-inspection-dashboard/internal/backend"
	appErrors "cargo-inspection-dashboard/pkg/errors"
	"cargo-inspection-dashboard/pkg/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto the response envelope. Backend
// rejections surface their message verbatim as a gateway error.
func respondError(c *gin.Context, err error) {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		utils.ErrorResponse(c, http.StatusBadGateway, apiErr.Message)
		return
	}

	switch {
	case errors.Is(err, appErrors.ErrIncidentNotFound),
		errors.Is(err, appErrors.ErrCargoNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, appErrors.ErrReviewEmpty),
		errors.Is(err, appErrors.ErrUpdateIncomplete),
		errors.Is(err, appErrors.ErrErrorTypeRequired),
		errors.Is(err, appErrors.ErrInvalidInput):
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
	default:
		var appErr *appErrors.AppError
		if errors.As(err, &appErr) {
			utils.ErrorResponse(c, http.StatusBadRequest, appErr.Message)
			return
		}
		utils.ErrorResponse(c, http.StatusBadGateway, "Failed to reach the detection backend")
	}
}
