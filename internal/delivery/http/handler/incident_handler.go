package handler

import (
	"net/http"

	"cargo-inspection-dashboard/internal/usecase/incident"
	"cargo-inspection-dashboard/pkg/utils"

	"github.com/gin-gonic/gin"
)

type IncidentHandler struct {
	service *incident.Service
}

func NewIncidentHandler(service *incident.Service) *IncidentHandler {
	return &IncidentHandler{service: service}
}

func (h *IncidentHandler) RegisterRoutes(router *gin.RouterGroup) {
	incidents := router.Group("/incidents")
	{
		incidents.GET("", h.ListIncidents)
		incidents.GET("/:cargo_id/:stage_name", h.GetIncident)
		incidents.POST("/:cargo_id/:stage_name/submit", h.SubmitInspection)
	}
}

func (h *IncidentHandler) ListIncidents(c *gin.Context) {
	var filter incident.Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid filter parameters")
		return
	}

	views, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Incidents retrieved", views)
}

func (h *IncidentHandler) GetIncident(c *gin.Context) {
	cargoID := c.Param("cargo_id")
	stageName := c.Param("stage_name")

	detail, err := h.service.Get(c.Request.Context(), cargoID, stageName)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Incident retrieved", detail)
}

// SubmitInspection accepts the two-mode review/update form as multipart
// form data. The mode field selects which validation rules apply.
func (h *IncidentHandler) SubmitInspection(c *gin.Context) {
	cargoID := c.Param("cargo_id")
	stageName := c.Param("stage_name")

	form, err := c.MultipartForm()
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	sub := incident.Submission{
		Mode:       incident.Mode(formValue(form.Value, "mode")),
		Notes:      utils.SanitizeText(formValue(form.Value, "notes")),
		ErrorType:  formValue(form.Value, "error"),
		BagType:    formValue(form.Value, "bag_type"),
		DamageType: formValue(form.Value, "damage_type"),
	}
	if sub.Mode == "" {
		sub.Mode = incident.ModeReview
	}

	for _, fileHeader := range form.File["images"] {
		file, err := fileHeader.Open()
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Failed to read uploaded image")
			return
		}
		defer file.Close()
		sub.Images = append(sub.Images, incident.Image{
			Name: fileHeader.Filename,
			Data: file,
		})
	}

	result, err := h.service.Submit(c.Request.Context(), cargoID, stageName, sub)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, result.Message, result)
}

func formValue(values map[string][]string, key string) string {
	if v, ok := values[key]; ok && len(v) > 0 {
		return v[0]
	}
	return ""
}
