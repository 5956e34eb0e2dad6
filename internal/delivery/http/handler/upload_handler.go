package handler

import (
	"net/http"

	"cargo-inspection-dashboard/internal/usecase/upload"
	"cargo-inspection-dashboard/pkg/utils"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	service *upload.Service
}

func NewUploadHandler(service *upload.Service) *UploadHandler {
	return &UploadHandler{service: service}
}

func (h *UploadHandler) RegisterRoutes(router *gin.RouterGroup) {
	cargo := router.Group("/cargo")
	{
		cargo.GET("/ids", h.ListCargoIDs)
		cargo.GET("/:cargo_id/details", h.GetCargoDetails)
	}
	router.POST("/uploads", h.Upload)
}

func (h *UploadHandler) ListCargoIDs(c *gin.Context) {
	ids, err := h.service.CargoIDs(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Cargo IDs retrieved", gin.H{"cargo_ids": ids})
}

func (h *UploadHandler) GetCargoDetails(c *gin.Context) {
	details, err := h.service.CargoDetails(c.Request.Context(), c.Param("cargo_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Cargo details retrieved", details)
}

// Upload accepts the inspection upload form: one media file plus cargo
// metadata, with an optional existing cargo id.
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "An inspection file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	req := upload.Request{
		FileName:  fileHeader.Filename,
		File:      file,
		Region:    c.PostForm("region"),
		Country:   c.PostForm("country"),
		Warehouse: c.PostForm("warehouse"),
		StageName: c.PostForm("stage_name"),
		Length:    c.PostForm("length"),
		Breadth:   c.PostForm("breadth"),
		Height:    c.PostForm("height"),
		CargoID:   c.PostForm("cargo_id"),
	}

	result, err := h.service.Upload(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Inspection uploaded", result)
}
