package handler

import (
	"net/http"
	"strings"

	"cargo-inspection-dashboard/internal/usecase/dashboard"
	"cargo-inspection-dashboard/pkg/utils"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	service *dashboard.Service
}

func NewDashboardHandler(service *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard/overview", h.Overview)
	router.GET("/history", h.History)
	router.GET("/summary/:cargo_id", h.CargoSummary)
	router.GET("/results/:cargo_id/:stage_name", h.StageResults)

	qc := router.Group("/qc")
	{
		qc.GET("/summary", h.QCSummary)
		qc.GET("/damage-distribution", h.DamageDistribution)
		qc.GET("/confidence-distribution", h.ConfidenceDistribution)
	}

	manager := router.Group("/manager")
	{
		manager.GET("/kpis", h.ManagerKPIs)
		manager.GET("/damage-rate-trend", h.DamageRateTrend)
		manager.GET("/stage-wise-damage", h.StageWiseDamage)
	}

	qa := router.Group("/qa")
	{
		qa.GET("/summary", h.QAKPIs)
		qa.GET("/trend", h.InspectionTrend)
		qa.GET("/stage-distribution", h.StageDistribution)
		qa.GET("/damage-distribution", h.QADamageDistribution)
	}
}

func (h *DashboardHandler) Overview(c *gin.Context) {
	sessions, err := h.service.Overview(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Recent sessions retrieved", sessions)
}

func (h *DashboardHandler) History(c *gin.Context) {
	var filter dashboard.HistoryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid filter parameters")
		return
	}

	sessions, err := h.service.History(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "History retrieved", sessions)
}

func (h *DashboardHandler) CargoSummary(c *gin.Context) {
	filter := dashboard.SummaryFilter{
		Stage: c.Query("stage"),
	}
	if defects := c.Query("defects"); defects != "" {
		filter.Defects = strings.Split(defects, ",")
	}

	view, err := h.service.CargoSummary(c.Request.Context(), c.Param("cargo_id"), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Summary retrieved", view)
}

func (h *DashboardHandler) StageResults(c *gin.Context) {
	view, err := h.service.StageResults(c.Request.Context(), c.Param("cargo_id"), c.Param("stage_name"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Results retrieved", view)
}

func (h *DashboardHandler) QCSummary(c *gin.Context) {
	view, err := h.service.QCDashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "QC dashboard retrieved", view)
}

func (h *DashboardHandler) DamageDistribution(c *gin.Context) {
	data, err := h.service.DamageDistribution(c.Request.Context(), c.Query("stage_name"), c.Query("target_date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}

func (h *DashboardHandler) ConfidenceDistribution(c *gin.Context) {
	data, err := h.service.ConfidenceDistribution(c.Request.Context(), c.Query("stage_name"), c.Query("start_date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}

func (h *DashboardHandler) ManagerKPIs(c *gin.Context) {
	data, err := h.service.ManagerKPIs(c.Request.Context(), c.Query("date_filter"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}

func (h *DashboardHandler) DamageRateTrend(c *gin.Context) {
	points, err := h.service.DamageRateTrend(c.Request.Context(), c.DefaultQuery("view", "daily"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Damage rate trend retrieved", points)
}

func (h *DashboardHandler) StageWiseDamage(c *gin.Context) {
	data, err := h.service.StageWiseDamage(c.Request.Context(), c.Query("filter"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}

func (h *DashboardHandler) QAKPIs(c *gin.Context) {
	data, err := h.service.QAKPIs(c.Request.Context(), c.Query("filter"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}

func (h *DashboardHandler) InspectionTrend(c *gin.Context) {
	points, err := h.service.InspectionTrend(c.Request.Context(), c.DefaultQuery("view", "daily"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Inspection trend retrieved", points)
}

func (h *DashboardHandler) StageDistribution(c *gin.Context) {
	items, err := h.service.StageDistribution(c.Request.Context(), c.DefaultQuery("view", "daily"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Stage distribution retrieved", items)
}

func (h *DashboardHandler) QADamageDistribution(c *gin.Context) {
	data, err := h.service.QADamageDistribution(c.Request.Context(), c.Query("filter"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}
