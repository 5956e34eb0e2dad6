package handler

import (
	"net/http"

	"cargo-inspection-dashboard/internal/usecase/user"
	"cargo-inspection-dashboard/pkg/utils"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	service *user.Service
}

func NewSessionHandler(service *user.Service) *SessionHandler {
	return &SessionHandler{service: service}
}

func (h *SessionHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/login", h.Login)
}

func (h *SessionHandler) RegisterProfileRoutes(router *gin.RouterGroup) {
	router.GET("/profile", h.Profile)
}

func (h *SessionHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, err := h.service.Login(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Session started", session)
}

func (h *SessionHandler) Profile(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "Profile retrieved", gin.H{
		"session_id": c.GetString("sessionID"),
		"name":       c.GetString("name"),
		"role":       c.GetString("role"),
	})
}
