package user

import (
	"time"

	"cargo-inspection-dashboard/internal/config"
	"cargo-inspection-dashboard/internal/logger"
	appErrors "cargo-inspection-dashboard/pkg/errors"
	"cargo-inspection-dashboard/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service mints demo dashboard sessions. There is no credential check and
// no user store; the login screen only chooses a display name and a role.
type Service struct {
	config *config.Config
}

func NewService(cfg *config.Config) *Service {
	return &Service{config: cfg}
}

type LoginRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
	Role string `json:"role" validate:"required,session_role"`
}

type SessionResponse struct {
	SessionID string    `json:"session_id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *Service) Login(req *LoginRequest) (*SessionResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	sessionID := uuid.New().String()
	name := utils.SanitizeString(req.Name)

	token, expiresAt, err := utils.GenerateToken(
		sessionID, name, req.Role,
		s.config.Session.Secret, s.config.Session.ExpiryHours,
	)
	if err != nil {
		return nil, err
	}

	logger.Info("Dashboard session started",
		zap.String("session_id", sessionID),
		zap.String("role", req.Role),
		zap.String("event", "session_started"),
	)

	return &SessionResponse{
		SessionID: sessionID,
		Name:      name,
		Role:      req.Role,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}
