package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"users-api/internal/usecase/user"
	"users-api/pkg/errors"
	"users-api/pkg/logger"
)

// LivenessMessage is the body served on GET /.
const LivenessMessage = "server is running"

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	uc  user.Usecase
	log *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc user.Usecase, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:  uc,
		log: log,
	}
}

// HealthResponse represents the response of GET /health
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Root handles GET /
func (h *UserHandler) Root(c *gin.Context) {
	c.String(http.StatusOK, LivenessMessage)
}

// ListUsers handles GET /users. The body is either the complete JSON array
// or the plain failure message, never a partial array.
func (h *UserHandler) ListUsers(c *gin.Context) {
	resp, err := h.uc.ListUsers(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	// encode before writing anything so a bad value still yields a clean 500
	body, err := json.Marshal(resp.Users)
	if err != nil {
		h.handleError(c, errors.Classify("encode users", err))
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// Health handles GET /health
func (h *UserHandler) Health(c *gin.Context) {
	if err := h.uc.CheckHealth(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "degraded", Database: "down"})
		return
	}

	c.JSON(http.StatusOK, HealthResponse{Status: "healthy", Database: "up"})
}

// handleError logs err in full and sends the status mapped from its kind
// with the generic public message.
func (h *UserHandler) handleError(c *gin.Context, err error) {
	status := errors.HTTPStatusOf(err)

	logger.WithContext(c.Request.Context(), h.log).Error("request failed",
		zap.String("path", c.Request.URL.Path),
		zap.String("kind", errors.KindOf(err).String()),
		zap.Int("status", status),
		zap.Error(err),
	)

	c.String(status, errors.PublicMessage)
}
