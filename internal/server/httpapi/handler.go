// Package httpapi exposes the auth service over HTTP: request schema
// validation, the guard middleware chain, and the mapping from the service
// error taxonomy to status codes.
package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/dkovalev2/authgate/internal/common"
	"github.com/dkovalev2/authgate/internal/logging"
	"github.com/dkovalev2/authgate/internal/server/services"
	"github.com/gin-gonic/gin"
)

// AuthService is the inbound surface consumed by the handlers.
type AuthService interface {
	Register(ctx context.Context, email, name, password string) (bool, error)
	Login(ctx context.Context, email, password string) (*services.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	ValidateAccess(authHeader string) bool
}

// Handler serves the four auth endpoints.
type Handler struct {
	auth        AuthService
	minNameLen  int
	passwordLen int
	logger      logging.Logger
}

func NewHandler(auth AuthService, minNameLen, passwordLen int, logger logging.Logger) *Handler {
	return &Handler{
		auth:        auth,
		minNameLen:  minNameLen,
		passwordLen: passwordLen,
		logger:      logger,
	}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required,jwt"`
}

// checkLengths applies the config-driven rules gin's static binding tags
// cannot express: the minimal name length and the fixed password length.
// An empty name is accepted here because "required" already rejected it.
func (h *Handler) checkLengths(name, password string) bool {
	if name != "" && len(name) < h.minNameLen {
		return false
	}
	return len(password) == h.passwordLen
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil || !h.checkLengths(req.Name, req.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "data validation error"})
		return
	}

	created, err := h.auth.Register(c.Request.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if !created {
		c.JSON(http.StatusConflict, gin.H{"error": "not created"})
		return
	}

	c.Status(http.StatusCreated)
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || !h.checkLengths("", req.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "data validation error"})
		return
	}

	pair, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, pair)
}

func (h *Handler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "data validation error"})
		return
	}

	pair, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, pair)
}

// Check validates the bearer access token in the Authorization header. The
// guard middleware has already rejected requests without the header.
func (h *Handler) Check(c *gin.Context) {
	if !h.auth.ValidateAccess(c.GetHeader(common.AuthorizationHeaderName)) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	c.Status(http.StatusOK)
}

// handleError maps the error taxonomy to transport responses. Unauthorized
// gets one generic body for every cause; internal errors are logged in full
// and answered with a generic 500; anything unexpected is logged and
// answered with an empty 500.
func (h *Handler) handleError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case errors.Is(err, common.ErrorInternal):
		h.logger.Error(ctx, "internal error", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	default:
		h.logger.Error(ctx, "critical error", "path", c.FullPath(), "error", err)
		c.Status(http.StatusInternalServerError)
	}
}
