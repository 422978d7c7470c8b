package httpapi

import (
	"net/http"

	"github.com/dkovalev2/authgate/internal/common"
	"github.com/dkovalev2/authgate/internal/logging"
	"github.com/gin-gonic/gin"
)

// NewRouter wires the auth endpoints. The route set mirrors the upstream
// contract: /check answers any method, the rest are POST-only.
func NewRouter(h *Handler, logger logging.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(logger))

	router.POST("/registration", h.Register)
	router.POST("/login", h.Login)
	router.POST("/refresh", h.Refresh)
	router.Any("/check", RequireHeader(common.AuthorizationHeaderName), h.Check)

	router.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return router
}
