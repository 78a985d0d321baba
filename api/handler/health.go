package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/sitegrade/models"
	"github.com/use-agent/sitegrade/session"
	"github.com/use-agent/sitegrade/store"
)

// Version is the service version reported by the health endpoint.
const Version = "0.1.0"

// Health returns a handler for GET /api/v1/health. The service reports
// degraded when the persistent store cannot be queried but keeps serving.
func Health(sessions *session.Store, results store.ResultStore, startedAt time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "healthy"
		stored, err := results.Count(c.Request.Context())
		if err != nil {
			status = "degraded"
			stored = 0
		}

		c.JSON(http.StatusOK, models.HealthResponse{
			Status:         status,
			Uptime:         time.Since(startedAt).Round(time.Second).String(),
			ActiveSessions: sessions.Len(),
			StoredAnalyses: stored,
			Version:        Version,
		})
	}
}
