package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/sitegrade/models"
	"github.com/use-agent/sitegrade/session"
)

// Progress returns a handler for GET /api/v1/analyze/:id/progress.
func Progress(sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		sess, ok := sessions.Get(id)
		if !ok {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeSessionNotFound,
					Message: "session not found",
				},
			})
			return
		}

		c.JSON(http.StatusOK, models.ProgressResponse{
			SessionID: sess.ID,
			Status:    sess.Status,
			Progress:  sess.Progress,
			Message:   sess.Message,
		})
	}
}
