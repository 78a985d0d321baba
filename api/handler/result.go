package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/sitegrade/models"
	"github.com/use-agent/sitegrade/session"
	"github.com/use-agent/sitegrade/store"
)

// Result returns a handler for GET /api/v1/analyze/:id/result.
//
// Completed sessions return the full result. Sessions still in flight get a
// 409 so clients know to keep polling. Sessions already evicted from memory
// fall through to the persistent store.
func Result(sessions *session.Store, results store.ResultStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		sess, ok := sessions.Get(id)
		if ok {
			switch {
			case sess.Status == models.StatusCompleted && sess.Result != nil:
				c.JSON(http.StatusOK, sess.Result)
			case sess.Status == models.StatusError:
				c.JSON(http.StatusConflict, models.ErrorResponse{
					Error: &models.ErrorDetail{
						Code:    models.ErrCodeResultNotReady,
						Message: "analysis failed: " + sess.Message,
					},
				})
			default:
				c.JSON(http.StatusConflict, models.ErrorResponse{
					Error: &models.ErrorDetail{
						Code:    models.ErrCodeResultNotReady,
						Message: "analysis still in progress",
					},
				})
			}
			return
		}

		result, err := results.Get(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, models.ErrorResponse{
					Error: &models.ErrorDetail{
						Code:    models.ErrCodeSessionNotFound,
						Message: "session not found",
					},
				})
				return
			}
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInternal,
					Message: "failed to load result",
				},
			})
			return
		}

		c.JSON(http.StatusOK, result)
	}
}
