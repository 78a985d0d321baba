package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/sitegrade/models"
	"github.com/use-agent/sitegrade/store"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

// ListAnalyses returns a handler for GET /api/v1/analyses, the newest-first
// listing of stored analyses. The limit query parameter is clamped to
// [1, 100] and defaults to 10.
func ListAnalyses(results store.ResultStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := defaultListLimit
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, models.ErrorResponse{
					Error: &models.ErrorDetail{
						Code:    models.ErrCodeInvalidInput,
						Message: "limit must be an integer",
					},
				})
				return
			}
			limit = n
		}
		if limit < 1 {
			limit = defaultListLimit
		}
		if limit > maxListLimit {
			limit = maxListLimit
		}

		summaries, err := results.List(c.Request.Context(), limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInternal,
					Message: "failed to list analyses",
				},
			})
			return
		}
		if summaries == nil {
			summaries = []models.ResultSummary{}
		}

		c.JSON(http.StatusOK, gin.H{
			"analyses": summaries,
			"count":    len(summaries),
		})
	}
}
