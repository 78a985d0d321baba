package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/sitegrade/analyzer"
	"github.com/use-agent/sitegrade/models"
)

// Analyze returns a handler for POST /api/v1/analyze.
//
// It validates the URL, starts the analysis job in the background, and
// returns the session id immediately; callers poll the progress endpoint.
func Analyze(an *analyzer.Analyzer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.AnalyzeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}

		if !models.ValidateURL(req.URL) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: "url must be a valid http(s) URL or bare hostname",
				},
			})
			return
		}

		sess := an.Start(req.URL)

		c.JSON(http.StatusAccepted, models.AnalyzeAccepted{
			SessionID: sess.ID,
			Status:    sess.Status,
			Message:   "Analysis started",
		})
	}
}
