package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/sitegrade/export"
	"github.com/use-agent/sitegrade/models"
	"github.com/use-agent/sitegrade/session"
	"github.com/use-agent/sitegrade/store"
)

var exportExtensions = map[string]string{
	"":     "json",
	"json": "json",
	"csv":  "csv",
	"text": "txt",
}

// Export returns a handler for GET /api/v1/analyze/:id/export.
//
// The result is resolved the same way as the result endpoint, then rendered
// by the export package into the requested format and served as a download.
func Export(sessions *session.Store, results store.ResultStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		format := c.Query("format")

		result, errDetail, status := resolveResult(c, sessions, results, id)
		if errDetail != nil {
			c.JSON(status, models.ErrorResponse{Error: errDetail})
			return
		}

		data, contentType, err := export.Render(result, format)
		if err != nil {
			var ae *models.AnalysisError
			if errors.As(err, &ae) {
				c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: ae.ToDetail()})
				return
			}
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInternal,
					Message: "failed to render export",
				},
			})
			return
		}

		filename := fmt.Sprintf("sitegrade-%s.%s", id, exportExtensions[format])
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.Data(http.StatusOK, contentType, data)
	}
}

// resolveResult finds the completed result for a session, checking the
// in-memory session store before the persistent store.
func resolveResult(c *gin.Context, sessions *session.Store, results store.ResultStore, id string) (*models.AnalysisResult, *models.ErrorDetail, int) {
	sess, ok := sessions.Get(id)
	if ok {
		if sess.Status == models.StatusCompleted && sess.Result != nil {
			return sess.Result, nil, 0
		}
		return nil, &models.ErrorDetail{
			Code:    models.ErrCodeResultNotReady,
			Message: "analysis has not completed",
		}, http.StatusConflict
	}

	result, err := results.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &models.ErrorDetail{
				Code:    models.ErrCodeSessionNotFound,
				Message: "session not found",
			}, http.StatusNotFound
		}
		return nil, &models.ErrorDetail{
			Code:    models.ErrCodeInternal,
			Message: "failed to load result",
		}, http.StatusInternalServerError
	}
	return result, nil, 0
}
