package scorer

import (
	"net/http"

	"github.com/use-agent/sitegrade/models"
)

// Technical scores transport-level health: HTTPS, mobile viewport, and the
// response status. The status check is defensive — the fetcher fails first
// on error statuses, so it normally never fires.
func Technical(content *models.ParsedContent, page *models.FetchedPage) models.DimensionScore {
	score := 100
	issues := []string{}

	if !content.UsesHTTPS {
		score -= 30
		issues = append(issues, "Website not using HTTPS")
	}

	if !content.HasViewportMeta {
		score -= 20
		issues = append(issues, "Missing viewport meta tag")
	}

	if page.StatusCode >= http.StatusBadRequest {
		score -= 10
		issues = append(issues, "Page responded with an error status")
	}

	if content.ParseDegraded {
		issues = append(issues, "Page markup could not be fully parsed; results may be incomplete")
	}

	return models.DimensionScore{Score: clamp(score), Issues: issues}
}
