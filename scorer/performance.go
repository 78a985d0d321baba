package scorer

import (
	"fmt"
	"time"

	"github.com/use-agent/sitegrade/models"
)

const (
	slowResponse     = 3 * time.Second
	moderateResponse = 1500 * time.Millisecond
	largePageBytes   = 2_000_000
	imageBloatFree   = 20 // images tolerated before the bloat penalty
	imageBloatStep   = 10 // each further block of this many images costs points
)

// Performance scores response time, page weight, and image bloat.
func Performance(content *models.ParsedContent, page *models.FetchedPage) models.DimensionScore {
	score := 100
	issues := []string{}

	switch {
	case page.ResponseTime > slowResponse:
		score -= 20
		issues = append(issues, "Slow response time (>3 seconds)")
	case page.ResponseTime > moderateResponse:
		score -= 10
		issues = append(issues, "Moderate response time (>1.5 seconds)")
	}

	if page.ContentSize > largePageBytes {
		score -= 15
		issues = append(issues, "Large page size (>2MB)")
	}

	if extra := len(content.Images) - imageBloatFree; extra > 0 {
		if blocks := extra / imageBloatStep; blocks > 0 {
			score -= 5 * blocks
			issues = append(issues, fmt.Sprintf("High image count (%d images)", len(content.Images)))
		}
	}

	return models.DimensionScore{Score: clamp(score), Issues: issues}
}
