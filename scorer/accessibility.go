package scorer

import (
	"fmt"
	"math"

	"github.com/use-agent/sitegrade/models"
)

// Accessibility scores image alt-text coverage. The deduction is
// proportional to the share of images without alt text; pages with no
// images have nothing to caption and score full marks.
func Accessibility(content *models.ParsedContent) models.DimensionScore {
	issues := []string{}

	total := len(content.Images)
	if total == 0 {
		return models.DimensionScore{Score: 100, Issues: issues}
	}

	withAlt := 0
	for _, img := range content.Images {
		if img.Alt != "" {
			withAlt++
		}
	}

	altPercentage := float64(withAlt) / float64(total) * 100
	deduction := int(math.Round((100 - altPercentage) * 0.5))
	if deduction > 0 {
		issues = append(issues, fmt.Sprintf("Only %.0f%% of images have alt text", altPercentage))
	}

	return models.DimensionScore{Score: clamp(100 - deduction), Issues: issues}
}
