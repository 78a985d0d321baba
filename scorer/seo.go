package scorer

import "github.com/use-agent/sitegrade/models"

const (
	titleMinLen = 10
	titleMaxLen = 60
	metaMinLen  = 50
	metaMaxLen  = 160
)

// SEO scores title, meta description, heading structure, and link presence.
// Length-range deductions only apply when the field is present; a missing
// field takes the missing-field deduction alone.
func SEO(content *models.ParsedContent) models.DimensionScore {
	score := 100
	issues := []string{}

	if content.Title == "" {
		score -= 15
		issues = append(issues, "Missing page title")
	} else if n := len(content.Title); n < titleMinLen || n > titleMaxLen {
		score -= 10
		issues = append(issues, "Title length outside the recommended 10-60 characters")
	}

	if content.MetaDescription == "" {
		score -= 15
		issues = append(issues, "Missing meta description")
	} else if n := len(content.MetaDescription); n < metaMinLen || n > metaMaxLen {
		score -= 10
		issues = append(issues, "Meta description length outside the recommended 50-160 characters")
	}

	switch h1 := content.H1Count(); {
	case h1 == 0:
		score -= 10
		issues = append(issues, "Missing H1 tag")
	case h1 > 1:
		score -= 5
		issues = append(issues, "Multiple H1 tags found")
	}

	if content.TotalLinks() == 0 {
		score -= 10
		issues = append(issues, "No links found on the page")
	}

	return models.DimensionScore{Score: clamp(score), Issues: issues}
}
