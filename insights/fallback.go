package insights

import "github.com/use-agent/sitegrade/models"

// fallbackThreshold is the dimension score below which a fallback
// recommendation is emitted.
const fallbackThreshold = 70

// highPriorityBelow is the score below which a fallback recommendation is
// marked High priority; between this and fallbackThreshold it is Medium.
const highPriorityBelow = 40

// fallbackTemplate is one fixed per-dimension recommendation.
type fallbackTemplate struct {
	title       string
	description string
	impact      string
}

var fallbackTemplates = []struct {
	dimension string
	template  fallbackTemplate
}{
	{"performance", fallbackTemplate{
		title:       "Optimize Page Speed",
		description: "Improve website loading times by optimizing images, enabling compression, and minimizing HTTP requests.",
		impact:      "High",
	}},
	{"seo", fallbackTemplate{
		title:       "Improve SEO Meta Tags",
		description: "Ensure the page has a unique, descriptive title and meta description within recommended character limits, with a single H1 heading.",
		impact:      "High",
	}},
	{"technical", fallbackTemplate{
		title:       "Fix Technical Health Issues",
		description: "Serve the site over HTTPS and add a viewport meta tag so the page renders correctly on mobile devices.",
		impact:      "High",
	}},
	{"accessibility", fallbackTemplate{
		title:       "Add Missing Alt Text",
		description: "Add descriptive alt text to all images for better accessibility and SEO.",
		impact:      "Medium",
	}},
	{"schema_faq", fallbackTemplate{
		title:       "Add Structured Data and FAQ Content",
		description: "Add schema.org markup (JSON-LD) and an FAQ section so search engines can surface rich results for this page.",
		impact:      "Medium",
	}},
}

var positiveRecommendation = models.Recommendation{
	Title:       "Keep Up the Good Work",
	Description: "All quality dimensions score well. Keep content fresh and monitor scores after significant page changes.",
	Priority:    models.PriorityLow,
	Impact:      "Low",
}

// Fallback derives recommendations from the static rule table: one entry per
// dimension scoring below 70, High priority under 40, Medium otherwise. When
// every dimension scores 70 or better it returns a single positive
// recommendation. It never returns an empty list.
func Fallback(in Input) models.Insights {
	scores := map[string]int{
		"performance":   in.Performance.Score,
		"seo":           in.SEO.Score,
		"technical":     in.Technical.Score,
		"accessibility": in.Accessibility.Score,
		"schema_faq":    in.SchemaFaqScore,
	}

	recs := []models.Recommendation{}
	for _, entry := range fallbackTemplates {
		score := scores[entry.dimension]
		if score >= fallbackThreshold {
			continue
		}
		priority := models.PriorityMedium
		if score < highPriorityBelow {
			priority = models.PriorityHigh
		}
		recs = append(recs, models.Recommendation{
			Title:       entry.template.title,
			Description: entry.template.description,
			Priority:    priority,
			Impact:      entry.template.impact,
		})
	}

	if len(recs) == 0 {
		recs = append(recs, positiveRecommendation)
	}

	return models.Insights{Recommendations: recs}
}
