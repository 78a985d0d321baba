// Package schemafaq detects structured-data markup (JSON-LD, microdata,
// RDFa) and FAQ signals in raw page markup, and resolves the four-way
// presence category. Classification is deterministic: identical markup
// always yields identical counts and the same category.
package schemafaq

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/use-agent/sitegrade/models"
)

// Precompiled selectors for the three structured-data encodings.
var (
	selJSONLD    = cascadia.MustCompile(`script[type="application/ld+json"]`)
	selMicrodata = cascadia.MustCompile(`[itemscope]`)
	selRDFa      = cascadia.MustCompile(`[typeof]`)
)

// previewMaxLen caps the markup preview stored in an evidence record.
const previewMaxLen = 80

// Classifier scans raw markup for structured-data and FAQ signals.
type Classifier struct {
	// evidenceCap limits evidence records kept per detection kind.
	// Counts always reflect the true totals.
	evidenceCap int
}

// New creates a Classifier. evidenceCap <= 0 falls back to 10.
func New(evidenceCap int) *Classifier {
	if evidenceCap <= 0 {
		evidenceCap = 10
	}
	return &Classifier{evidenceCap: evidenceCap}
}

// Classify scans the raw markup (not just extracted text) and returns the
// full schema/FAQ analysis with the resolved category label.
func (c *Classifier) Classify(rawMarkup string) models.SchemaFaqAnalysis {
	analysis := models.SchemaFaqAnalysis{
		SchemaDetails: models.SchemaDetails{
			SchemaTypes: []string{},
			Locations:   []models.Evidence{},
		},
		FaqDetails: models.FaqDetails{
			Indicators: []string{},
			Locations:  []models.Evidence{},
		},
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawMarkup))
	if err != nil {
		// Nothing detectable in unparseable markup.
		analysis.CategoryLabel, _ = models.Classify(false, false)
		return analysis
	}

	schema := c.detectSchema(doc)
	faq := c.detectFaq(doc, schema)

	analysis.SchemaDetails = schema.details()
	analysis.FaqDetails = faq.details()

	analysis.HasSchema = schema.total() > 0
	analysis.HasFaq = faq.questionCount >= 2 || len(faq.indicators) > 0
	analysis.CategoryLabel, _ = models.Classify(analysis.HasSchema, analysis.HasFaq)

	return analysis
}

// Score returns the coarse categorical score for an analysis: 100 when both
// schema and FAQ are present, 60 for exactly one, 0 for neither.
func Score(a models.SchemaFaqAnalysis) int {
	_, score := models.Classify(a.HasSchema, a.HasFaq)
	return score
}

// preview shortens text for an evidence record.
func preview(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if len(text) > previewMaxLen {
		return text[:previewMaxLen]
	}
	return text
}
