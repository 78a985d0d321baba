package insights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/use-agent/sitegrade/config"
	"github.com/use-agent/sitegrade/models"
)

// Input carries everything the generator needs to describe the page to the
// model or to pick fallback recommendations.
type Input struct {
	URL            string
	Content        *models.ParsedContent
	Performance    models.DimensionScore
	SEO            models.DimensionScore
	Technical      models.DimensionScore
	Accessibility  models.DimensionScore
	SchemaFaq      models.SchemaFaqAnalysis
	SchemaFaqScore int
}

// Generator produces improvement recommendations: AI-generated when a
// text-generation endpoint is configured and reachable, otherwise from the
// deterministic fallback table. Generate never fails and always returns at
// least one recommendation.
type Generator struct {
	client *Client
	cfg    config.InsightsConfig
}

// NewGenerator creates a Generator. A nil client (no endpoint configured)
// routes every call straight to the fallback table.
func NewGenerator(client *Client, cfg config.InsightsConfig) *Generator {
	if cfg.MaxRecommendations <= 0 {
		cfg.MaxRecommendations = 5
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	return &Generator{client: client, cfg: cfg}
}

// Generate requests recommendations from the text-generation service with
// exactly one retry on transient failure, falling back to the static rule
// table on any exhausted or malformed outcome.
func (g *Generator) Generate(ctx context.Context, in Input) models.Insights {
	if g.client == nil {
		return Fallback(in)
	}

	raw, err := g.complete(ctx, in)
	if err != nil && errors.Is(err, ErrTransient) {
		slog.Warn("insight generation failed, retrying once", "url", in.URL, "error", err)
		raw, err = g.complete(ctx, in)
	}
	if err != nil {
		slog.Warn("insight generation failed, using fallback", "url", in.URL, "error", err)
		return Fallback(in)
	}

	insights, ok := parseRecommendations(raw, g.cfg.MaxRecommendations)
	if !ok {
		slog.Warn("insight response malformed, using fallback", "url", in.URL)
		return Fallback(in)
	}
	return insights
}

func (g *Generator) complete(ctx context.Context, in Input) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()
	return g.client.Complete(callCtx, systemPrompt, buildUserPrompt(in, g.cfg.MaxRecommendations))
}

const systemPrompt = "You are an expert SEO and web performance consultant. " +
	"Analyze the provided website data and provide specific, actionable recommendations for improvement. " +
	"Return ONLY valid JSON."

// buildUserPrompt summarizes scores, top issues, and the schema/FAQ state
// into a structured prompt requesting a bounded recommendation list.
func buildUserPrompt(in Input, maxRecs int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Website: %s\n", in.URL)
	fmt.Fprintf(&b, "Title: %s\n", orNA(in.Content.Title))
	fmt.Fprintf(&b, "Meta Description: %s\n", orNA(in.Content.MetaDescription))
	fmt.Fprintf(&b, "Word Count: %d\n", in.Content.WordCount)
	fmt.Fprintf(&b, "H1 Tags: %d\n", in.Content.H1Count())
	fmt.Fprintf(&b, "Images: %d\n", len(in.Content.Images))
	fmt.Fprintf(&b, "Internal Links: %d\n", in.Content.InternalLinksCount)
	fmt.Fprintf(&b, "External Links: %d\n", in.Content.ExternalLinksCount)
	fmt.Fprintf(&b, "Structured Data / FAQ: %s\n", in.SchemaFaq.CategoryLabel)

	if in.Content.Excerpt != "" {
		fmt.Fprintf(&b, "\nContent excerpt: %s\n", in.Content.Excerpt)
	}

	fmt.Fprintf(&b, "\nPerformance Issues: %s\n", strings.Join(in.Performance.Issues, ", "))
	fmt.Fprintf(&b, "SEO Issues: %s\n", strings.Join(in.SEO.Issues, ", "))
	fmt.Fprintf(&b, "Technical Issues: %s\n", strings.Join(in.Technical.Issues, ", "))
	fmt.Fprintf(&b, "Accessibility Issues: %s\n", strings.Join(in.Accessibility.Issues, ", "))

	fmt.Fprintf(&b, "\nCurrent Scores:\n")
	fmt.Fprintf(&b, "- Performance: %d/100\n", in.Performance.Score)
	fmt.Fprintf(&b, "- SEO: %d/100\n", in.SEO.Score)
	fmt.Fprintf(&b, "- Technical: %d/100\n", in.Technical.Score)
	fmt.Fprintf(&b, "- Accessibility: %d/100\n", in.Accessibility.Score)
	fmt.Fprintf(&b, "- Structured Data & FAQ: %d/100\n", in.SchemaFaqScore)

	fmt.Fprintf(&b, "\nProvide 3-%d specific, actionable recommendations to improve this website. ", maxRecs)
	b.WriteString(`Format as JSON with a "recommendations" array containing objects with "title", "description", "priority" (High/Medium/Low), and "impact" fields.`)

	return b.String()
}

// parseRecommendations decodes the model reply into Insights. Replies with
// no usable recommendations count as malformed.
func parseRecommendations(raw string, maxRecs int) (models.Insights, bool) {
	var insights models.Insights
	if err := json.Unmarshal([]byte(raw), &insights); err != nil {
		return models.Insights{}, false
	}

	valid := make([]models.Recommendation, 0, len(insights.Recommendations))
	for _, rec := range insights.Recommendations {
		if rec.Title == "" || rec.Description == "" {
			continue
		}
		switch rec.Priority {
		case models.PriorityHigh, models.PriorityMedium, models.PriorityLow:
		default:
			rec.Priority = models.PriorityMedium
		}
		if rec.Impact == "" {
			rec.Impact = "Moderate"
		}
		valid = append(valid, rec)
	}

	if len(valid) == 0 {
		return models.Insights{}, false
	}
	if len(valid) > maxRecs {
		valid = valid[:maxRecs]
	}
	return models.Insights{Recommendations: valid}, true
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
