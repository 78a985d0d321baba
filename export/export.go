// Package export renders a completed AnalysisResult into downloadable
// report bytes. The core computes results; this is the thin rendering
// collaborator in front of it.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/use-agent/sitegrade/models"
)

// Render produces report bytes and their content type for the requested
// format: "json", "csv", or "text".
func Render(result *models.AnalysisResult, format string) ([]byte, string, error) {
	switch format {
	case "", "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return nil, "", fmt.Errorf("export: marshal result: %w", err)
		}
		return data, "application/json", nil
	case "csv":
		data, err := renderCSV(result)
		if err != nil {
			return nil, "", err
		}
		return data, "text/csv", nil
	case "text":
		return renderText(result), "text/plain; charset=utf-8", nil
	default:
		return nil, "", models.NewAnalysisError(models.ErrCodeInvalidInput,
			"unsupported export format: "+format, nil)
	}
}

func renderCSV(result *models.AnalysisResult) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	rows := [][]string{
		{"dimension", "score", "issues"},
		{"overall", strconv.Itoa(result.OverallScore), ""},
		{"performance", strconv.Itoa(result.Performance.Score), strings.Join(result.Performance.Issues, "; ")},
		{"seo", strconv.Itoa(result.SEO.Score), strings.Join(result.SEO.Issues, "; ")},
		{"technical", strconv.Itoa(result.Technical.Score), strings.Join(result.Technical.Issues, "; ")},
		{"accessibility", strconv.Itoa(result.Accessibility.Score), strings.Join(result.Accessibility.Issues, "; ")},
		{"schema_faq", strconv.Itoa(result.SchemaFaqScore), string(result.SchemaFaqAnalysis.CategoryLabel)},
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("export: write csv: %w", err)
	}
	return buf.Bytes(), nil
}

func renderText(result *models.AnalysisResult) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "Website Quality Report\n")
	fmt.Fprintf(&b, "======================\n\n")
	fmt.Fprintf(&b, "URL:        %s\n", result.URL)
	fmt.Fprintf(&b, "Analyzed:   %s\n", result.CreatedAt.Format("2006-01-02 15:04 UTC"))
	fmt.Fprintf(&b, "Overall:    %d/100\n\n", result.OverallScore)

	writeDimension(&b, "Performance", result.Performance)
	writeDimension(&b, "SEO", result.SEO)
	writeDimension(&b, "Technical", result.Technical)
	writeDimension(&b, "Accessibility", result.Accessibility)

	fmt.Fprintf(&b, "Structured Data & FAQ: %d/100\n", result.SchemaFaqScore)
	fmt.Fprintf(&b, "  %s\n\n", result.SchemaFaqAnalysis.CategoryLabel)

	if len(result.Insights.Recommendations) > 0 {
		fmt.Fprintf(&b, "Recommendations\n")
		fmt.Fprintf(&b, "---------------\n")
		for i, rec := range result.Insights.Recommendations {
			fmt.Fprintf(&b, "%d. [%s] %s\n   %s\n", i+1, rec.Priority, rec.Title, rec.Description)
		}
	}

	return []byte(b.String())
}

func writeDimension(b *strings.Builder, name string, dim models.DimensionScore) {
	fmt.Fprintf(b, "%s: %d/100\n", name, dim.Score)
	for _, issue := range dim.Issues {
		fmt.Fprintf(b, "  - %s\n", issue)
	}
	b.WriteByte('\n')
}
