package models

// Category is the four-way schema/FAQ presence classification. It is a
// closed set: the classifier always resolves to exactly one of these.
type Category string

const (
	CategoryBoth       Category = "✅ Both Schema and FAQ"
	CategorySchemaOnly Category = "⚠️ Schema Only"
	CategoryFaqOnly    Category = "⚠️ FAQ Only"
	CategoryNeither    Category = "❌ Neither Schema nor FAQ"
)

// Classify maps the two presence booleans to a category and its coarse
// categorical score (100 both, 60 exactly one, 0 neither).
func Classify(hasSchema, hasFaq bool) (Category, int) {
	switch {
	case hasSchema && hasFaq:
		return CategoryBoth, 100
	case hasSchema:
		return CategorySchemaOnly, 60
	case hasFaq:
		return CategoryFaqOnly, 60
	default:
		return CategoryNeither, 0
	}
}

// Evidence records one occurrence of a structured-data or FAQ signal in the
// raw markup: what was matched, where, and a short preview.
type Evidence struct {
	// Type is the schema type or signal name (e.g. "FAQPage", "heading").
	Type string `json:"type"`

	// Source is the markup kind that produced the match:
	// "json-ld", "microdata", "rdfa", "heading", "container", "qa-pair".
	Source string `json:"source"`

	// Position is the zero-based occurrence index within its source kind.
	Position int `json:"position"`

	// Preview is a short excerpt of the matched markup or text.
	Preview string `json:"preview,omitempty"`
}

// SchemaDetails tallies structured-data markup found on the page. Counts
// reflect the true totals; Locations is capped for display.
type SchemaDetails struct {
	JSONLDCount    int        `json:"json_ld_count"`
	MicrodataCount int        `json:"microdata_count"`
	RDFaCount      int        `json:"rdfa_count"`
	SchemaTypes    []string   `json:"schema_types"`
	Locations      []Evidence `json:"schema_locations"`
}

// FaqDetails tallies FAQ signals found on the page.
type FaqDetails struct {
	QuestionCount int        `json:"question_count"`
	AnswerCount   int        `json:"answer_count"`
	FaqContainers int        `json:"faq_containers"`
	Indicators    []string   `json:"faq_indicators"`
	Locations     []Evidence `json:"faq_locations"`
}

// SchemaFaqAnalysis is the classifier output: presence flags, the resolved
// category, and the evidence behind both detections.
type SchemaFaqAnalysis struct {
	HasSchema     bool          `json:"has_schema"`
	HasFaq        bool          `json:"has_faq"`
	CategoryLabel Category      `json:"category_label"`
	SchemaDetails SchemaDetails `json:"schema_details"`
	FaqDetails    FaqDetails    `json:"faq_details"`
}
