package models

import "time"

// SessionStatus is the lifecycle state of an analysis session.
// Transitions: pending → running → completed | error. Terminal states
// never transition again.
type SessionStatus string

const (
	StatusPending   SessionStatus = "pending"
	StatusRunning   SessionStatus = "running"
	StatusCompleted SessionStatus = "completed"
	StatusError     SessionStatus = "error"
)

// Terminal reports whether the status is a terminal state.
func (s SessionStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusError
}

// AnalysisSession is one in-flight or finished analysis job. Sessions are
// stored as immutable snapshots; the orchestrator replaces the whole record
// on every update, so readers never observe a half-written session.
type AnalysisSession struct {
	ID        string          `json:"session_id"`
	URL       string          `json:"url"`
	Status    SessionStatus   `json:"status"`
	Progress  int             `json:"progress"` // 0-100, monotonically non-decreasing
	Message   string          `json:"message"`
	CreatedAt time.Time       `json:"created_at"`
	Result    *AnalysisResult `json:"result,omitempty"` // non-nil iff Status == completed
}

// FetchedPage is the raw outcome of fetching the target URL, consumed once
// by the content extractor and the classifier.
type FetchedPage struct {
	FinalURL     string
	StatusCode   int
	RawMarkup    string
	ResponseTime time.Duration
	ContentSize  int
}

// Image is an image element extracted from the page.
type Image struct {
	Src string `json:"src"`
	Alt string `json:"alt,omitempty"`
}

// ParsedContent is the structured content model extracted from raw markup.
// Immutable once produced; shared read-only by all scorers and the classifier.
type ParsedContent struct {
	// Title is the trimmed <title> text, empty when absent.
	Title string `json:"title"`

	// MetaDescription is the content of <meta name="description">.
	MetaDescription string `json:"meta_description"`

	// Headings maps "h1".."h6" to the ordered trimmed heading texts.
	Headings map[string][]string `json:"headings"`

	// Images lists every <img> in document order.
	Images []Image `json:"images"`

	InternalLinksCount int `json:"internal_links_count"`
	ExternalLinksCount int `json:"external_links_count"`

	// WordCount counts words in visible text only (script/style excluded).
	WordCount int `json:"word_count"`

	HasViewportMeta bool `json:"has_viewport_meta"`
	UsesHTTPS       bool `json:"uses_https"`

	// Excerpt is a short main-content extract used when building the
	// insight prompt. Not scored.
	Excerpt string `json:"excerpt,omitempty"`

	// ParseDegraded marks markup that could not be fully parsed. Internal
	// signal only: scorers widen their issue lists but never fail on it.
	ParseDegraded bool `json:"-"`
}

// H1Count returns the number of h1 headings.
func (p *ParsedContent) H1Count() int {
	return len(p.Headings["h1"])
}

// TotalLinks returns internal + external link count.
func (p *ParsedContent) TotalLinks() int {
	return p.InternalLinksCount + p.ExternalLinksCount
}

// DimensionScore is the outcome of one quality dimension: a 0-100 score and
// the human-readable issues behind each deduction.
type DimensionScore struct {
	Score  int      `json:"score"`
	Issues []string `json:"issues"`
}

// AnalysisResult aggregates everything computed for one session. Created
// once by the orchestrator, immutable thereafter, persisted for listing.
type AnalysisResult struct {
	URL       string `json:"url"`
	SessionID string `json:"session_id"`

	OverallScore int `json:"overall_score"`

	Performance   DimensionScore `json:"performance"`
	SEO           DimensionScore `json:"seo"`
	Technical     DimensionScore `json:"technical"`
	Accessibility DimensionScore `json:"accessibility"`

	SchemaFaqScore    int               `json:"schema_faq_score"`
	SchemaFaqAnalysis SchemaFaqAnalysis `json:"schema_faq_analysis"`

	ParsedContent ParsedContent `json:"parsed_content"`
	Insights      Insights      `json:"ai_insights"`

	CreatedAt time.Time `json:"created_at"`
}

// ResultSummary is the compact shape returned by the recent-analyses listing.
type ResultSummary struct {
	SessionID    string    `json:"session_id"`
	URL          string    `json:"url"`
	OverallScore int       `json:"overall_score"`
	Category     Category  `json:"category_label"`
	CreatedAt    time.Time `json:"created_at"`
}
