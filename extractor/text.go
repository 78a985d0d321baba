package extractor

import (
	nurl "net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

// excerptMaxLen caps the main-content excerpt carried into the insight prompt.
const excerptMaxLen = 500

// visibleText extracts the visible text from the markup, stripping all tags
// and <script>/<style>/<noscript> content. Text inside <body> is preferred;
// markup without a <body> tag falls back to all visible text so degraded
// pages still get a word count.
func visibleText(rawMarkup string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(rawMarkup))
	var bodyBuf, allBuf strings.Builder
	inBody := false
	sawBody := false
	skipDepth := 0

	for {
		tt := tokenizer.Next()
		switch tt {
		case html.ErrorToken:
			if sawBody {
				return bodyBuf.String()
			}
			return allBuf.String()
		case html.StartTagToken:
			tn, _ := tokenizer.TagName()
			switch tag := string(tn); tag {
			case "body":
				inBody = true
				sawBody = true
			case "script", "style", "noscript", "title":
				skipDepth++
			}
		case html.EndTagToken:
			tn, _ := tokenizer.TagName()
			switch string(tn) {
			case "script", "style", "noscript", "title":
				if skipDepth > 0 {
					skipDepth--
				}
			}
		case html.TextToken:
			if skipDepth > 0 {
				continue
			}
			text := strings.TrimSpace(string(tokenizer.Text()))
			if text == "" {
				continue
			}
			allBuf.WriteString(text)
			allBuf.WriteByte(' ')
			if inBody {
				bodyBuf.WriteString(text)
				bodyBuf.WriteByte(' ')
			}
		}
	}
}

// mainContentExcerpt runs the Mozilla Readability algorithm and returns a
// short plain-text extract of the main content. Empty on any failure; the
// excerpt only enriches the insight prompt and is never scored.
func mainContentExcerpt(rawMarkup, sourceURL string) string {
	parsedURL, err := nurl.Parse(sourceURL)
	if err != nil {
		return ""
	}

	article, err := readability.FromReader(strings.NewReader(rawMarkup), parsedURL)
	if err != nil {
		return ""
	}

	text := strings.Join(strings.Fields(article.TextContent), " ")
	if len(text) > excerptMaxLen {
		text = text[:excerptMaxLen]
	}
	return text
}
