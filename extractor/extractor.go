package extractor

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/sitegrade/models"
)

var headingLevels = []string{"h1", "h2", "h3", "h4", "h5", "h6"}

// Extract parses raw markup into a ParsedContent. It never fails: malformed
// or unparseable input yields empty/zero fields with ParseDegraded set, so
// scorers can widen issue detection instead of aborting the job.
func Extract(rawMarkup, finalURL string) *models.ParsedContent {
	content := &models.ParsedContent{
		Headings:  make(map[string][]string, len(headingLevels)),
		Images:    []models.Image{},
		UsesHTTPS: strings.HasPrefix(finalURL, "https://"),
	}
	for _, level := range headingLevels {
		content.Headings[level] = []string{}
	}

	if strings.TrimSpace(rawMarkup) == "" {
		content.ParseDegraded = true
		return content
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawMarkup))
	if err != nil {
		content.ParseDegraded = true
		return content
	}

	content.Title = strings.TrimSpace(doc.Find("title").First().Text())

	if desc, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		content.MetaDescription = strings.TrimSpace(desc)
	}

	for _, level := range headingLevels {
		doc.Find(level).Each(func(_ int, s *goquery.Selection) {
			if text := strings.TrimSpace(s.Text()); text != "" {
				content.Headings[level] = append(content.Headings[level], text)
			}
		})
	}

	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		alt, _ := s.Attr("alt")
		content.Images = append(content.Images, models.Image{
			Src: src,
			Alt: strings.TrimSpace(alt),
		})
	})

	content.InternalLinksCount, content.ExternalLinksCount = countLinks(doc, finalURL)
	content.HasViewportMeta = doc.Find(`meta[name="viewport"]`).Length() > 0
	content.WordCount = len(strings.Fields(visibleText(rawMarkup)))
	content.Excerpt = mainContentExcerpt(rawMarkup, finalURL)

	return content
}

// countLinks classifies anchors as internal or external by comparing the
// resolved link host against the page host, case-insensitive with the
// "www." prefix ignored. Duplicate targets count once.
func countLinks(doc *goquery.Document, sourceURL string) (internal, external int) {
	base, err := url.Parse(sourceURL)
	if err != nil {
		return 0, 0
	}

	seen := make(map[string]struct{})
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if href == "" {
			return
		}

		resolved, err := base.Parse(href)
		if err != nil {
			return
		}
		// Skip fragments, javascript:, mailto:, tel: etc.
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}

		absURL := resolved.String()
		if _, ok := seen[absURL]; ok {
			return
		}
		seen[absURL] = struct{}{}

		if sameHost(resolved.Host, base.Host) {
			internal++
		} else {
			external++
		}
	})
	return internal, external
}

func sameHost(a, b string) bool {
	return strings.EqualFold(stripWWW(a), stripWWW(b))
}

func stripWWW(host string) string {
	if len(host) > 4 && strings.EqualFold(host[:4], "www.") {
		return host[4:]
	}
	return host
}
