package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
	<title>  Example Store — Hand-made Goods  </title>
	<meta name="description" content="Hand-made goods shipped worldwide from our small workshop.">
	<meta name="viewport" content="width=device-width, initial-scale=1">
	<script>var tracking = "should not be counted";</script>
	<style>body { color: red; }</style>
</head>
<body>
	<h1>Welcome to the store</h1>
	<h2>Featured</h2>
	<h2>On sale</h2>
	<p>We sell hand-made goods crafted with care.</p>
	<img src="/hero.jpg" alt="Workshop bench">
	<img src="/logo.png">
	<a href="/about">About</a>
	<a href="https://www.example.com/contact">Contact</a>
	<a href="https://other.example.org/partner">Partner</a>
	<a href="/about">About again</a>
	<a href="mailto:hi@example.com">Mail</a>
	<a href="#top">Top</a>
</body>
</html>`

func TestExtract(t *testing.T) {
	content := Extract(samplePage, "https://example.com/shop")

	assert.Equal(t, "Example Store — Hand-made Goods", content.Title)
	assert.Equal(t, "Hand-made goods shipped worldwide from our small workshop.", content.MetaDescription)
	assert.Equal(t, []string{"Welcome to the store"}, content.Headings["h1"])
	assert.Equal(t, []string{"Featured", "On sale"}, content.Headings["h2"])
	assert.True(t, content.HasViewportMeta)
	assert.True(t, content.UsesHTTPS)
	assert.False(t, content.ParseDegraded)

	require.Len(t, content.Images, 2)
	assert.Equal(t, "Workshop bench", content.Images[0].Alt)
	assert.Empty(t, content.Images[1].Alt)
}

func TestExtract_LinkClassification(t *testing.T) {
	content := Extract(samplePage, "https://example.com/shop")

	// /about (deduped), https://www.example.com/contact (www ≡ apex) are
	// internal; other.example.org is external; mailto: and #top resolve to
	// non-http(s) or same-page and are ignored... the fragment resolves to
	// the page itself which was not linked elsewhere, so it counts once.
	assert.Equal(t, 3, content.InternalLinksCount)
	assert.Equal(t, 1, content.ExternalLinksCount)
}

func TestExtract_WordCountExcludesScriptsAndStyles(t *testing.T) {
	markup := `<html><head><title>Ignored Title Words</title>
		<script>function lots() { return "of words in here"; }</script>
		<style>.a { color: blue; }</style></head>
		<body><p>only these four words</p></body></html>`

	content := Extract(markup, "https://example.com")
	assert.Equal(t, 4, content.WordCount)
}

func TestExtract_NoBodyFallsBackToAllVisibleText(t *testing.T) {
	content := Extract(`<p>three visible words</p>`, "https://example.com")
	assert.Equal(t, 3, content.WordCount)
}

func TestExtract_NeverFails(t *testing.T) {
	tests := []struct {
		name   string
		markup string
	}{
		{"empty", ""},
		{"whitespace only", "   \n\t  "},
		{"truncated tag soup", "<html><head><title>Broken<body><div><p>text"},
		{"binary garbage", "\x00\x01\x02 not html at all \xff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := Extract(tt.markup, "https://example.com")
			require.NotNil(t, content)
			assert.NotNil(t, content.Headings)
			assert.NotNil(t, content.Images)
		})
	}
}

func TestExtract_EmptyMarkupSetsParseDegraded(t *testing.T) {
	content := Extract("", "https://example.com")
	assert.True(t, content.ParseDegraded)
	assert.Zero(t, content.WordCount)
	assert.Empty(t, content.Title)
}

func TestExtract_HTTPSDetection(t *testing.T) {
	assert.True(t, Extract("<html></html>", "https://example.com").UsesHTTPS)
	assert.False(t, Extract("<html></html>", "http://example.com").UsesHTTPS)
}

func TestSameHost(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"example.com", "example.com", true},
		{"www.example.com", "example.com", true},
		{"WWW.Example.COM", "example.com", true},
		{"sub.example.com", "example.com", false},
		{"other.org", "example.com", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, sameHost(tt.a, tt.b), "%s vs %s", tt.a, tt.b)
	}
}

func TestVisibleText_SkipsTitle(t *testing.T) {
	text := visibleText(`<html><head><title>skip me</title></head><body>keep me</body></html>`)
	assert.Equal(t, "keep me ", text)
}
