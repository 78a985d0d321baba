package analyzer

import (
	"sync"

	"github.com/use-agent/sitegrade/models"
	"github.com/use-agent/sitegrade/scorer"
)

// dimensionScores bundles the four scorer outputs.
type dimensionScores struct {
	performance   models.DimensionScore
	seo           models.DimensionScore
	technical     models.DimensionScore
	accessibility models.DimensionScore
}

// scoreDimensions runs the four dimension scorers concurrently. Each scorer
// is a pure function over the same immutable inputs, so ordering is neither
// required nor observable.
func scoreDimensions(content *models.ParsedContent, page *models.FetchedPage) dimensionScores {
	var dims dimensionScores
	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()
		dims.performance = scorer.Performance(content, page)
	}()
	go func() {
		defer wg.Done()
		dims.seo = scorer.SEO(content)
	}()
	go func() {
		defer wg.Done()
		dims.technical = scorer.Technical(content, page)
	}()
	go func() {
		defer wg.Done()
		dims.accessibility = scorer.Accessibility(content)
	}()

	wg.Wait()
	return dims
}

// scorerOverall averages the four dimension scores with the schema/FAQ
// score as a fifth dimension.
func scorerOverall(dims dimensionScores, schemaFaqScore int) int {
	return scorer.Overall(
		dims.performance.Score,
		dims.seo.Score,
		dims.technical.Score,
		dims.accessibility.Score,
		schemaFaqScore,
	)
}
