package schemafaq

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/sitegrade/models"
)

// schemaScan accumulates structured-data detection state.
type schemaScan struct {
	jsonLDCount    int
	microdataCount int
	rdfaCount      int
	types          []string
	locations      []models.Evidence
	hasFaqSchema   bool
	faqQuestions   int
	faqAnswers     int

	cap int
}

func (s *schemaScan) total() int {
	return s.jsonLDCount + s.microdataCount + s.rdfaCount
}

func (s *schemaScan) details() models.SchemaDetails {
	return models.SchemaDetails{
		JSONLDCount:    s.jsonLDCount,
		MicrodataCount: s.microdataCount,
		RDFaCount:      s.rdfaCount,
		SchemaTypes:    s.types,
		Locations:      s.locations,
	}
}

// addType records a schema type once, preserving first-seen order.
func (s *schemaScan) addType(label string) {
	for _, t := range s.types {
		if t == label {
			return
		}
	}
	s.types = append(s.types, label)
}

func (s *schemaScan) addEvidence(ev models.Evidence) {
	if len(s.locations) < s.cap {
		s.locations = append(s.locations, ev)
	}
}

// detectSchema scans for the three structured-data encodings. Every distinct
// occurrence is counted; evidence records are capped.
func (c *Classifier) detectSchema(doc *goquery.Document) *schemaScan {
	scan := &schemaScan{types: []string{}, locations: []models.Evidence{}, cap: c.evidenceCap}

	doc.FindMatcher(selJSONLD).Each(func(i int, s *goquery.Selection) {
		scan.jsonLDCount++
		raw := s.Text()

		typeName := "json-ld"
		for _, t := range jsonLDTypes(raw) {
			typeName = t
			scan.addType("JSON-LD: " + t)
			if isFaqType(t) {
				scan.hasFaqSchema = true
			}
		}
		q, a := jsonLDFaqEntries(raw)
		scan.faqQuestions += q
		scan.faqAnswers += a

		scan.addEvidence(models.Evidence{
			Type:     typeName,
			Source:   "json-ld",
			Position: i,
			Preview:  preview(raw),
		})
	})

	doc.FindMatcher(selMicrodata).Each(func(i int, s *goquery.Selection) {
		scan.microdataCount++
		itemtype, _ := s.Attr("itemtype")
		if itemtype != "" {
			scan.addType("Microdata: " + itemtype)
			if isFaqType(itemtype) {
				scan.hasFaqSchema = true
			}
		}
		scan.addEvidence(models.Evidence{
			Type:     itemtype,
			Source:   "microdata",
			Position: i,
			Preview:  preview(s.Text()),
		})
	})

	doc.FindMatcher(selRDFa).Each(func(i int, s *goquery.Selection) {
		scan.rdfaCount++
		typeof, _ := s.Attr("typeof")
		if typeof != "" {
			scan.addType("RDFa: " + typeof)
			if isFaqType(typeof) {
				scan.hasFaqSchema = true
			}
		}
		scan.addEvidence(models.Evidence{
			Type:     typeof,
			Source:   "rdfa",
			Position: i,
			Preview:  preview(s.Text()),
		})
	})

	return scan
}

// isFaqType reports whether a schema type name indicates FAQ content.
func isFaqType(t string) bool {
	return strings.Contains(t, "FAQ") || strings.Contains(t, "Question")
}

// jsonLDTypes extracts every @type value from a JSON-LD block. Unparsable
// blocks yield no types; the block itself is still counted by the caller.
func jsonLDTypes(raw string) []string {
	var data any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil
	}

	var types []string
	collectTypes(data, &types)
	return types
}

// collectTypes walks a decoded JSON-LD value, gathering @type strings from
// objects, arrays, and @graph containers.
func collectTypes(data any, types *[]string) {
	switch v := data.(type) {
	case map[string]any:
		switch t := v["@type"].(type) {
		case string:
			*types = append(*types, t)
		case []any:
			for _, item := range t {
				if s, ok := item.(string); ok {
					*types = append(*types, s)
				}
			}
		}
		if graph, ok := v["@graph"].([]any); ok {
			for _, item := range graph {
				collectTypes(item, types)
			}
		}
	case []any:
		for _, item := range v {
			collectTypes(item, types)
		}
	}
}

// jsonLDFaqEntries counts Question entities and accepted answers inside
// FAQPage mainEntity lists.
func jsonLDFaqEntries(raw string) (questions, answers int) {
	var data any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return 0, 0
	}
	countFaqEntries(data, &questions, &answers)
	return questions, answers
}

func countFaqEntries(data any, questions, answers *int) {
	switch v := data.(type) {
	case map[string]any:
		if t, ok := v["@type"].(string); ok && t == "Question" {
			*questions++
			if _, ok := v["acceptedAnswer"]; ok {
				*answers++
			}
		}
		for _, key := range []string{"mainEntity", "@graph"} {
			if nested, ok := v[key]; ok {
				countFaqEntries(nested, questions, answers)
			}
		}
	case []any:
		for _, item := range v {
			countFaqEntries(item, questions, answers)
		}
	}
}
