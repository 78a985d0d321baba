package schemafaq

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/sitegrade/models"
)

// faqVocabulary is the fixed set of FAQ-indicative tokens matched against
// heading texts and container class/id names, lowercase.
var faqVocabulary = []string{
	"faq",
	"f.a.q",
	"frequently asked",
	"common questions",
	"questions and answers",
	"questions & answers",
	"q&a",
	"q & a",
	"help and support",
	"questions",
}

// containerTokens is the subset matched against class/id attribute values.
var containerTokens = []string{"faq", "question", "accordion"}

// minAnswerLen is the minimum text length for a block following a question
// to count as answer-like.
const minAnswerLen = 20

// faqScan accumulates FAQ detection state.
type faqScan struct {
	questionCount int
	answerCount   int
	containers    int
	indicators    []string
	locations     []models.Evidence

	cap int
}

func (f *faqScan) details() models.FaqDetails {
	return models.FaqDetails{
		QuestionCount: f.questionCount,
		AnswerCount:   f.answerCount,
		FaqContainers: f.containers,
		Indicators:    f.indicators,
		Locations:     f.locations,
	}
}

func (f *faqScan) addEvidence(ev models.Evidence) {
	if len(f.locations) < f.cap {
		f.locations = append(f.locations, ev)
	}
}

// detectFaq combines the independent FAQ signals: FAQPage-typed schema,
// vocabulary-matched headings and containers, and question/answer text
// pairs. Each triggered signal contributes one indicator entry.
func (c *Classifier) detectFaq(doc *goquery.Document, schema *schemaScan) *faqScan {
	scan := &faqScan{indicators: []string{}, locations: []models.Evidence{}, cap: c.evidenceCap}

	// Signal (a): FAQ-typed structured data already detected.
	scan.questionCount += schema.faqQuestions
	scan.answerCount += schema.faqAnswers
	if schema.hasFaqSchema {
		scan.indicators = append(scan.indicators, "FAQ schema markup (FAQPage/Question)")
	}

	// Signal (b1): headings matching the FAQ vocabulary.
	headingMatches := 0
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(i int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text == "" || !matchesVocabulary(strings.ToLower(text)) {
			return
		}
		headingMatches++
		scan.indicators = append(scan.indicators, "Heading: "+preview(text))
		scan.addEvidence(models.Evidence{
			Type:     "heading",
			Source:   "heading",
			Position: i,
			Preview:  preview(text),
		})
	})

	// Signal (b2): container class/id names matching the FAQ tokens.
	doc.Find("[class], [id]").Each(func(i int, s *goquery.Selection) {
		class, _ := s.Attr("class")
		id, _ := s.Attr("id")
		attr := strings.ToLower(class + " " + id)
		for _, token := range containerTokens {
			if strings.Contains(attr, token) {
				scan.containers++
				scan.addEvidence(models.Evidence{
					Type:     token,
					Source:   "container",
					Position: i,
					Preview:  preview(strings.TrimSpace(class + " " + id)),
				})
				return
			}
		}
	})
	if scan.containers >= 2 {
		scan.indicators = append(scan.indicators,
			fmt.Sprintf("FAQ containers: %d elements", scan.containers))
	}

	// Signal (c): question-mark-terminated texts paired with adjacent
	// answer-like blocks.
	domQuestions, domAnswers := c.scanQAPairs(doc, scan)
	scan.questionCount += domQuestions
	scan.answerCount += domAnswers
	if domQuestions >= 2 && domAnswers >= 2 {
		scan.indicators = append(scan.indicators,
			fmt.Sprintf("Q&A structure: %d questions, %d answers", domQuestions, domAnswers))
	}

	return scan
}

// scanQAPairs walks heading/paragraph texts in document order, counting
// "?"-terminated texts as questions and the non-question block that follows
// each as its answer.
func (c *Classifier) scanQAPairs(doc *goquery.Document, scan *faqScan) (questions, answers int) {
	pendingQuestion := false

	doc.Find("h1, h2, h3, h4, h5, h6, p, dt, dd, summary, li").Each(func(i int, s *goquery.Selection) {
		// Skip elements that only wrap other candidates (e.g. <li><p>…).
		if s.Children().Is("p, dt, dd, summary") {
			return
		}

		text := strings.TrimSpace(s.Text())
		if text == "" {
			return
		}

		if strings.HasSuffix(text, "?") {
			questions++
			pendingQuestion = true
			scan.addEvidence(models.Evidence{
				Type:     "question",
				Source:   "qa-pair",
				Position: i,
				Preview:  preview(text),
			})
			return
		}

		if pendingQuestion && len(text) >= minAnswerLen {
			answers++
		}
		pendingQuestion = false
	})

	return questions, answers
}

func matchesVocabulary(lower string) bool {
	for _, token := range faqVocabulary {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}
