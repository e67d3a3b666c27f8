// Package category suggests a category for a free-text expense note.
// A keyword matcher covers the common cases; near-miss words are
// rescued with an edit-distance comparison against the known category
// names.
package category

import (
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"
)

const DefaultCategory = "Other"

// maxEditDistance is how far a word may be from a category name and
// still count as a typo of it ("trvel" -> "Travel").
const maxEditDistance = 2

type matcher struct {
	re       *regexp.Regexp
	category string
}

type Suggester struct {
	matchers []matcher
	known    []string
}

// defaultKeywords mirrors the heuristic the original predictor fell
// back to when no trained model was present.
var defaultKeywords = map[string]string{
	"Food":     `restaurant|food|meal|dinner|lunch|grocer`,
	"Travel":   `uber|taxi|flight|bus|train|fuel|gas`,
	"Bills":    `electric|water|internet|rent|bill|utility`,
	"Shopping": `amazon|mall|shopping|clothes|shoes`,
}

// NewSuggester builds a suggester aware of the given category names.
// The default keyword rules are always present; known names extend the
// edit-distance candidates.
func NewSuggester(knownCategories []string) *Suggester {
	matchers := make([]matcher, 0, len(defaultKeywords))
	for name, pattern := range defaultKeywords {
		matchers = append(matchers, matcher{
			re:       regexp.MustCompile(`(?i)` + pattern),
			category: name,
		})
	}

	known := make([]string, 0, len(defaultKeywords)+len(knownCategories))
	for name := range defaultKeywords {
		known = append(known, name)
	}
	for _, name := range knownCategories {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			known = append(known, trimmed)
		}
	}

	return &Suggester{
		matchers: matchers,
		known:    known,
	}
}

// Suggest returns the best category for a note, or DefaultCategory when
// nothing matches.
func (s *Suggester) Suggest(note string) string {
	text := strings.TrimSpace(note)
	if text == "" {
		return DefaultCategory
	}

	for _, m := range s.matchers {
		if m.re.MatchString(text) {
			return m.category
		}
	}

	if nearest := s.nearestKnown(text); nearest != "" {
		return nearest
	}

	return DefaultCategory
}

func (s *Suggester) nearestKnown(text string) string {
	best := ""
	bestDistance := maxEditDistance + 1

	for _, word := range strings.Fields(strings.ToLower(text)) {
		for _, name := range s.known {
			distance := levenshtein.ComputeDistance(word, strings.ToLower(name))
			if distance < bestDistance {
				bestDistance = distance
				best = name
			}
		}
	}

	return best
}
