package catalog

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxTypoDistance bounds fuzzy matches against whole titles
const maxTypoDistance = 2

type scored struct {
	app   App
	score int
	order int
}

// Search ranks apps for a Spotlight query: title prefix, then substring
// of title or id, then titles within a small edit distance.
// An empty query returns nothing.
func (c *Catalog) Search(query string, limit int) []App {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var matches []scored
	for i, app := range c.apps {
		title := strings.ToLower(app.Title)
		switch {
		case strings.HasPrefix(title, q):
			matches = append(matches, scored{app: app, score: 0, order: i})
		case strings.Contains(title, q) || strings.Contains(strings.ToLower(app.ID), q):
			matches = append(matches, scored{app: app, score: 1, order: i})
		default:
			if d := levenshtein.ComputeDistance(title, q); d <= maxTypoDistance {
				matches = append(matches, scored{app: app, score: 2 + d, order: i})
			}
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score < matches[j].score
		}
		return matches[i].order < matches[j].order
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]App, len(matches))
	for i, m := range matches {
		out[i] = m.app
	}
	return out
}
