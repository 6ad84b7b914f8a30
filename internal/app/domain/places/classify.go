package places

import (
	"strings"

	"github.com/FACorreiaa/juanito/internal/app/models"
	"github.com/FACorreiaa/juanito/internal/pkg/rules"
)

// Classifier assigns geocoded features to the fixed category set.
type Classifier struct {
	matcher *rules.Matcher[models.Category]
}

func NewClassifier(table []rules.Rule[models.Category]) *Classifier {
	return &Classifier{matcher: rules.NewMatcher(table)}
}

// Classify matches the name first and the provider hints second. Anything
// unmatched is an establishment.
func (c *Classifier) Classify(name string, hints ...string) models.Category {
	if cat, _, ok := c.matcher.Match(name); ok {
		return cat
	}
	return c.matcher.MatchOr(strings.Join(hints, " "), models.CategoryEstablishment)
}

// Merge de-duplicates places by ID. A place keeps the position where its ID
// was first seen and takes the value of its last occurrence.
func Merge(lists ...[]models.Place) []models.Place {
	index := make(map[string]int)
	var out []models.Place
	for _, list := range lists {
		for _, p := range list {
			if i, ok := index[p.ID]; ok {
				out[i] = p
				continue
			}
			index[p.ID] = len(out)
			out = append(out, p)
		}
	}
	if out == nil {
		out = []models.Place{}
	}
	return out
}

// Filter keeps places of one category. The empty category and "all" keep everything.
func Filter(places []models.Place, category models.Category) []models.Place {
	if category == "" || category == CategoryAll {
		return places
	}
	out := make([]models.Place, 0, len(places))
	for _, p := range places {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// CategoryAll disables category filtering.
const CategoryAll models.Category = "all"

// ParseCategory accepts a category name or "all"/"" for no filter.
func ParseCategory(raw string) (models.Category, bool) {
	c := models.Category(strings.ToLower(strings.TrimSpace(raw)))
	if c == "" || c == CategoryAll || c.Valid() {
		return c, true
	}
	return "", false
}
