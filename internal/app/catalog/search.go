package catalog

import (
	"strings"

	"github.com/FACorreiaa/juanito/internal/app/models"
)

// SearchResult groups catalog hits by kind, each in catalog order.
type SearchResult struct {
	Query    string           `json:"query"`
	Places   []models.Place   `json:"places"`
	Events   []models.Event   `json:"events"`
	Products []models.Product `json:"products"`
}

// Total is the number of hits across kinds.
func (r SearchResult) Total() int {
	return len(r.Places) + len(r.Events) + len(r.Products)
}

// Search matches the query case-insensitively against names, categories,
// kinds, descriptions and addresses. A blank query returns everything.
func (c *Catalog) Search(query string) SearchResult {
	q := strings.ToLower(strings.TrimSpace(query))
	res := SearchResult{
		Query:    strings.TrimSpace(query),
		Places:   []models.Place{},
		Events:   []models.Event{},
		Products: []models.Product{},
	}
	if q == "" {
		res.Places = append(res.Places, c.Places...)
		res.Events = append(res.Events, c.Events...)
		res.Products = append(res.Products, c.Products...)
		return res
	}

	for _, p := range c.Places {
		if placeMatches(p, q) {
			res.Places = append(res.Places, p)
		}
	}
	for _, e := range c.Events {
		if placeMatches(e.Place, q) || contains(e.Kind, q) {
			res.Events = append(res.Events, e)
		}
	}
	for _, p := range c.Products {
		if contains(p.Name, q) || contains(p.Kind, q) {
			res.Products = append(res.Products, p)
		}
	}
	return res
}

func placeMatches(p models.Place, q string) bool {
	return contains(p.Name, q) ||
		contains(string(p.Category), q) ||
		contains(p.Description, q) ||
		contains(p.Address, q)
}

func contains(field, q string) bool {
	return strings.Contains(strings.ToLower(field), q)
}
