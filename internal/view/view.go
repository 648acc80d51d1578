// Package view turns items into what the screens show. Nothing here does I/O.
package view

import (
	"sort"
	"strconv"
	"strings"

	"github.com/Makepad-fr/travelgrid/internal/model"
)

// PlaceholderImage is shown for items without an image URL.
const PlaceholderImage = "https://picsum.photos/seed/placeholder/800/600"

// Missing stands in for an empty category or country.
const Missing = "—"

// KnownCategories are offered by the category filter even before any item uses them.
var KnownCategories = []string{"Praia", "Cidade", "Cultural", "Natureza", "Montanha"}

// Card is the display model for one item.
type Card struct {
	ID          string
	Title       string
	Category    string
	Image       string
	Meta        string // "<country> • <year>"
	Description string
}

// CardOf builds the card for it.
func CardOf(it model.Item) Card {
	c := Card{
		ID:          it.ID,
		Title:       it.Title,
		Category:    orMissing(it.Category),
		Image:       it.Image,
		Meta:        orMissing(it.Country),
		Description: it.Description,
	}
	if c.Image == "" {
		c.Image = PlaceholderImage
	}
	if it.Year != 0 {
		c.Meta += " • " + strconv.Itoa(it.Year)
	}
	return c
}

func orMissing(s string) string {
	if s == "" {
		return Missing
	}
	return s
}

// Filter keeps items whose category equals category (when non-empty) and
// whose title or country contains query, ignoring case (when non-blank).
// The input slice is not modified.
func Filter(items []model.Item, category, query string) []model.Item {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]model.Item, 0, len(items))
	for _, it := range items {
		if category != "" && it.Category != category {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(it.Title), q) &&
			!strings.Contains(strings.ToLower(it.Country), q) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// Categories returns KnownCategories followed by any other category found in
// items, sorted, without duplicates.
func Categories(items []model.Item) []string {
	seen := make(map[string]bool, len(KnownCategories))
	out := append([]string(nil), KnownCategories...)
	for _, c := range out {
		seen[c] = true
	}
	var extra []string
	for _, it := range items {
		if it.Category != "" && !seen[it.Category] {
			seen[it.Category] = true
			extra = append(extra, it.Category)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

// Find looks id up in items.
func Find(items []model.Item, id string) (model.Item, bool) {
	for _, it := range items {
		if it.ID == id {
			return it, true
		}
	}
	return model.Item{}, false
}
