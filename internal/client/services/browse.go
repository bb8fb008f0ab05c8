package services

import (
	"strings"

	"github.com/dmitrijs2005/promptbook/internal/client/models"
)

// AllCategories is the category filter value that matches every prompt.
const AllCategories = "Todos"

// Filter narrows a prompt list the way the list screens do.
type Filter struct {
	// Query matches case-insensitively anywhere in the title or the content.
	Query string
	// Category is a models.Category value or AllCategories. Empty means all.
	Category string
	// Owner, when set, keeps only the prompts that account may change.
	Owner         string
	FavoritesOnly bool
	PublicOnly    bool
}

// Browse returns the prompts matching f, keeping their order.
func Browse(prompts []models.Prompt, f Filter) []models.Prompt {
	q := strings.ToLower(f.Query)
	out := make([]models.Prompt, 0, len(prompts))
	for _, p := range prompts {
		if f.Owner != "" && !p.OwnedBy(f.Owner) {
			continue
		}
		if f.FavoritesOnly && !p.IsFavorite {
			continue
		}
		if f.PublicOnly && !p.IsPublic {
			continue
		}
		if f.Category != "" && f.Category != AllCategories && string(p.Category) != f.Category {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Title), q) && !strings.Contains(strings.ToLower(p.Content), q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ForView returns the list a list view shows to userID: their own prompts on
// the landing view, their own favorites on the favorites view, and every
// public prompt, whoever owns it, in the library.
func ForView(prompts []models.Prompt, v models.View, userID string) []models.Prompt {
	switch v {
	case models.ViewFavorites:
		return Browse(prompts, Filter{Owner: userID, FavoritesOnly: true})
	case models.ViewLibrary:
		return Browse(prompts, Filter{PublicOnly: true})
	default:
		return Browse(prompts, Filter{Owner: userID})
	}
}

// CategoryFacets lists AllCategories followed by the categories present in
// prompts, in order of first appearance.
func CategoryFacets(prompts []models.Prompt) []string {
	facets := []string{AllCategories}
	seen := make(map[models.Category]bool)
	for _, p := range prompts {
		if seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		facets = append(facets, string(p.Category))
	}
	return facets
}
