// Package query derives the visible subset of the event log. Every
// function here is pure: inputs are never modified.
package query

import (
	"strings"

	"github.com/synheart/lifelog/internal/models"
)

// All is the category filter that matches every event
const All models.Category = "all"

// Filter is the consumer's current view selection
type Filter struct {
	// Category is All (or empty) or one of models.Categories().
	Category models.Category
	// Search is matched case-insensitively against the message, the
	// source, and the searchable detail fields. Empty matches everything.
	Search string
}

// ParseFilter builds a Filter from user input, accepting "all" or any
// category name regardless of case.
func ParseFilter(category, search string) (Filter, error) {
	f := Filter{Category: All, Search: search}
	if category == "" || strings.EqualFold(category, string(All)) {
		return f, nil
	}
	c, err := models.ParseCategory(category)
	if err != nil {
		return Filter{}, err
	}
	f.Category = c
	return f, nil
}

// Matches reports whether event passes both the category and search predicates
func (f Filter) Matches(event models.Event) bool {
	if f.Category != "" && f.Category != All && event.Category != f.Category {
		return false
	}
	if f.Search == "" {
		return true
	}

	needle := strings.ToLower(f.Search)
	if contains(event.Message, needle) || contains(string(event.Source), needle) {
		return true
	}
	if event.Details != nil {
		for _, value := range event.Details.Searchable() {
			if contains(value, needle) {
				return true
			}
		}
	}
	return false
}

// Apply returns the events matching f in their original order
func Apply(events []models.Event, f Filter) []models.Event {
	out := make([]models.Event, 0, len(events))
	for _, event := range events {
		if f.Matches(event) {
			out = append(out, event)
		}
	}
	return out
}

func contains(haystack, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(haystack), lowerNeedle)
}
