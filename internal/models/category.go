package models

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidCategory = errors.New("invalid category")

var jobCategories = []string{
	"technology", "healthcare", "education", "finance", "marketing", "sales",
	"customer-service", "manufacturing", "construction", "transportation",
	"hospitality", "retail", "administration", "design", "writing",
	"engineering", "science", "legal", "media", "other",
}

var skillCategories = []string{
	"home-services", "professional-services", "creative-services", "health-wellness",
	"education-tutoring", "transportation", "event-services", "technology",
	"beauty-personal-care", "fitness-sports", "food-catering", "cleaning-maintenance",
	"repair-construction", "consulting", "writing-translation", "design-media",
	"legal-financial", "other",
}

var businessCategories = []string{
	"retail", "restaurant", "healthcare", "professional-services", "manufacturing",
	"construction", "transportation", "entertainment", "education", "technology",
	"finance", "real-estate", "automotive", "beauty-wellness", "fitness-sports",
	"home-garden", "pet-services", "childcare", "cleaning", "repair-maintenance",
	"consulting", "media-advertising", "legal", "other",
}

var knownCategories = func() map[string]struct{} {
	set := make(map[string]struct{})
	for _, group := range [][]string{jobCategories, skillCategories, businessCategories} {
		for _, c := range group {
			set[c] = struct{}{}
		}
	}
	return set
}()

// ValidateCategory accepts any value declared by at least one listing type.
// The filter itself is applied verbatim to every searched type.
func ValidateCategory(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", nil
	}
	if _, ok := knownCategories[value]; !ok {
		return "", fmt.Errorf("%w: %s", ErrInvalidCategory, value)
	}
	return value, nil
}
