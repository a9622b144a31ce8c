package services

import (
	"strings"

	"kasiBack/internal/models"
)

// BuildFilters turns a validated request into one filter per requested
// listing type, in bucket order. Every filter carries the type's status gate.
// Price bounds and category are only attached to types that have the field;
// minPrice > maxPrice is forwarded as given.
func BuildFilters(req models.SearchRequest) ([]models.ListingFilter, error) {
	filters := make([]models.ListingFilter, 0, len(req.Types))
	for _, t := range req.Types {
		d, err := models.Descriptor(t)
		if err != nil {
			return nil, err
		}
		f := models.ListingFilter{
			Type:     t,
			Status:   d.Status,
			Text:     strings.TrimSpace(req.Query),
			Location: strings.TrimSpace(req.Location),
		}
		if d.Category != nil {
			f.Category = req.Category
		}
		if d.PriceMin != nil {
			f.MinPrice = req.MinPrice
		}
		if d.PriceMax != nil {
			f.MaxPrice = req.MaxPrice
		}
		filters = append(filters, f)
	}
	return filters, nil
}

func buildSuggestionFilters(req models.SuggestionRequest) ([]models.ListingFilter, error) {
	filters := make([]models.ListingFilter, 0, len(req.Types))
	for _, t := range req.Types {
		d, err := models.Descriptor(t)
		if err != nil {
			return nil, err
		}
		filters = append(filters, models.ListingFilter{
			Type:   t,
			Status: d.Status,
			Text:   strings.TrimSpace(req.Query),
		})
	}
	return filters, nil
}
