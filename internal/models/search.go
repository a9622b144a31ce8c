package models

import (
	"math"
	"strconv"
)

// SearchRequest describes a basic or advanced search after validation.
type SearchRequest struct {
	Query    string
	Type     string
	Types    []ListingType
	Location string
	MinPrice *float64
	MaxPrice *float64
	Category string
	Page     int
	Limit    int
}

// Skip is the number of matches skipped before the requested page.
func (r SearchRequest) Skip() int {
	return (r.Page - 1) * r.Limit
}

// PageInRange reports whether page >= 1, limit >= 1 and (page-1)*limit
// fits in an int.
func PageInRange(page, limit int) bool {
	if page < 1 || limit < 1 {
		return false
	}
	return page-1 <= math.MaxInt/limit
}

// ValidatePaging rejects page/limit pairs whose skip cannot be represented.
func (r SearchRequest) ValidatePaging() error {
	var errs ValidationErrors
	if r.Limit < 1 {
		errs.Add("limit", strconv.Itoa(r.Limit), "Limit must be a positive integer")
	} else if !PageInRange(r.Page, r.Limit) {
		errs.Add("page", strconv.Itoa(r.Page), "Page must be a positive integer")
	}
	return errs.Err()
}

type Pagination struct {
	Current int  `json:"current"`
	Total   int  `json:"total"`
	HasNext bool `json:"hasNext"`
	HasPrev bool `json:"hasPrev"`
}

// SearchResults holds one bucket per listing type. Buckets never mix types.
type SearchResults struct {
	Rentals    []Listing `json:"rentals"`
	Jobs       []Listing `json:"jobs"`
	Skills     []Listing `json:"skills"`
	Businesses []Listing `json:"businesses"`
	Total      int64     `json:"total"`
}

// Bucket returns a pointer to the slice holding listings of type t.
func (r *SearchResults) Bucket(t ListingType) *[]Listing {
	switch t {
	case ListingTypeRentals:
		return &r.Rentals
	case ListingTypeJobs:
		return &r.Jobs
	case ListingTypeSkills:
		return &r.Skills
	case ListingTypeBusinesses:
		return &r.Businesses
	}
	return nil
}

type SearchResponse struct {
	Query      string        `json:"query"`
	Type       string        `json:"type"`
	Location   string        `json:"location,omitempty"`
	Results    SearchResults `json:"results"`
	Pagination Pagination    `json:"pagination"`
}

type AdvancedFilters struct {
	Location string   `json:"location,omitempty"`
	MinPrice *float64 `json:"minPrice,omitempty"`
	MaxPrice *float64 `json:"maxPrice,omitempty"`
	Category string   `json:"category,omitempty"`
}

type AdvancedSearchResponse struct {
	Query      string          `json:"query,omitempty"`
	Type       string          `json:"type"`
	Filters    AdvancedFilters `json:"filters"`
	Results    []Listing       `json:"results"`
	Pagination Pagination      `json:"pagination"`
	Total      int64           `json:"total"`
}

type SuggestionRequest struct {
	Query string
	Type  string
	Types []ListingType
}

type Suggestions struct {
	Rentals    []Suggestion `json:"rentals"`
	Jobs       []Suggestion `json:"jobs"`
	Skills     []Suggestion `json:"skills"`
	Businesses []Suggestion `json:"businesses"`
}

func (s *Suggestions) Bucket(t ListingType) *[]Suggestion {
	switch t {
	case ListingTypeRentals:
		return &s.Rentals
	case ListingTypeJobs:
		return &s.Jobs
	case ListingTypeSkills:
		return &s.Skills
	case ListingTypeBusinesses:
		return &s.Businesses
	}
	return nil
}

type SuggestionsResponse struct {
	Query       string      `json:"query"`
	Suggestions Suggestions `json:"suggestions"`
}
