package models

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidSearchType = errors.New("invalid search type")

// ListingType names one searchable listing collection.
type ListingType string

const (
	ListingTypeRentals    ListingType = "rentals"
	ListingTypeJobs       ListingType = "jobs"
	ListingTypeSkills     ListingType = "skills"
	ListingTypeBusinesses ListingType = "businesses"

	// SearchTypeAll fans a request out to every listing type.
	SearchTypeAll = "all"
)

// AllListingTypes is the fixed bucket order used in every response.
var AllListingTypes = []ListingType{
	ListingTypeRentals,
	ListingTypeJobs,
	ListingTypeSkills,
	ListingTypeBusinesses,
}

// FieldRef points at the same attribute in the document store (Path) and in
// the flattened SQL search table (Column).
type FieldRef struct {
	Path   string
	Column string
}

type SortKey struct {
	Field FieldRef
	Desc  bool
}

// ListingDescriptor holds everything that differs between listing types so a
// single query routine can serve all of them.
type ListingDescriptor struct {
	Type           ListingType
	Collection     string
	Status         string
	OwnerField     string
	TextFields     []string
	LocationFields []FieldRef
	// PriceMin is compared with >= minPrice, PriceMax with <= maxPrice.
	// Both nil means the type has no price filter.
	PriceMin         *FieldRef
	PriceMax         *FieldRef
	Category         *FieldRef
	Sort             []SortKey
	SuggestionFields []string
}

var (
	fieldPremium   = FieldRef{Path: "isPremium", Column: "is_premium"}
	fieldRating    = FieldRef{Path: "rating.average", Column: "rating_average"}
	fieldCreatedAt = FieldRef{Path: "createdAt", Column: "created_at"}
)

var descriptors = map[ListingType]*ListingDescriptor{
	ListingTypeRentals: {
		Type:       ListingTypeRentals,
		Collection: "rentals",
		Status:     "available",
		OwnerField: "landlord",
		TextFields: []string{"title", "description", "address.city", "address.state"},
		LocationFields: []FieldRef{
			{Path: "address.city", Column: "city"},
			{Path: "address.state", Column: "state"},
		},
		PriceMin: &FieldRef{Path: "price.amount", Column: "price_min"},
		PriceMax: &FieldRef{Path: "price.amount", Column: "price_max"},
		// Rentals have no category attribute, so a category filter is ignored.
		Category: nil,
		Sort: []SortKey{
			{Field: fieldPremium, Desc: true},
			{Field: fieldCreatedAt, Desc: true},
		},
		SuggestionFields: []string{"title", "address.city", "address.state"},
	},
	ListingTypeJobs: {
		Type:       ListingTypeJobs,
		Collection: "jobs",
		Status:     "active",
		OwnerField: "employer",
		TextFields: []string{
			"title", "description", "company.name",
			"location.address.city", "location.address.state", "requirements.skills",
		},
		LocationFields: []FieldRef{
			{Path: "location.address.city", Column: "city"},
			{Path: "location.address.state", Column: "state"},
		},
		PriceMin: &FieldRef{Path: "salary.min", Column: "price_min"},
		PriceMax: &FieldRef{Path: "salary.max", Column: "price_max"},
		Category: &FieldRef{Path: "category", Column: "category"},
		Sort: []SortKey{
			{Field: fieldPremium, Desc: true},
			{Field: fieldCreatedAt, Desc: true},
		},
		SuggestionFields: []string{"title", "company.name", "location.address.city"},
	},
	ListingTypeSkills: {
		Type:       ListingTypeSkills,
		Collection: "skills",
		Status:     "active",
		OwnerField: "provider",
		TextFields: []string{"title", "description", "skills", "location.serviceArea.cities"},
		LocationFields: []FieldRef{
			{Path: "location.serviceArea.cities", Column: "city"},
		},
		PriceMin: &FieldRef{Path: "pricing.amount", Column: "price_min"},
		PriceMax: &FieldRef{Path: "pricing.amount", Column: "price_max"},
		Category: &FieldRef{Path: "category", Column: "category"},
		Sort: []SortKey{
			{Field: fieldPremium, Desc: true},
			{Field: fieldRating, Desc: true},
			{Field: fieldCreatedAt, Desc: true},
		},
		SuggestionFields: []string{"title", "category", "location.serviceArea.cities"},
	},
	ListingTypeBusinesses: {
		Type:       ListingTypeBusinesses,
		Collection: "businesses",
		Status:     "active",
		OwnerField: "owner",
		TextFields: []string{
			"name", "description", "address.city", "address.state",
			"services.name", "products.name",
		},
		LocationFields: []FieldRef{
			{Path: "address.city", Column: "city"},
			{Path: "address.state", Column: "state"},
		},
		Category: &FieldRef{Path: "category", Column: "category"},
		Sort: []SortKey{
			{Field: fieldPremium, Desc: true},
			{Field: fieldRating, Desc: true},
			{Field: fieldCreatedAt, Desc: true},
		},
		SuggestionFields: []string{"name", "category", "address.city"},
	},
}

// Descriptor returns the descriptor registered for t.
func Descriptor(t ListingType) (*ListingDescriptor, error) {
	d, ok := descriptors[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSearchType, t)
	}
	return d, nil
}

// HasPriceFilter reports whether price bounds apply to this type.
func (d *ListingDescriptor) HasPriceFilter() bool {
	return d.PriceMin != nil || d.PriceMax != nil
}

// ParseSearchType validates a raw `type` parameter. An empty value defaults
// to "all". The returned slice lists the types to query in bucket order.
func ParseSearchType(raw string) (string, []ListingType, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		value = SearchTypeAll
	}
	if value == SearchTypeAll {
		return value, AllListingTypes, nil
	}
	t := ListingType(value)
	if _, ok := descriptors[t]; !ok {
		return "", nil, fmt.Errorf("%w: %s", ErrInvalidSearchType, value)
	}
	return value, []ListingType{t}, nil
}
