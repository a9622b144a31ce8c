package models

// ListingFilter is the store-neutral form of one per-type query. Stores
// resolve field paths through the type's descriptor.
type ListingFilter struct {
	Type     ListingType
	Status   string
	Text     string
	Location string
	MinPrice *float64
	MaxPrice *float64
	Category string
}

// FindOptions controls paging and shaping of a Find call.
type FindOptions struct {
	Skip  int64
	Limit int64
	// Populate resolves the owner reference to name, email and phone.
	Populate bool
	// Suggest restricts the fetched fields to the descriptor's suggestion
	// fields and skips sorting.
	Suggest bool
}
