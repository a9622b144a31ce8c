package models

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseSearchType(t *testing.T) {
	cases := []struct {
		raw       string
		wantValue string
		wantTypes []ListingType
		wantErr   bool
	}{
		{raw: "", wantValue: "all", wantTypes: AllListingTypes},
		{raw: "all", wantValue: "all", wantTypes: AllListingTypes},
		{raw: " jobs ", wantValue: "jobs", wantTypes: []ListingType{ListingTypeJobs}},
		{raw: "businesses", wantValue: "businesses", wantTypes: []ListingType{ListingTypeBusinesses}},
		{raw: "ads", wantErr: true},
		{raw: "Rentals", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			value, types, err := ParseSearchType(tc.raw)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidSearchType) {
					t.Fatalf("expected ErrInvalidSearchType, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if value != tc.wantValue || !reflect.DeepEqual(types, tc.wantTypes) {
				t.Fatalf("got (%q, %v), want (%q, %v)", value, types, tc.wantValue, tc.wantTypes)
			}
		})
	}
}

func TestDescriptorsCoverEveryType(t *testing.T) {
	for _, lt := range AllListingTypes {
		d, err := Descriptor(lt)
		if err != nil {
			t.Fatalf("Descriptor(%s): %v", lt, err)
		}
		if d.Status == "" || d.OwnerField == "" || len(d.TextFields) == 0 || len(d.LocationFields) == 0 {
			t.Errorf("%s: incomplete descriptor %+v", lt, d)
		}
		if len(d.Sort) == 0 || d.Sort[0].Field.Path != "isPremium" || !d.Sort[0].Desc {
			t.Errorf("%s: premium must lead the sort", lt)
		}
		if last := d.Sort[len(d.Sort)-1]; last.Field.Path != "createdAt" || !last.Desc {
			t.Errorf("%s: createdAt must break ties", lt)
		}
	}

	b, _ := Descriptor(ListingTypeBusinesses)
	if b.HasPriceFilter() {
		t.Errorf("businesses must not have a price filter")
	}
	r, _ := Descriptor(ListingTypeRentals)
	if r.Category != nil {
		t.Errorf("rentals have no category field")
	}
	j, _ := Descriptor(ListingTypeJobs)
	if j.PriceMin.Path != "salary.min" || j.PriceMax.Path != "salary.max" {
		t.Errorf("unexpected job salary paths: %+v %+v", j.PriceMin, j.PriceMax)
	}
}

func TestValidateCategory(t *testing.T) {
	for _, ok := range []string{"", "technology", "home-services", "real-estate", " retail "} {
		if _, err := ValidateCategory(ok); err != nil {
			t.Errorf("ValidateCategory(%q) returned error: %v", ok, err)
		}
	}
	for _, bad := range []string{"apartment", "Retail", "tech"} {
		if _, err := ValidateCategory(bad); !errors.Is(err, ErrInvalidCategory) {
			t.Errorf("ValidateCategory(%q): expected ErrInvalidCategory, got %v", bad, err)
		}
	}
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	if errs.Err() != nil {
		t.Fatalf("expected nil error for empty list")
	}
	errs.Add("page", "0", "Page must be a positive integer")
	err := errs.Err()
	var got ValidationErrors
	if !errors.As(err, &got) || len(got) != 1 {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	want := FieldError{Type: "field", Value: "0", Msg: "Page must be a positive integer", Path: "page", Location: "query"}
	if got[0] != want {
		t.Fatalf("unexpected field error %+v", got[0])
	}
}
