package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"kasiBack/internal/models"
)

// memRow carries the searchable attributes of one stored listing.
type memRow struct {
	listing  models.Listing
	status   string
	text     string
	places   []string
	priceMin *float64
	priceMax *float64
	category string
	premium  bool
	created  time.Time
}

// memRepository evaluates ListingFilters in memory the way the real stores
// do: status gate, word match on text, case-insensitive location substring,
// inclusive price bounds, category equality, premium then newest first.
type memRepository struct {
	mu      sync.Mutex
	rows    map[models.ListingType][]memRow
	errs    map[models.ListingType]error
	calls   int
	finds   []models.FindOptions
	filters []models.ListingFilter
}

func newMemRepository() *memRepository {
	return &memRepository{
		rows: map[models.ListingType][]memRow{},
		errs: map[models.ListingType]error{},
	}
}

func (m *memRepository) add(t models.ListingType, rows ...memRow) {
	m.rows[t] = append(m.rows[t], rows...)
}

func (m *memRepository) match(f models.ListingFilter) []memRow {
	var out []memRow
	for _, row := range m.rows[f.Type] {
		if row.status != f.Status {
			continue
		}
		if f.Text != "" && !containsAnyWord(row.text, f.Text) {
			continue
		}
		if f.Location != "" && !anyContainsFold(row.places, f.Location) {
			continue
		}
		if f.MinPrice != nil && (row.priceMin == nil || *row.priceMin < *f.MinPrice) {
			continue
		}
		if f.MaxPrice != nil && (row.priceMax == nil || *row.priceMax > *f.MaxPrice) {
			continue
		}
		if f.Category != "" && row.category != f.Category {
			continue
		}
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].premium != out[j].premium {
			return out[i].premium
		}
		return out[i].created.After(out[j].created)
	})
	return out
}

func (m *memRepository) Find(_ context.Context, f models.ListingFilter, opts models.FindOptions) ([]models.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.finds = append(m.finds, opts)
	m.filters = append(m.filters, f)
	if err := m.errs[f.Type]; err != nil {
		return nil, err
	}

	rows := m.match(f)
	if opts.Skip >= int64(len(rows)) {
		return []models.Listing{}, nil
	}
	rows = rows[opts.Skip:]
	if opts.Limit > 0 && int64(len(rows)) > opts.Limit {
		rows = rows[:opts.Limit]
	}
	out := make([]models.Listing, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.listing)
	}
	return out, nil
}

func (m *memRepository) Count(_ context.Context, f models.ListingFilter) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if err := m.errs[f.Type]; err != nil {
		return 0, err
	}
	return int64(len(m.match(f))), nil
}

func containsAnyWord(text, query string) bool {
	text = strings.ToLower(text)
	for _, word := range strings.Fields(strings.ToLower(query)) {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}

func anyContainsFold(values []string, sub string) bool {
	sub = strings.ToLower(sub)
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), sub) {
			return true
		}
	}
	return false
}

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func price(v float64) *float64 { return &v }

func rentalRow(id, title, status, city string, amount float64, age time.Duration) memRow {
	return memRow{
		listing: models.Rental{
			ID:      id,
			Title:   title,
			Status:  status,
			Address: models.Address{City: city, State: "Gauteng"},
			Price:   models.RentalPrice{Amount: amount, Currency: "ZAR", Period: "monthly"},
		},
		status:   status,
		text:     title + " " + city,
		places:   []string{city, "Gauteng"},
		priceMin: price(amount),
		priceMax: price(amount),
		created:  baseTime.Add(-age),
	}
}

func jobRow(id, title, category string, age time.Duration) memRow {
	return memRow{
		listing: models.Job{
			ID:       id,
			Title:    title,
			Category: category,
			Status:   "active",
			Company:  models.Company{Name: "Kasi Works"},
			Location: models.JobLocation{Address: models.Address{City: "Soweto"}},
		},
		status:   "active",
		text:     title,
		places:   []string{"Soweto"},
		category: category,
		created:  baseTime.Add(-age),
	}
}

func skillRow(id, title string, age time.Duration) memRow {
	return memRow{
		listing: models.Skill{
			ID:       id,
			Title:    title,
			Category: "home-services",
			Status:   "active",
			Location: models.SkillLocation{ServiceArea: models.ServiceArea{Cities: []string{"Tembisa"}}},
		},
		status:   "active",
		text:     title,
		places:   []string{"Tembisa"},
		category: "home-services",
		created:  baseTime.Add(-age),
	}
}

func businessRow(id, name string, age time.Duration) memRow {
	return memRow{
		listing: models.Business{
			ID:       id,
			Name:     name,
			Category: "retail",
			Status:   "active",
			Address:  models.Address{City: "Alexandra"},
		},
		status:   "active",
		text:     name,
		places:   []string{"Alexandra"},
		category: "retail",
		created:  baseTime.Add(-age),
	}
}
