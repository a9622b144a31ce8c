package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"kasiBack/internal/models"
)

const (
	maxSuggestionsPerType = 5
)

// ListingRepository is the read access the aggregator needs from the listing
// store. Implementations apply the descriptor of filter.Type.
type ListingRepository interface {
	Find(ctx context.Context, filter models.ListingFilter, opts models.FindOptions) ([]models.Listing, error)
	Count(ctx context.Context, filter models.ListingFilter) (int64, error)
}

// SearchService aggregates listings across rentals, jobs, skills and
// businesses. It keeps no state between requests.
type SearchService struct {
	Repo ListingRepository
	// Parallel issues the per-type queries of one request concurrently.
	Parallel        bool
	SuggestionLimit int
	Timeout         time.Duration
}

type typeResult struct {
	items []models.Listing
	count int64
}

// Search runs the basic search: every requested type is paged with the same
// skip/limit and reported in its own bucket.
func (s *SearchService) Search(ctx context.Context, req models.SearchRequest) (models.SearchResponse, error) {
	if strings.TrimSpace(req.Query) == "" {
		return models.SearchResponse{}, models.ErrEmptyQuery
	}
	if err := req.ValidatePaging(); err != nil {
		return models.SearchResponse{}, err
	}

	filters, err := BuildFilters(req)
	if err != nil {
		return models.SearchResponse{}, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	perType, err := s.runPerType(ctx, filters, int64(req.Skip()), int64(req.Limit))
	if err != nil {
		return models.SearchResponse{}, err
	}

	results := models.SearchResults{
		Rentals:    []models.Listing{},
		Jobs:       []models.Listing{},
		Skills:     []models.Listing{},
		Businesses: []models.Listing{},
	}
	for i, f := range filters {
		if bucket := results.Bucket(f.Type); bucket != nil && perType[i].items != nil {
			*bucket = perType[i].items
		}
		results.Total += perType[i].count
	}

	return models.SearchResponse{
		Query:      req.Query,
		Type:       req.Type,
		Location:   req.Location,
		Results:    results,
		Pagination: buildPagination(req, results.Total, perType),
	}, nil
}

// AdvancedSearch applies price and category filters on top of the basic
// search and returns a flat result list. For type "all" the per-type pages
// are concatenated in bucket order.
func (s *SearchService) AdvancedSearch(ctx context.Context, req models.SearchRequest) (models.AdvancedSearchResponse, error) {
	if err := req.ValidatePaging(); err != nil {
		return models.AdvancedSearchResponse{}, err
	}

	filters, err := BuildFilters(req)
	if err != nil {
		return models.AdvancedSearchResponse{}, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	perType, err := s.runPerType(ctx, filters, int64(req.Skip()), int64(req.Limit))
	if err != nil {
		return models.AdvancedSearchResponse{}, err
	}

	var total int64
	items := make([]models.Listing, 0)
	for _, r := range perType {
		items = append(items, r.items...)
		total += r.count
	}

	return models.AdvancedSearchResponse{
		Query: req.Query,
		Type:  req.Type,
		Filters: models.AdvancedFilters{
			Location: req.Location,
			MinPrice: req.MinPrice,
			MaxPrice: req.MaxPrice,
			Category: req.Category,
		},
		Results:    items,
		Pagination: buildPagination(req, total, perType),
		Total:      total,
	}, nil
}

// Suggest returns up to five lightly projected matches per requested type.
func (s *SearchService) Suggest(ctx context.Context, req models.SuggestionRequest) (models.SuggestionsResponse, error) {
	if strings.TrimSpace(req.Query) == "" {
		return models.SuggestionsResponse{}, models.ErrEmptyQuery
	}

	filters, err := buildSuggestionFilters(req)
	if err != nil {
		return models.SuggestionsResponse{}, err
	}

	limit := s.SuggestionLimit
	if limit <= 0 || limit > maxSuggestionsPerType {
		limit = maxSuggestionsPerType
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	found := make([][]models.Listing, len(filters))
	err = s.forEach(ctx, filters, func(ctx context.Context, i int, f models.ListingFilter) error {
		items, err := s.Repo.Find(ctx, f, models.FindOptions{Limit: int64(limit), Suggest: true})
		if err != nil {
			return fmt.Errorf("suggest %s: %w", f.Type, err)
		}
		found[i] = items
		return nil
	})
	if err != nil {
		return models.SuggestionsResponse{}, err
	}

	suggestions := models.Suggestions{
		Rentals:    []models.Suggestion{},
		Jobs:       []models.Suggestion{},
		Skills:     []models.Suggestion{},
		Businesses: []models.Suggestion{},
	}
	for i, f := range filters {
		items := found[i]
		if len(items) > limit {
			items = items[:limit]
		}
		bucket := suggestions.Bucket(f.Type)
		for _, item := range items {
			*bucket = append(*bucket, item.Suggestion())
		}
	}

	return models.SuggestionsResponse{Query: req.Query, Suggestions: suggestions}, nil
}

func (s *SearchService) runPerType(ctx context.Context, filters []models.ListingFilter, skip, limit int64) ([]typeResult, error) {
	results := make([]typeResult, len(filters))
	err := s.forEach(ctx, filters, func(ctx context.Context, i int, f models.ListingFilter) error {
		count, err := s.Repo.Count(ctx, f)
		if err != nil {
			return fmt.Errorf("count %s: %w", f.Type, err)
		}
		items, err := s.Repo.Find(ctx, f, models.FindOptions{Skip: skip, Limit: limit, Populate: true})
		if err != nil {
			return fmt.Errorf("find %s: %w", f.Type, err)
		}
		if int64(len(items)) > limit {
			items = items[:limit]
		}
		results[i] = typeResult{items: items, count: count}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// forEach calls fn once per filter. Any error fails the whole call; results
// are written by index so ordering does not depend on scheduling.
func (s *SearchService) forEach(ctx context.Context, filters []models.ListingFilter, fn func(context.Context, int, models.ListingFilter) error) error {
	if !s.Parallel || len(filters) < 2 {
		for i, f := range filters {
			if err := fn(ctx, i, f); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, f := range filters {
		g.Go(func() error {
			return fn(gctx, i, f)
		})
	}
	return g.Wait()
}

func (s *SearchService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.Timeout)
}
