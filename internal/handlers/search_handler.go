package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"kasiBack/internal/models"
)

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 50
)

// Logger provides minimal logging required by the handlers.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Searcher is implemented by services.SearchService.
type Searcher interface {
	Search(ctx context.Context, req models.SearchRequest) (models.SearchResponse, error)
	AdvancedSearch(ctx context.Context, req models.SearchRequest) (models.AdvancedSearchResponse, error)
	Suggest(ctx context.Context, req models.SuggestionRequest) (models.SuggestionsResponse, error)
}

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SearchHandler exposes the listing search endpoints.
type SearchHandler struct {
	Service      Searcher
	Logger       Logger
	DefaultLimit int
	MaxLimit     int
	// Checks are pinged by Health, keyed by the name reported on failure.
	Checks map[string]Pinger
}

// Search handles GET /api/search.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	var errs models.ValidationErrors

	query := strings.TrimSpace(getParam(r, "q"))
	if query == "" {
		errs.Add("q", query, "Search query is required")
	}
	typ, types := parseType(r, false, "Invalid search type", &errs)
	location := strings.TrimSpace(getParam(r, "location"))
	page := parsePage(r, &errs)
	limit := parseLimit(r, h.defaultLimit(), h.maxLimit(), &errs)
	checkPageRange(page, limit, &errs)

	if err := errs.Err(); err != nil {
		h.writeValidation(w, errs)
		return
	}

	resp, err := h.Service.Search(r.Context(), models.SearchRequest{
		Query:    query,
		Type:     typ,
		Types:    types,
		Location: location,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		h.fail(w, r, "performing search", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// AdvancedSearch handles GET /api/search/advanced.
func (h *SearchHandler) AdvancedSearch(w http.ResponseWriter, r *http.Request) {
	var errs models.ValidationErrors

	query := strings.TrimSpace(getParam(r, "q"))
	typ, types := parseType(r, true, "Invalid search type", &errs)
	location := strings.TrimSpace(getParam(r, "location"))
	minPrice := parsePrice(r, "minPrice", "Min price must be positive", &errs)
	maxPrice := parsePrice(r, "maxPrice", "Max price must be positive", &errs)
	rawCategory := getParam(r, "category")
	category, err := models.ValidateCategory(rawCategory)
	if err != nil {
		errs.Add("category", rawCategory, "Invalid category")
	}
	page := parsePage(r, &errs)
	limit := parseLimit(r, h.defaultLimit(), h.maxLimit(), &errs)
	checkPageRange(page, limit, &errs)

	if err := errs.Err(); err != nil {
		h.writeValidation(w, errs)
		return
	}

	resp, err := h.Service.AdvancedSearch(r.Context(), models.SearchRequest{
		Query:    query,
		Type:     typ,
		Types:    types,
		Location: location,
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Category: category,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		h.fail(w, r, "performing advanced search", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Suggestions handles GET /api/search/suggestions.
func (h *SearchHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	var errs models.ValidationErrors

	query := strings.TrimSpace(getParam(r, "q"))
	if query == "" {
		errs.Add("q", query, "Search query is required")
	}
	typ, types := parseType(r, false, "Invalid value", &errs)

	if err := errs.Err(); err != nil {
		h.writeValidation(w, errs)
		return
	}

	resp, err := h.Service.Suggest(r.Context(), models.SuggestionRequest{
		Query: query,
		Type:  typ,
		Types: types,
	})
	if err != nil {
		h.fail(w, r, "getting search suggestions", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Health handles GET /api/health.
func (h *SearchHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	failed := map[string]string{}
	for name, check := range h.Checks {
		if check == nil {
			continue
		}
		if err := check.Ping(ctx); err != nil {
			h.logf("health check %s: %v", name, err)
			failed[name] = "unavailable"
		}
	}

	if len(failed) > 0 {
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status": "unavailable",
			"checks": failed,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *SearchHandler) defaultLimit() int {
	if h.DefaultLimit <= 0 {
		return defaultSearchLimit
	}
	return h.DefaultLimit
}

func (h *SearchHandler) maxLimit() int {
	if h.MaxLimit <= 0 || h.MaxLimit > maxSearchLimit {
		return maxSearchLimit
	}
	return h.MaxLimit
}

func (h *SearchHandler) writeValidation(w http.ResponseWriter, errs models.ValidationErrors) {
	writeJSON(w, http.StatusBadRequest, map[string]models.ValidationErrors{"errors": errs})
}

// fail maps service errors onto the public contract: validation problems
// that slipped past the handler become 400, everything else a generic 500.
func (h *SearchHandler) fail(w http.ResponseWriter, r *http.Request, action string, err error) {
	var verrs models.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		h.writeValidation(w, verrs)
		return
	case errors.Is(err, models.ErrEmptyQuery):
		var errs models.ValidationErrors
		errs.Add("q", "", "Search query is required")
		h.writeValidation(w, errs)
		return
	case errors.Is(err, models.ErrInvalidSearchType):
		var errs models.ValidationErrors
		errs.Add("type", getParam(r, "type"), "Invalid search type")
		h.writeValidation(w, errs)
		return
	}

	if h.Logger != nil {
		h.Logger.Errorf("Error %s: %v", action, err)
	}
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Server error"})
}

func (h *SearchHandler) logf(format string, args ...interface{}) {
	if h.Logger != nil {
		h.Logger.Errorf(format, args...)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
