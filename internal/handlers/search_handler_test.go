package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"kasiBack/internal/models"
)

type stubSearcher struct {
	calls    int
	search   models.SearchRequest
	advanced models.SearchRequest
	suggest  models.SuggestionRequest
	err      error
}

func (s *stubSearcher) Search(_ context.Context, req models.SearchRequest) (models.SearchResponse, error) {
	s.calls++
	s.search = req
	return models.SearchResponse{Query: req.Query, Type: req.Type, Results: models.SearchResults{
		Rentals: []models.Listing{models.Rental{ID: "r1", Title: "Cozy Apartment Downtown"}},
		Total:   1,
	}}, s.err
}

func (s *stubSearcher) AdvancedSearch(_ context.Context, req models.SearchRequest) (models.AdvancedSearchResponse, error) {
	s.calls++
	s.advanced = req
	return models.AdvancedSearchResponse{Type: req.Type, Results: []models.Listing{}}, s.err
}

func (s *stubSearcher) Suggest(_ context.Context, req models.SuggestionRequest) (models.SuggestionsResponse, error) {
	s.calls++
	s.suggest = req
	return models.SuggestionsResponse{Query: req.Query}, s.err
}

type recordingLogger struct{ errors []string }

func (l *recordingLogger) Infof(string, ...interface{}) {}

func (l *recordingLogger) Errorf(format string, args ...interface{}) {
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func serve(h http.HandlerFunc, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decodeErrors(t *testing.T, rec *httptest.ResponseRecorder) []models.FieldError {
	t.Helper()
	var body struct {
		Errors []models.FieldError `json:"errors"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body.Errors
}

func errorPaths(errs []models.FieldError) []string {
	paths := make([]string, 0, len(errs))
	for _, e := range errs {
		paths = append(paths, e.Path)
	}
	return paths
}

func TestSearchValidation(t *testing.T) {
	cases := []struct {
		name   string
		target string
		paths  []string
	}{
		{name: "missing q", target: "/api/search", paths: []string{"q"}},
		{name: "blank q", target: "/api/search?q=%20%20", paths: []string{"q"}},
		{name: "bad type", target: "/api/search?q=room&type=ads", paths: []string{"type"}},
		{name: "empty type", target: "/api/search?q=room&type=", paths: []string{"type"}},
		{name: "blank type", target: "/api/search?q=room&type=%20", paths: []string{"type"}},
		{name: "page zero", target: "/api/search?q=room&page=0", paths: []string{"page"}},
		{name: "page text", target: "/api/search?q=room&page=two", paths: []string{"page"}},
		{name: "limit too big", target: "/api/search?q=room&limit=51", paths: []string{"limit"}},
		{name: "limit zero", target: "/api/search?q=room&limit=0", paths: []string{"limit"}},
		{name: "several", target: "/api/search?q=&page=-1&limit=abc", paths: []string{"q", "page", "limit"}},
		{name: "page skip overflows", target: "/api/search?q=room&page=4611686018427387905&limit=2", paths: []string{"page"}},
		{name: "page beyond int", target: "/api/search?q=room&page=99999999999999999999", paths: []string{"page"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubSearcher{}
			h := &SearchHandler{Service: svc}

			rec := serve(h.Search, tc.target)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			errs := decodeErrors(t, rec)
			if got := errorPaths(errs); !reflect.DeepEqual(got, tc.paths) {
				t.Fatalf("expected error paths %v, got %v", tc.paths, got)
			}
			for _, e := range errs {
				if e.Type != "field" || e.Location != "query" || e.Msg == "" {
					t.Fatalf("unexpected field error %+v", e)
				}
			}
			if svc.calls != 0 {
				t.Fatalf("service must not be called on validation failure")
			}
		})
	}
}

func TestSearchPassesParsedRequest(t *testing.T) {
	svc := &stubSearcher{}
	h := &SearchHandler{Service: svc}

	rec := serve(h.Search, "/api/search?q=%20apartment%20&location=%20Soweto&page=3&limit=25")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	got := svc.search
	if got.Query != "apartment" || got.Location != "Soweto" || got.Page != 3 || got.Limit != 25 {
		t.Fatalf("unexpected request %+v", got)
	}
	if got.Type != "all" || !reflect.DeepEqual(got.Types, models.AllListingTypes) {
		t.Fatalf("expected type to default to all, got %q %v", got.Type, got.Types)
	}

	var body map[string]json.RawMessage
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	for _, key := range []string{"query", "type", "results", "pagination"} {
		if _, ok := body[key]; !ok {
			t.Errorf("response missing %q", key)
		}
	}
}

func TestSearchDefaultsPagination(t *testing.T) {
	svc := &stubSearcher{}
	h := &SearchHandler{Service: svc, DefaultLimit: 10}

	serve(h.Search, "/api/search?q=room")
	if svc.search.Page != 1 || svc.search.Limit != 10 {
		t.Fatalf("expected page 1 limit 10, got %+v", svc.search)
	}
}

func TestSearchStoreErrorIsGeneric500(t *testing.T) {
	logger := &recordingLogger{}
	svc := &stubSearcher{err: errors.New("find jobs: server selection timeout")}
	h := &SearchHandler{Service: svc, Logger: logger}

	rec := serve(h.Search, "/api/search?q=room")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !reflect.DeepEqual(body, map[string]string{"error": "Server error"}) {
		t.Fatalf("unexpected body %v", body)
	}
	if len(logger.errors) != 1 {
		t.Fatalf("expected the store error to be logged once, got %v", logger.errors)
	}
}

func TestAdvancedSearchValidation(t *testing.T) {
	cases := []struct {
		name   string
		target string
		paths  []string
	}{
		{name: "type required", target: "/api/search/advanced?q=room", paths: []string{"type"}},
		{name: "type empty", target: "/api/search/advanced?type=", paths: []string{"type"}},
		{name: "negative min", target: "/api/search/advanced?type=rentals&minPrice=-1", paths: []string{"minPrice"}},
		{name: "text max", target: "/api/search/advanced?type=rentals&maxPrice=cheap", paths: []string{"maxPrice"}},
		{name: "unknown category", target: "/api/search/advanced?type=jobs&category=apartment", paths: []string{"category"}},
		{name: "bad limit", target: "/api/search/advanced?type=jobs&limit=100", paths: []string{"limit"}},
		{name: "page skip overflows", target: "/api/search/advanced?type=jobs&page=4611686018427387905&limit=2", paths: []string{"page"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubSearcher{}
			h := &SearchHandler{Service: svc}

			rec := serve(h.AdvancedSearch, tc.target)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			if got := errorPaths(decodeErrors(t, rec)); !reflect.DeepEqual(got, tc.paths) {
				t.Fatalf("expected error paths %v, got %v", tc.paths, got)
			}
			if svc.calls != 0 {
				t.Fatalf("service must not be called on validation failure")
			}
		})
	}
}

func TestAdvancedSearchAllowsEmptyQuery(t *testing.T) {
	svc := &stubSearcher{}
	h := &SearchHandler{Service: svc}

	rec := serve(h.AdvancedSearch, "/api/search/advanced?type=rentals&minPrice=500&maxPrice=100&category=retail")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	got := svc.advanced
	if got.Query != "" || got.Type != "rentals" || got.Category != "retail" {
		t.Fatalf("unexpected request %+v", got)
	}
	if got.MinPrice == nil || *got.MinPrice != 500 || got.MaxPrice == nil || *got.MaxPrice != 100 {
		t.Fatalf("expected inverted price range to pass through, got %+v", got)
	}
}

func TestSuggestions(t *testing.T) {
	t.Run("requires q", func(t *testing.T) {
		svc := &stubSearcher{}
		h := &SearchHandler{Service: svc}
		rec := serve(h.Suggestions, "/api/search/suggestions?type=jobs")
		if rec.Code != http.StatusBadRequest || svc.calls != 0 {
			t.Fatalf("expected 400 without service call, got %d (%d calls)", rec.Code, svc.calls)
		}
	})

	t.Run("invalid type", func(t *testing.T) {
		h := &SearchHandler{Service: &stubSearcher{}}
		rec := serve(h.Suggestions, "/api/search/suggestions?q=pl&type=ads")
		if got := errorPaths(decodeErrors(t, rec)); !reflect.DeepEqual(got, []string{"type"}) {
			t.Fatalf("unexpected errors %v", got)
		}
	})

	t.Run("empty type", func(t *testing.T) {
		svc := &stubSearcher{}
		h := &SearchHandler{Service: svc}
		rec := serve(h.Suggestions, "/api/search/suggestions?q=pl&type=")
		if rec.Code != http.StatusBadRequest || svc.calls != 0 {
			t.Fatalf("expected 400 without service call, got %d (%d calls)", rec.Code, svc.calls)
		}
		errs := decodeErrors(t, rec)
		if len(errs) != 1 || errs[0].Path != "type" || errs[0].Msg != "Invalid value" {
			t.Fatalf("unexpected errors %+v", errs)
		}
	})

	t.Run("absent type defaults to all", func(t *testing.T) {
		svc := &stubSearcher{}
		h := &SearchHandler{Service: svc}
		if rec := serve(h.Suggestions, "/api/search/suggestions?q=pl"); rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if svc.suggest.Type != "all" || !reflect.DeepEqual(svc.suggest.Types, models.AllListingTypes) {
			t.Fatalf("unexpected type %q %v", svc.suggest.Type, svc.suggest.Types)
		}
	})

	t.Run("passes type", func(t *testing.T) {
		svc := &stubSearcher{}
		h := &SearchHandler{Service: svc}
		rec := serve(h.Suggestions, "/api/search/suggestions?q=pl&type=skills")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !reflect.DeepEqual(svc.suggest.Types, []models.ListingType{models.ListingTypeSkills}) {
			t.Fatalf("unexpected types %v", svc.suggest.Types)
		}
	})
}

func TestHealth(t *testing.T) {
	h := &SearchHandler{Checks: map[string]Pinger{"store": stubPinger{}}}
	if rec := serve(h.Health, "/api/health"); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	logger := &recordingLogger{}
	h = &SearchHandler{Logger: logger, Checks: map[string]Pinger{
		"store": stubPinger{},
		"redis": stubPinger{err: errors.New("dial tcp: connection refused")},
	}}
	rec := serve(h.Health, "/api/health")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	var body struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Status != "unavailable" || body.Checks["redis"] != "unavailable" || len(body.Checks) != 1 {
		t.Fatalf("unexpected body %+v", body)
	}
}
