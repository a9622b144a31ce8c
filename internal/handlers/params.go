package handlers

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"kasiBack/internal/models"
)

// getParam returns a path or query parameter value regardless of whether
// the router stores it with a leading colon or not.
func getParam(r *http.Request, name string) string {
	if r == nil {
		return ""
	}

	if val := r.URL.Query().Get(":" + name); val != "" {
		return val
	}

	return r.URL.Query().Get(name)
}

// hasParam distinguishes an absent parameter from an empty one.
func hasParam(r *http.Request, name string) bool {
	_, ok := r.URL.Query()[name]
	return ok
}

func parsePage(r *http.Request, errs *models.ValidationErrors) int {
	if !hasParam(r, "page") {
		return 1
	}
	raw := getParam(r, "page")
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		errs.Add("page", raw, "Page must be a positive integer")
		return 0
	}
	return value
}

func parseLimit(r *http.Request, fallback, max int, errs *models.ValidationErrors) int {
	if !hasParam(r, "limit") {
		return fallback
	}
	raw := getParam(r, "limit")
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 || value > max {
		errs.Add("limit", raw, "Limit must be between 1 and "+strconv.Itoa(max))
		return 0
	}
	return value
}

// checkPageRange rejects pages whose skip (page-1)*limit overflows. It runs
// after both values parsed cleanly.
func checkPageRange(page, limit int, errs *models.ValidationErrors) {
	if page < 1 || limit < 1 {
		return
	}
	if !models.PageInRange(page, limit) {
		errs.Add("page", strconv.Itoa(page), "Page must be a positive integer")
	}
}

func parsePrice(r *http.Request, name, msg string, errs *models.ValidationErrors) *float64 {
	if !hasParam(r, name) {
		return nil
	}
	raw := getParam(r, name)
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		errs.Add(name, raw, msg)
		return nil
	}
	return &value
}

// parseType defaults an absent optional type to "all". A type that is
// present but blank is rejected on every endpoint.
func parseType(r *http.Request, required bool, msg string, errs *models.ValidationErrors) (string, []models.ListingType) {
	if !hasParam(r, "type") {
		if required {
			errs.Add("type", "", msg)
			return "", nil
		}
		return models.SearchTypeAll, models.AllListingTypes
	}
	raw := getParam(r, "type")
	if strings.TrimSpace(raw) == "" {
		errs.Add("type", raw, msg)
		return "", nil
	}
	value, types, err := models.ParseSearchType(raw)
	if err != nil {
		errs.Add("type", raw, msg)
		return "", nil
	}
	return value, types
}
