package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrStoreUnavailable = errors.New("models: listing store unavailable")
	ErrEmptyQuery       = errors.New("models: search query is required")
)

// FieldError mirrors the per-field entries clients already parse.
type FieldError struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Msg      string `json:"msg"`
	Path     string `json:"path"`
	Location string `json:"location"`
}

// ValidationErrors collects every rejected query parameter of one request.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Path, fe.Msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records a query-parameter error.
func (v *ValidationErrors) Add(path, value, msg string) {
	*v = append(*v, FieldError{Type: "field", Value: value, Msg: msg, Path: path, Location: "query"})
}

// Err returns nil when nothing was recorded.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}
