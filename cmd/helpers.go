package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
)

func (app *application) serverError(w http.ResponseWriter, err error) {
	trace := fmt.Sprintf("%s\n%s", err.Error(), debug.Stack())
	_ = app.errorLog.Output(2, trace)
	app.clientError(w, http.StatusInternalServerError, "Server error")
}

func (app *application) clientError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// logAdapter exposes the application's log pair through the Infof/Errorf
// interface used by the internal packages.
type logAdapter struct {
	info *log.Logger
	err  *log.Logger
}

func (l logAdapter) Infof(format string, args ...interface{}) {
	_ = l.info.Output(2, fmt.Sprintf(format, args...))
}

func (l logAdapter) Errorf(format string, args ...interface{}) {
	_ = l.err.Output(2, fmt.Sprintf(format, args...))
}
