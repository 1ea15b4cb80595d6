package controllers

import (
	"errors"
	"net/http"
	"strconv"

	json "github.com/goccy/go-json"
)

const maxRequestBodySize = 1 << 20 // 1 MB

var errMissingPeriod = errors.New("missing required parameters: month, year")

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Success: false, Message: message})
}

// parsePeriod reads the month (zero-based) and year query parameters.
func parsePeriod(r *http.Request) (int, int, error) {
	q := r.URL.Query()
	if q.Get("month") == "" || q.Get("year") == "" {
		return 0, 0, errMissingPeriod
	}
	month, err := strconv.Atoi(q.Get("month"))
	if err != nil {
		return 0, 0, errors.New("month must be a number")
	}
	year, err := strconv.Atoi(q.Get("year"))
	if err != nil {
		return 0, 0, errors.New("year must be a number")
	}
	return month, year, nil
}
