package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// maxBodyBytes bounds request bodies; entries are a handful of short fields.
const maxBodyBytes = 16 << 10

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// decodeJSON reads a single JSON object from the body into dst.
// Unknown fields are rejected so typos surface as 400s.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

// parseTransactionID reads the {id} path value as a positive integer.
func parseTransactionID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid transaction id %q", raw)
	}
	return id, nil
}

// parseDate parses a YYYY-MM-DD calendar date.
func parseDate(s string) (year int, month time.Month, day int, err error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return t.Year(), t.Month(), t.Day(), nil
}

// parseClock parses an HH:MM time of day.
func parseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse(clockLayout, strings.TrimSpace(s))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	return t.Hour(), t.Minute(), nil
}

// sanitizeInput removes control characters except tab, newline and carriage return.
func sanitizeInput(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' && r != '\n' && r != '\r' {
			return -1
		}
		return r
	}, s)
}
