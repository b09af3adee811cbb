package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"
)

var errBadTimestamp = errors.New("expected RFC 3339 timestamp or YYYY-MM-DD date")

// parseWhen accepts either a full RFC 3339 timestamp or a bare date. Bare
// dates are normalized to the configured pickup hour, UTC.
func parseWhen(value string, pickupHourUTC int) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	if d, err := time.Parse("2006-01-02", value); err == nil {
		return time.Date(d.Year(), d.Month(), d.Day(), pickupHourUTC, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, errBadTimestamp
}

// pagination pulls page/page_size query params with sane bounds.
func pagination(r *http.Request) (page, pageSize int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(r.URL.Query().Get("page_size"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
