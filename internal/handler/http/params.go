package http

import (
	"context"
	"errors"
	"net/http"
	"time"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

// parseRangeParams reads from/to query params (YYYY-MM-DD). When omitted the
// range defaults to the last 31 days ending today.
func parseRangeParams(r *http.Request) (from, to time.Time, err error) {
	loc := requestLocation(r)
	now := time.Now().In(loc)

	to = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	from = to.AddDate(0, 0, -31)

	if v := r.URL.Query().Get("from"); v != "" {
		from, err = time.ParseInLocation(dateLayout, v, loc)
		if err != nil {
			return from, to, errors.New("from must be in YYYY-MM-DD format")
		}
	}
	if v := r.URL.Query().Get("to"); v != "" {
		to, err = time.ParseInLocation(dateLayout, v, loc)
		if err != nil {
			return from, to, errors.New("to must be in YYYY-MM-DD format")
		}
	}
	if to.Before(from) {
		return from, to, errors.New("to must not be before from")
	}

	return from, to, nil
}

// parseDateParam reads the date query param, defaulting to today.
func parseDateParam(r *http.Request) (time.Time, error) {
	loc := requestLocation(r)

	v := r.URL.Query().Get("date")
	if v == "" {
		now := time.Now().In(loc)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc), nil
	}

	date, err := time.ParseInLocation(dateLayout, v, loc)
	if err != nil {
		return time.Time{}, errors.New("date must be in YYYY-MM-DD format")
	}
	return date, nil
}

// parseMonthParam reads the month query param (YYYY-MM), defaulting to the
// current month.
func parseMonthParam(r *http.Request) (time.Time, error) {
	loc := requestLocation(r)

	v := r.URL.Query().Get("month")
	if v == "" {
		now := time.Now().In(loc)
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc), nil
	}

	month, err := time.ParseInLocation(monthLayout, v, loc)
	if err != nil {
		return time.Time{}, errors.New("month must be in YYYY-MM format")
	}
	return month, nil
}

type locationCtxKey struct{}

// WithLocation stores the application timezone on the request context so the
// date param helpers parse day boundaries consistently.
func WithLocation(loc *time.Location) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), locationCtxKey{}, loc)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func requestLocation(r *http.Request) *time.Location {
	if loc, ok := r.Context().Value(locationCtxKey{}).(*time.Location); ok && loc != nil {
		return loc
	}
	return time.UTC
}
