package http

import (
	"net/http"
	"strconv"
	"time"

	"airlock/pkg/config"
	apperrors "airlock/pkg/errors"
)

func ExtractLimitOffset(r *http.Request) (int, int64, error) {
	query := r.URL.Query()

	limit := 0
	if s := query.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid limit parameter: " + s)
		}
		limit = v
	}

	var offset int64 = 0
	if s := query.Get("offset"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid offset parameter: " + s)
		}
		offset = v
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	return limit, offset, nil
}

// ExtractDateRange parses the check_in/check_out query parameters. Both are
// required; accepts RFC3339 or bare dates.
func ExtractDateRange(r *http.Request) (time.Time, time.Time, error) {
	query := r.URL.Query()

	checkIn, err := parseDate(query.Get("check_in"))
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.InvalidInput("invalid or missing check_in parameter")
	}

	checkOut, err := parseDate(query.Get("check_out"))
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.InvalidInput("invalid or missing check_out parameter")
	}

	return checkIn, checkOut, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
