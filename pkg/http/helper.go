package http

import (
	"net/http"
	"strconv"
	"time"

	"turnero/pkg/clock"
	"turnero/pkg/config"
	apperrors "turnero/pkg/errors"
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
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid offset parameter: " + s)
		}
		offset = int64(v)
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	return limit, offset, nil
}

// ExtractDate parses a required YYYY-MM-DD query parameter and normalizes
// it to midnight UTC.
func ExtractDate(r *http.Request, param string) (time.Time, error) {
	s := r.URL.Query().Get(param)
	if s == "" {
		return time.Time{}, apperrors.InvalidInput("'" + param + "' query parameter is required")
	}
	d, err := clock.ParseDate(s)
	if err != nil {
		return time.Time{}, apperrors.InvalidInput("invalid " + param + " parameter, expected YYYY-MM-DD: " + s)
	}
	return d, nil
}

// ExtractProfessionalID parses an optional professional_id query parameter.
// Returns 0 when absent, meaning all professionals.
func ExtractProfessionalID(r *http.Request) (int, error) {
	s := r.URL.Query().Get("professional_id")
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, apperrors.InvalidInput("invalid professional_id parameter: " + s)
	}
	return v, nil
}
