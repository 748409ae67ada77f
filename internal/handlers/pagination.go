package handlers

import (
	"errors"
	"strconv"
)

var errInvalidPagination = errors.New("invalid pagination params")

func parsePaginationParams(pageStr, limitStr string) (int64, int64, error) {
	page := int64(1)
	limit := int64(20)

	if pageStr != "" {
		p, err := strconv.ParseInt(pageStr, 10, 64)
		if err != nil || p < 1 {
			return 0, 0, errInvalidPagination
		}
		page = p
	}

	if limitStr != "" {
		l, err := strconv.ParseInt(limitStr, 10, 64)
		if err != nil || l < 1 {
			return 0, 0, errInvalidPagination
		}
		limit = l
	}

	return page, limit, nil
}

// parseTakeParam reads the admin feed size, clamped to 1..200 with a default
// of 50. Out-of-range values clamp instead of erroring.
func parseTakeParam(takeStr string) int64 {
	take := int64(50)
	if takeStr != "" {
		if t, err := strconv.ParseInt(takeStr, 10, 64); err == nil {
			take = t
		}
	}
	if take < 1 {
		take = 1
	}
	if take > 200 {
		take = 200
	}
	return take
}
