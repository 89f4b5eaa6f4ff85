package handling

import (
	"car_configurator_server/lib"
	"car_configurator_server/store"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxPageSize = 100

// ParseQuoteListOptions reads the admin quote listing query: page, page_size,
// sort_direction, car_id, user_id, created_after and created_before (RFC 3339).
func ParseQuoteListOptions(r *http.Request) (store.QuoteFilter, error) {
	query := r.URL.Query()
	opts := store.QuoteFilter{Page: 1, PageSize: 20}

	// Early return if no query params
	if len(query) == 0 {
		return opts, nil
	}

	var verr *lib.ValidationError
	fail := func(field, msg string) {
		if verr == nil {
			verr = &lib.ValidationError{}
		}
		verr.Add(field, msg)
	}

	if page := query.Get("page"); page != "" {
		if v, err := strconv.Atoi(page); err != nil || v < 1 {
			fail("page", "must be a positive integer")
		} else {
			opts.Page = v
		}
	}

	if pageSize := query.Get("page_size"); pageSize != "" {
		if v, err := strconv.Atoi(pageSize); err != nil || v < 1 {
			fail("page_size", "must be a positive integer")
		} else {
			opts.PageSize = min(v, maxPageSize)
		}
	}

	if dir := query.Get("sort_direction"); dir != "" {
		switch strings.ToUpper(dir) {
		case "ASC":
			opts.Ascending = true
		case "DESC":
			opts.Ascending = false
		default:
			fail("sort_direction", "must be asc or desc")
		}
	}

	if carID := query.Get("car_id"); carID != "" {
		if v, err := strconv.ParseInt(carID, 10, 64); err != nil {
			fail("car_id", "must be an integer")
		} else {
			opts.CarID = &v
		}
	}

	if userID := query.Get("user_id"); userID != "" {
		if v, err := uuid.Parse(userID); err != nil {
			fail("user_id", "must be a UUID")
		} else {
			opts.UserID = &v
		}
	}

	if createdAfter := query.Get("created_after"); createdAfter != "" {
		if t, err := time.Parse(time.RFC3339, createdAfter); err != nil {
			fail("created_after", "must be an RFC 3339 timestamp")
		} else {
			opts.CreatedAfter = &t
		}
	}

	if createdBefore := query.Get("created_before"); createdBefore != "" {
		if t, err := time.Parse(time.RFC3339, createdBefore); err != nil {
			fail("created_before", "must be an RFC 3339 timestamp")
		} else {
			opts.CreatedBefore = &t
		}
	}

	if verr != nil {
		return opts, verr
	}
	return opts, nil
}
