package services

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/ruralpay/cashcard/internal/models"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 2000
)

var ErrInvalidSort = errors.New("invalid sort parameter")

var sortableFields = map[string]bool{
	models.SortByID:     true,
	models.SortByAmount: true,
	models.SortByOwner:  true,
}

// DefaultSort is applied when a list request names no sort: largest amount first.
var DefaultSort = []models.SortOrder{{Field: models.SortByAmount, Descending: true}}

// ParsePageRequest reads page, size and sort from a query string.
//
// page is zero based; negative or unparsable values fall back to 0 and
// values beyond int saturate. size falls back to DefaultPageSize and is
// capped at MaxPageSize. Each sort value is "field" or "field,asc|desc" and
// may repeat.
func ParsePageRequest(q url.Values) (models.PageRequest, error) {
	req := models.PageRequest{Page: 0, Size: DefaultPageSize}

	if v := q.Get("page"); v != "" {
		if p, ok := parseCount(v); ok {
			req.Page = p
		}
	}
	if v := q.Get("size"); v != "" {
		if s, ok := parseCount(v); ok && s > 0 {
			req.Size = s
		}
	}
	if req.Size > MaxPageSize {
		req.Size = MaxPageSize
	}

	for _, raw := range q["sort"] {
		if raw == "" {
			continue
		}
		order, err := parseSort(raw)
		if err != nil {
			return models.PageRequest{}, err
		}
		req.Sort = append(req.Sort, order)
	}
	if len(req.Sort) == 0 {
		req.Sort = append([]models.SortOrder(nil), DefaultSort...)
	}
	return req, nil
}

// parseCount reads a non-negative integer. Values too large for int saturate
// at math.MaxInt so they still land past the last page.
func parseCount(v string) (int, bool) {
	n, err := strconv.Atoi(v)
	if err != nil && !(errors.Is(err, strconv.ErrRange) && n > 0) {
		return 0, false
	}
	return n, n >= 0
}

func parseSort(raw string) (models.SortOrder, error) {
	parts := strings.Split(raw, ",")
	if len(parts) > 2 {
		return models.SortOrder{}, fmt.Errorf("%w: %q", ErrInvalidSort, raw)
	}

	field := strings.TrimSpace(parts[0])
	if !sortableFields[field] {
		return models.SortOrder{}, fmt.Errorf("%w: unknown field %q", ErrInvalidSort, field)
	}

	order := models.SortOrder{Field: field}
	if len(parts) == 2 {
		switch strings.ToLower(strings.TrimSpace(parts[1])) {
		case "asc", "":
		case "desc":
			order.Descending = true
		default:
			return models.SortOrder{}, fmt.Errorf("%w: unknown direction %q", ErrInvalidSort, parts[1])
		}
	}
	return order, nil
}
