package dto

import (
	"net/http"
	"strconv"
	"strings"

	"bookit/shared/constant"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty,min=1"`
	Limit   int    `json:"limit"    validate:"omitempty,min=1,max=100"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// FromRequest reads page, limit and ordering from the query string.
// Unparseable or non-positive numbers are ignored. A limit above
// constant.MaxValueLimit is clamped.
//
// With paginate set, missing page and limit fall back to the defaults so
// list endpoints never return an unbounded result.
func (q *QueryParams) FromRequest(r *http.Request, paginate bool) {
	values := r.URL.Query()

	q.Page = positiveInt(values.Get(constant.RequestParamPage), q.Page)
	q.Limit = min(positiveInt(values.Get(constant.RequestParamLimit), q.Limit), constant.MaxValueLimit)

	if sortBy := strings.TrimSpace(values.Get(constant.RequestParamSortBy)); sortBy != constant.Empty {
		q.SortBy = strings.ToLower(sortBy)
	}

	switch dir := strings.ToUpper(values.Get(constant.RequestParamSortDir)); dir {
	case SortDirAsc, SortDirDesc:
		q.SortDir = dir
	}

	if !paginate {
		return
	}

	if q.Page == 0 {
		q.Page = constant.DefaultValuePage
	}

	if q.Limit == 0 {
		q.Limit = constant.DefaultValueLimit
	}
}

// WithDefaultSort fills the ordering the caller did not ask for.
func (q *QueryParams) WithDefaultSort(by, dir string) {
	if q.SortBy == constant.Empty {
		q.SortBy = by
	}

	if q.SortDir == constant.Empty {
		q.SortDir = dir
	}
}

func (q QueryParams) Offset() int {
	if q.Page <= 1 || q.Limit <= 0 {
		return 0
	}

	return (q.Page - 1) * q.Limit
}

func (q QueryParams) Sorted() bool {
	return q.SortBy != constant.Empty && q.SortDir != constant.Empty
}

func positiveInt(value string, fallback int) int {
	if value == constant.Empty {
		return fallback
	}

	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return fallback
	}

	return n
}
