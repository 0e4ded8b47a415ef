package domain

import "errors"

const (
	EventPageSize     = 30
	CommentPageSize   = 15
	UserEventPageSize = 10
	UnlimitedPageSize = 0
	FirstPage         = 1
)

var ErrPageOutOfRange = errors.New("invalid page")

// Pagination selects a 1-based page. A PageSize of 0 selects everything.
type Pagination struct {
	Page     int
	PageSize int
}

func NewPagination(page, pageSize int) Pagination {
	if page < FirstPage {
		page = FirstPage
	}
	return Pagination{Page: page, PageSize: pageSize}
}

func (p Pagination) Limit() int {
	if p.PageSize <= 0 {
		return -1
	}
	return p.PageSize
}

func (p Pagination) Offset() int {
	if p.PageSize <= 0 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// Check rejects pages past the last one. The first page always exists,
// even for an empty result.
func (p Pagination) Check(total int64) error {
	if p.Page == FirstPage || p.PageSize <= 0 {
		return nil
	}
	if int64(p.Offset()) >= total {
		return ErrPageOutOfRange
	}
	return nil
}

func (p Pagination) HasNext(total int64) bool {
	return p.PageSize > 0 && int64(p.Page*p.PageSize) < total
}

func (p Pagination) HasPrevious() bool {
	return p.PageSize > 0 && p.Page > FirstPage
}

// Page is one page of results and the total across all pages.
type Page[T any] struct {
	Items []T
	Total int64
	Pagination
}
