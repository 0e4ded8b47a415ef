package response

import (
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/TaiyoMatsuda/board-app/internal/domain"
)

// Page is the paginated envelope. Next and Previous are absolute URLs of
// the neighbouring pages, or null.
type Page[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

func NewPage[T, R any](ctx *gin.Context, page domain.Page[T], mapItem func(T) R) Page[R] {
	results := make([]R, 0, len(page.Items))
	for _, item := range page.Items {
		results = append(results, mapItem(item))
	}

	out := Page[R]{
		Count:   page.Total,
		Results: results,
	}
	if page.HasNext(page.Total) {
		next := pageURL(ctx, page.Page+1)
		out.Next = &next
	}
	if page.HasPrevious() {
		prev := pageURL(ctx, page.Page-1)
		out.Previous = &prev
	}

	return out
}

// pageURL rebuilds the request URL pointing at page n. The first page is
// addressed without a page parameter.
func pageURL(ctx *gin.Context, n int) string {
	scheme := "http"
	if ctx.Request.TLS != nil {
		scheme = "https"
	}
	if proto := ctx.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	q := ctx.Request.URL.Query()
	if n <= domain.FirstPage {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(n))
	}

	u := url.URL{
		Scheme:   scheme,
		Host:     ctx.Request.Host,
		Path:     ctx.Request.URL.Path,
		RawQuery: q.Encode(),
	}

	return u.String()
}
