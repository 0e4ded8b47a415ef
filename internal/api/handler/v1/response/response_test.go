package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TaiyoMatsuda/board-app/internal/domain"
)

type keyURLs struct{}

func (keyURLs) URL(key, placeholder string) string {
	if key == "" {
		return "http://cdn.test/static" + placeholder
	}
	return "http://cdn.test/media/" + key
}

func testContext(target string, header map[string]string) *gin.Context {
	gin.SetMode(gin.TestMode)
	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx.Request = httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		ctx.Request.Header.Set(k, v)
	}

	return ctx
}

func TestErrBadRequest(t *testing.T) {
	e := ErrBadRequest(validation.Errors{
		"title": errors.New("cannot be blank"),
		"fee":   nil,
	})
	assert.Equal(t, http.StatusBadRequest, e.HTTPStatusCode)
	assert.Equal(t, "invalid request", e.Message)
	assert.Equal(t, map[string]string{"title": "cannot be blank"}, e.Details)

	e = ErrBadRequest(errors.New("event time range is invalid"))
	assert.Equal(t, "event time range is invalid", e.Message)
	assert.Nil(t, e.Details)
}

func TestErrNotFound(t *testing.T) {
	e := ErrNotFound("event", "eventID", 12)
	assert.Equal(t, http.StatusNotFound, e.HTTPStatusCode)
	assert.Equal(t, "Not Found", e.StatusText)
	assert.Equal(t, "event with eventID 12 not found", e.Message)
}

func TestRenderErr_HidesServerCause(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/api/v1/events", nil)

	RenderErr(ctx, ErrInternalServerError(errors.New("dial tcp: refused")))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"status":"Internal Server Error"}`, w.Body.String())
	assert.True(t, ctx.IsAborted())
}

func TestNewPage(t *testing.T) {
	identity := func(i int) int { return i }

	ctx := testContext("http://example.com/api/v1/events?page=2&start=2024-05-01", nil)
	page := NewPage(ctx, domain.Page[int]{
		Items:      []int{4, 5, 6},
		Total:      9,
		Pagination: domain.NewPagination(2, 3),
	}, identity)

	assert.EqualValues(t, 9, page.Count)
	assert.Equal(t, []int{4, 5, 6}, page.Results)
	require.NotNil(t, page.Next)
	assert.Equal(t, "http://example.com/api/v1/events?page=3&start=2024-05-01", *page.Next)
	require.NotNil(t, page.Previous)
	assert.Equal(t, "http://example.com/api/v1/events?start=2024-05-01", *page.Previous)

	ctx = testContext("http://example.com/api/v1/events", map[string]string{"X-Forwarded-Proto": "https"})
	page = NewPage(ctx, domain.Page[int]{
		Total:      0,
		Pagination: domain.NewPagination(1, 3),
	}, identity)

	assert.Nil(t, page.Next)
	assert.Nil(t, page.Previous)
	assert.NotNil(t, page.Results)

	ctx = testContext("http://example.com/api/v1/events", map[string]string{"X-Forwarded-Proto": "https"})
	page = NewPage(ctx, domain.Page[int]{
		Items:      []int{1},
		Total:      4,
		Pagination: domain.NewPagination(1, 1),
	}, identity)
	require.NotNil(t, page.Next)
	assert.Equal(t, "https://example.com/api/v1/events?page=2", *page.Next)
}

func TestPresenter(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)
	p := NewPresenter(jst, keyURLs{})

	organizer := domain.User{ID: 1, FirstName: "Taro", FamilyName: "Yamada", IsActive: true, Icon: "uploads/user/taro.png"}
	event := domain.Event{
		ID:          3,
		Title:       "Beach cleanup",
		OrganizerID: organizer.ID,
		EventTime:   time.Date(2024, 5, 1, 1, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2024, 4, 20, 15, 30, 0, 0, time.UTC),
		Status:      domain.EventStatusPublic,
	}

	detail := p.EventDetail(domain.EventDetail{Event: event, Organizer: organizer})
	assert.Equal(t, "YamadaTaro", detail.OrganizerFullName)
	assert.Equal(t, "http://cdn.test/media/uploads/user/taro.png", detail.OrganizerIcon)
	assert.Equal(t, "http://cdn.test/static"+domain.NoEventImage, detail.Image)
	assert.Equal(t, "2024-05-01 10:00:00", detail.EventTime)
	assert.Equal(t, "2024-04-21 00:30:00", detail.BriefUpdatedAt)

	brief := p.BriefEvent(domain.EventSummary{Event: event, ParticipantCount: 4})
	assert.EqualValues(t, 4, brief.ParticipantCount)
	assert.Equal(t, detail.EventTime, brief.EventTime)

	deleted := p.UserCard(domain.User{ID: 9})
	assert.Equal(t, domain.DeletedUserName, deleted.ShortName)
	assert.Equal(t, "http://cdn.test/static"+domain.NoUserImage, deleted.IconURL)
}
