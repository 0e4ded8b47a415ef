package v1

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/TaiyoMatsuda/board-app/internal/api/handler/v1/response"
	"github.com/TaiyoMatsuda/board-app/internal/domain"
	"github.com/TaiyoMatsuda/board-app/internal/service"
	"github.com/TaiyoMatsuda/board-app/internal/storage"
)

var hikeTime = time.Date(2024, 5, 1, 1, 0, 0, 0, time.UTC)

func hike() domain.EventDetail {
	return domain.EventDetail{
		Event: domain.Event{
			ID:          10,
			Title:       "Hike",
			Description: "Mt. Takao",
			OrganizerID: guideUser.ID,
			EventTime:   hikeTime,
			Address:     "Hachioji",
			Fee:         500,
			Status:      domain.EventStatusPublic,
			IsActive:    true,
			UpdatedAt:   hikeTime,
		},
		Organizer: guideUser,
	}
}

func newEventHandler() (*EventHandler, *mockEventService) {
	svc := &mockEventService{}
	return NewEventHandler(svc, withUsers(), testPresenter()), svc
}

func TestEventHandler_HandleListEvents(t *testing.T) {
	h, svc := newEventHandler()
	r := newRouter(http.MethodGet, "/api/v1/events", h.HandleListEvents, 0)

	first := domain.NewPagination(1, domain.EventPageSize)
	svc.On("ListEvents", mock.Anything, "2024-05-01", "2024-05-31", first).Return(domain.Page[domain.EventSummary]{
		Items:      []domain.EventSummary{{Event: hike().Event, ParticipantCount: 3}},
		Total:      31,
		Pagination: first,
	}, nil)
	svc.On("ListEvents", mock.Anything, "", "2024-05-31", first).
		Return(domain.Page[domain.EventSummary]{}, fmt.Errorf("domain.NewDateRange -> %w", service.ErrInvalidDateRange))
	svc.On("ListEvents", mock.Anything, "2024-05-01", "2024-05-31", domain.NewPagination(9, domain.EventPageSize)).
		Return(domain.Page[domain.EventSummary]{}, service.ErrPageOutOfRange)

	w := perform(r, http.MethodGet, "/api/v1/events?start=2024-05-01&end=2024-05-31", nil)
	require.Equal(t, http.StatusOK, w.Code)

	page := decode[response.Page[response.BriefEvent]](t, w)
	assert.EqualValues(t, 31, page.Count)
	require.NotNil(t, page.Next)
	assert.Equal(t, "http://example.com/api/v1/events?end=2024-05-31&page=2&start=2024-05-01", *page.Next)
	assert.Nil(t, page.Previous)
	require.Len(t, page.Results, 1)
	assert.Equal(t, response.BriefEvent{
		ID:               10,
		Title:            "Hike",
		Image:            "/static" + domain.NoEventImage,
		EventTime:        "2024-05-01 10:00:00",
		Address:          "Hachioji",
		ParticipantCount: 3,
	}, page.Results[0])

	w = perform(r, http.MethodGet, "/api/v1/events?end=2024-05-31", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(r, http.MethodGet, "/api/v1/events?start=2024-05-01&end=2024-05-31&page=9", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = perform(r, http.MethodGet, "/api/v1/events?start=2024-05-01&end=2024-05-31&page=abc", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	svc.AssertNumberOfCalls(t, "ListEvents", 3)
}

func TestEventHandler_HandleCreateEvent(t *testing.T) {
	h, svc := newEventHandler()
	r := newRouter(http.MethodPost, "/api/v1/events", h.HandleCreateEvent, guideUser.ID)

	body := map[string]any{
		"title":       "Hike",
		"description": "Mt. Takao",
		"organizer":   guideUser.ID,
		"event_time":  "2024-05-01T10:00:00+09:00",
		"address":     "Hachioji",
		"fee":         500,
		"status":      "1",
	}

	svc.On("CreateEvent", mock.Anything, &guideUser, guideUser.ID, mock.MatchedBy(func(e domain.Event) bool {
		return e.Title == "Hike" && e.EventTime.Equal(hikeTime) && e.Status == domain.EventStatusPublic
	})).Return(hike(), nil).Once()

	w := perform(r, http.MethodPost, "/api/v1/events", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	created := decode[response.EventDetail](t, w)
	assert.EqualValues(t, 10, created.ID)
	assert.Equal(t, "YamadaTaro", created.OrganizerFullName)
	assert.Equal(t, "/static"+domain.NoUserImage, created.OrganizerIcon)
	assert.Equal(t, "2024-05-01 10:00:00", created.EventTime)
	assert.Equal(t, "2024-05-01 10:00:00", created.BriefUpdatedAt)

	for name, mutate := range map[string]func(map[string]any){
		"missing title":  func(b map[string]any) { delete(b, "title") },
		"fee too large":  func(b map[string]any) { b["fee"] = 100001 },
		"unknown status": func(b map[string]any) { b["status"] = "3" },
		"bad event_time": func(b map[string]any) { b["event_time"] = "2024-05-01 10:00" },
	} {
		t.Run(name, func(t *testing.T) {
			invalid := map[string]any{}
			for k, v := range body {
				invalid[k] = v
			}
			mutate(invalid)

			w := perform(r, http.MethodPost, "/api/v1/events", invalid)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.NotEmpty(t, decode[response.Err](t, w).Details)
		})
	}

	svc.On("CreateEvent", mock.Anything, &guideUser, uint(2), mock.Anything).Return(domain.EventDetail{}, service.ErrOrganizerMismatch).Once()
	body["organizer"] = 2
	w = perform(r, http.MethodPost, "/api/v1/events", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, service.ErrOrganizerMismatch.Error(), decode[response.Err](t, w).Message)

	member := newRouter(http.MethodPost, "/api/v1/events", h.HandleCreateEvent, memberUser.ID)
	svc.On("CreateEvent", mock.Anything, &memberUser, memberUser.ID, mock.Anything).Return(domain.EventDetail{}, service.ErrForbidden).Once()
	body["organizer"] = memberUser.ID
	w = perform(member, http.MethodPost, "/api/v1/events", body)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestEventHandler_HandleGetEvent(t *testing.T) {
	h, svc := newEventHandler()
	r := newRouter(http.MethodGet, "/api/v1/events/:eventID", h.HandleGetEvent, 0)

	svc.On("GetEvent", mock.Anything, uint(10)).Return(hike(), nil)
	svc.On("GetEvent", mock.Anything, uint(11)).Return(domain.EventDetail{}, fmt.Errorf("s.repo.FindActiveByID -> %w", service.ErrEventNotFound))

	w := perform(r, http.MethodGet, "/api/v1/events/10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Mt. Takao", decode[response.EventDetail](t, w).Description)

	w = perform(r, http.MethodGet, "/api/v1/events/11", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = perform(r, http.MethodGet, "/api/v1/events/hike", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	svc.AssertNumberOfCalls(t, "GetEvent", 2)
}

func TestEventHandler_HandleUpdateEvent(t *testing.T) {
	h, svc := newEventHandler()
	r := newRouter(http.MethodPatch, "/api/v1/events/:eventID", h.HandleUpdateEvent, guideUser.ID)

	title := "Night hike"
	updated := hike()
	updated.Title = title
	svc.On("UpdateEvent", mock.Anything, &guideUser, uint(10), domain.EventPatch{Title: &title}).Return(updated, nil)

	w := perform(r, http.MethodPatch, "/api/v1/events/10", map[string]any{"title": title})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, title, decode[response.EventDetail](t, w).Title)

	w = perform(r, http.MethodPatch, "/api/v1/events/10", map[string]any{"title": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(r, http.MethodPatch, "/api/v1/events/10", map[string]any{"fee": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNumberOfCalls(t, "UpdateEvent", 1)
}

func TestEventHandler_HandleDeleteEvent(t *testing.T) {
	h, svc := newEventHandler()

	svc.On("DeleteEvent", mock.Anything, &guideUser, uint(10)).Return(nil)
	svc.On("DeleteEvent", mock.Anything, &memberUser, uint(10)).Return(service.ErrForbidden)
	svc.On("DeleteEvent", mock.Anything, (*domain.User)(nil), uint(10)).Return(service.ErrUnauthenticated)

	owner := newRouter(http.MethodDelete, "/api/v1/events/:eventID", h.HandleDeleteEvent, guideUser.ID)
	w := perform(owner, http.MethodDelete, "/api/v1/events/10", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	other := newRouter(http.MethodDelete, "/api/v1/events/:eventID", h.HandleDeleteEvent, memberUser.ID)
	w = perform(other, http.MethodDelete, "/api/v1/events/10", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	anonymous := newRouter(http.MethodDelete, "/api/v1/events/:eventID", h.HandleDeleteEvent, 0)
	w = perform(anonymous, http.MethodDelete, "/api/v1/events/10", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestEventHandler_HandleUploadEventImage(t *testing.T) {
	h, svc := newEventHandler()
	r := newRouter(http.MethodPut, "/api/v1/events/:eventID/image", h.HandleUploadEventImage, guideUser.ID)

	withImage := hike()
	withImage.Image = "uploads/event/abc.png"
	svc.On("UploadEventImage", mock.Anything, &guideUser, uint(10), mock.AnythingOfType("domain.Upload")).Return(withImage, nil).Once()

	w := performUpload(r, http.MethodPut, "/api/v1/events/10/image", "image", []byte("png bytes"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "/media/uploads/event/abc.png", decode[response.EventDetail](t, w).Image)

	w = performUpload(r, http.MethodPut, "/api/v1/events/10/image", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.On("UploadEventImage", mock.Anything, &guideUser, uint(10), mock.Anything).
		Return(domain.EventDetail{}, fmt.Errorf("s.store.Save -> %w: text/plain", storage.ErrUnsupportedMediaType)).Once()
	w = performUpload(r, http.MethodPut, "/api/v1/events/10/image", "image", []byte("plain text"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, storage.ErrUnsupportedMediaType.Error(), decode[response.Err](t, w).Message)
}

func TestEventHandler_HandleListUserEvents(t *testing.T) {
	h, svc := newEventHandler()
	r := newRouter(http.MethodGet, "/api/v1/users/:userID/joinedEvents", h.HandleListJoinedEvents, 0)

	second := domain.NewPagination(2, domain.UserEventPageSize)
	svc.On("ListJoinedEvents", mock.Anything, memberUser.ID, second).Return(domain.Page[domain.EventSummary]{
		Items:      []domain.EventSummary{{Event: hike().Event}},
		Total:      11,
		Pagination: second,
	}, nil)

	w := perform(r, http.MethodGet, "/api/v1/users/2/joinedEvents?page=2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	page := decode[response.Page[response.BriefEvent]](t, w)
	assert.Nil(t, page.Next)
	require.NotNil(t, page.Previous)
	assert.Equal(t, "http://example.com/api/v1/users/2/joinedEvents", *page.Previous)
}
