package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TaiyoMatsuda/board-app/internal/api/handler/v1/request"
	"github.com/TaiyoMatsuda/board-app/internal/api/handler/v1/response"
	"github.com/TaiyoMatsuda/board-app/internal/domain"
)

type EventService interface {
	ListEvents(ctx context.Context, start, end string, p domain.Pagination) (domain.Page[domain.EventSummary], error)
	CreateEvent(ctx context.Context, actor *domain.User, organizerID uint, event domain.Event) (domain.EventDetail, error)
	GetEvent(ctx context.Context, id uint) (domain.EventDetail, error)
	UpdateEvent(ctx context.Context, actor *domain.User, id uint, patch domain.EventPatch) (domain.EventDetail, error)
	DeleteEvent(ctx context.Context, actor *domain.User, id uint) error
	UploadEventImage(ctx context.Context, actor *domain.User, id uint, upload domain.Upload) (domain.EventDetail, error)
	ListOrganizedEvents(ctx context.Context, userID uint, p domain.Pagination) (domain.Page[domain.EventSummary], error)
	ListJoinedEvents(ctx context.Context, userID uint, p domain.Pagination) (domain.Page[domain.EventSummary], error)
}

type EventHandler struct {
	svc       EventService
	uSvc      UserFinder
	presenter *response.Presenter
}

func NewEventHandler(svc EventService, uSvc UserFinder, presenter *response.Presenter) *EventHandler {
	return &EventHandler{
		svc:       svc,
		uSvc:      uSvc,
		presenter: presenter,
	}
}

// HandleListEvents godoc
// @Summary      List events in a date range
// @Description  Active events held between start and end (inclusive), ordered by event time.
// @Tags         events
// @Produce      json
// @Param        start      query     string  true   "first day, YYYY-MM-DD"
// @Param        end        query     string  true   "last day, YYYY-MM-DD"
// @Param        page       query     int     false  "page number"
// @Param        page_size  query     int     false  "page size"
// @Success      200  {object}  response.Page[response.BriefEvent]
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events [get]
func (h *EventHandler) HandleListEvents(ctx *gin.Context) {
	p, respErr := pagination(ctx, domain.EventPageSize)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	page, err := h.svc.ListEvents(ctx.Request.Context(), ctx.Query("start"), ctx.Query("end"), p)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListEvents -> h.svc.ListEvents", err)
		return
	}

	ctx.JSON(http.StatusOK, response.NewPage(ctx, page, h.presenter.BriefEvent))
}

// HandleCreateEvent godoc
// @Summary      Create an event
// @Description  Only guides can create events, and only as their own organizer.
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateEventRequest  true  "event"
// @Success      201  {object}  response.EventDetail
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events [post]
// @Security BearerAuth
func (h *EventHandler) HandleCreateEvent(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.CreateEvent(ctx.Request.Context(), actor, req.Organizer, req.ToDomain())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateEvent -> h.svc.CreateEvent", err)
		return
	}

	ctx.JSON(http.StatusCreated, h.presenter.EventDetail(created))
}

// HandleGetEvent godoc
// @Summary      Get an event
// @Tags         events
// @Produce      json
// @Param        eventID  path      int  true  "event id"
// @Success      200  {object}  response.EventDetail
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID} [get]
func (h *EventHandler) HandleGetEvent(ctx *gin.Context) {
	id, respErr := paramID(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	event, err := h.svc.GetEvent(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetEvent -> h.svc.GetEvent", err)
		return
	}

	ctx.JSON(http.StatusOK, h.presenter.EventDetail(event))
}

// HandleUpdateEvent godoc
// @Summary      Partially update an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        eventID  path      int                         true  "event id"
// @Param        request  body      request.UpdateEventRequest  true  "fields to change"
// @Success      200  {object}  response.EventDetail
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID} [patch]
// @Security BearerAuth
func (h *EventHandler) HandleUpdateEvent(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	id, respErr := paramID(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.UpdateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	updated, err := h.svc.UpdateEvent(ctx.Request.Context(), actor, id, req.ToPatch())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUpdateEvent -> h.svc.UpdateEvent", err)
		return
	}

	ctx.JSON(http.StatusOK, h.presenter.EventDetail(updated))
}

// HandleDeleteEvent godoc
// @Summary      Delete an event
// @Description  Logical delete by the organizer or staff. Comments and participants are kept.
// @Tags         events
// @Param        eventID  path  int  true  "event id"
// @Success      204
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID} [delete]
// @Security BearerAuth
func (h *EventHandler) HandleDeleteEvent(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	id, respErr := paramID(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.DeleteEvent(ctx.Request.Context(), actor, id); err != nil {
		renderServiceErr(ctx, "v1.HandleDeleteEvent -> h.svc.DeleteEvent", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleUploadEventImage godoc
// @Summary      Upload an event image
// @Tags         events
// @Accept       multipart/form-data
// @Produce      json
// @Param        eventID  path      int   true  "event id"
// @Param        image    formData  file  true  "jpeg, png, gif or webp"
// @Success      200  {object}  response.EventDetail
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/image [put]
// @Security BearerAuth
func (h *EventHandler) HandleUploadEventImage(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	id, respErr := paramID(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	upload, closeFn, respErr := readUpload(ctx, "image")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	defer closeFn()

	updated, err := h.svc.UploadEventImage(ctx.Request.Context(), actor, id, upload)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUploadEventImage -> h.svc.UploadEventImage", err)
		return
	}

	ctx.JSON(http.StatusOK, h.presenter.EventDetail(updated))
}

// HandleListOrganizedEvents godoc
// @Summary      List events organized by a user
// @Tags         users
// @Produce      json
// @Param        userID     path   int  true   "user id"
// @Param        page       query  int  false  "page number"
// @Success      200  {object}  response.Page[response.BriefEvent]
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /users/{userID}/organizedEvents [get]
func (h *EventHandler) HandleListOrganizedEvents(ctx *gin.Context) {
	h.listUserEvents(ctx, "v1.HandleListOrganizedEvents -> h.svc.ListOrganizedEvents", h.svc.ListOrganizedEvents)
}

// HandleListJoinedEvents godoc
// @Summary      List events a user has joined
// @Description  Private events are left out.
// @Tags         users
// @Produce      json
// @Param        userID     path   int  true   "user id"
// @Param        page       query  int  false  "page number"
// @Success      200  {object}  response.Page[response.BriefEvent]
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /users/{userID}/joinedEvents [get]
func (h *EventHandler) HandleListJoinedEvents(ctx *gin.Context) {
	h.listUserEvents(ctx, "v1.HandleListJoinedEvents -> h.svc.ListJoinedEvents", h.svc.ListJoinedEvents)
}

type userEventLister func(ctx context.Context, userID uint, p domain.Pagination) (domain.Page[domain.EventSummary], error)

func (h *EventHandler) listUserEvents(ctx *gin.Context, op string, list userEventLister) {
	userID, respErr := paramID(ctx, "userID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	p, respErr := pagination(ctx, domain.UserEventPageSize)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	page, err := list(ctx.Request.Context(), userID, p)
	if err != nil {
		renderServiceErr(ctx, op, err)
		return
	}

	ctx.JSON(http.StatusOK, response.NewPage(ctx, page, h.presenter.BriefEvent))
}
