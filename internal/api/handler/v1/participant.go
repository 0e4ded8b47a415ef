package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TaiyoMatsuda/board-app/internal/api/handler/v1/response"
	"github.com/TaiyoMatsuda/board-app/internal/domain"
)

type ParticipantService interface {
	ListParticipants(ctx context.Context, eventID uint) ([]domain.ParticipantWithUser, error)
	Join(ctx context.Context, actor *domain.User, eventID uint) (domain.Participant, error)
	SetStatus(ctx context.Context, actor *domain.User, eventID uint, status domain.ParticipantStatus) (domain.Participant, error)
}

type ParticipantHandler struct {
	svc       ParticipantService
	uSvc      UserFinder
	presenter *response.Presenter
}

func NewParticipantHandler(svc ParticipantService, uSvc UserFinder, presenter *response.Presenter) *ParticipantHandler {
	return &ParticipantHandler{
		svc:       svc,
		uSvc:      uSvc,
		presenter: presenter,
	}
}

// HandleListParticipants godoc
// @Summary      List users who joined an event
// @Tags         participants
// @Produce      json
// @Param        eventID  path  int  true  "event id"
// @Success      200  {array}   response.Participant
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/participants [get]
func (h *ParticipantHandler) HandleListParticipants(ctx *gin.Context) {
	eventID, respErr := paramID(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	participants, err := h.svc.ListParticipants(ctx.Request.Context(), eventID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListParticipants -> h.svc.ListParticipants", err)
		return
	}

	out := make([]response.Participant, 0, len(participants))
	for _, p := range participants {
		out = append(out, h.presenter.Participant(p))
	}

	ctx.JSON(http.StatusOK, out)
}

// HandleJoinEvent godoc
// @Summary      Join an event
// @Tags         participants
// @Produce      json
// @Param        eventID  path  int  true  "event id"
// @Success      201  {object}  response.Participant
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/participants [post]
// @Security BearerAuth
func (h *ParticipantHandler) HandleJoinEvent(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, respErr := paramID(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	created, err := h.svc.Join(ctx.Request.Context(), actor, eventID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleJoinEvent -> h.svc.Join", err)
		return
	}

	ctx.JSON(http.StatusCreated, h.presenter.Participant(domain.ParticipantWithUser{
		Participant: created,
		User:        *actor,
	}))
}

// HandleRejoinEvent godoc
// @Summary      Join an event again after cancelling
// @Tags         participants
// @Produce      json
// @Param        eventID  path  int  true  "event id"
// @Success      200  {object}  response.ParticipantStatus
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/participants/join [patch]
// @Security BearerAuth
func (h *ParticipantHandler) HandleRejoinEvent(ctx *gin.Context) {
	h.setStatus(ctx, domain.ParticipantStatusJoin)
}

// HandleCancelParticipation godoc
// @Summary      Cancel participation in an event
// @Tags         participants
// @Produce      json
// @Param        eventID  path  int  true  "event id"
// @Success      200  {object}  response.ParticipantStatus
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/participants/cancel [patch]
// @Security BearerAuth
func (h *ParticipantHandler) HandleCancelParticipation(ctx *gin.Context) {
	h.setStatus(ctx, domain.ParticipantStatusCancel)
}

func (h *ParticipantHandler) setStatus(ctx *gin.Context, status domain.ParticipantStatus) {
	actor, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, respErr := paramID(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	updated, err := h.svc.SetStatus(ctx.Request.Context(), actor, eventID, status)
	if err != nil {
		renderServiceErr(ctx, "v1.setStatus -> h.svc.SetStatus", err)
		return
	}

	ctx.JSON(http.StatusOK, response.ParticipantStatus{Status: updated.Status})
}
