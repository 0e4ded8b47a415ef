package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TaiyoMatsuda/board-app/internal/api/handler/v1/request"
	"github.com/TaiyoMatsuda/board-app/internal/api/handler/v1/response"
	"github.com/TaiyoMatsuda/board-app/internal/domain"
)

type CommentService interface {
	ListComments(ctx context.Context, eventID uint, p domain.Pagination) (domain.Page[domain.CommentWithAuthor], error)
	CreateComment(ctx context.Context, actor *domain.User, eventID uint, text string) (domain.CommentWithAuthor, error)
	MarkEdited(ctx context.Context, actor *domain.User, eventID, commentID uint) (domain.CommentWithAuthor, error)
	DeleteComment(ctx context.Context, actor *domain.User, eventID, commentID uint) error
}

type CommentHandler struct {
	svc       CommentService
	uSvc      UserFinder
	presenter *response.Presenter
}

func NewCommentHandler(svc CommentService, uSvc UserFinder, presenter *response.Presenter) *CommentHandler {
	return &CommentHandler{
		svc:       svc,
		uSvc:      uSvc,
		presenter: presenter,
	}
}

// HandleListComments godoc
// @Summary      List comments of an event
// @Tags         comments
// @Produce      json
// @Param        eventID  path   int  true   "event id"
// @Param        page     query  int  false  "page number"
// @Success      200  {object}  response.Page[response.Comment]
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/comments [get]
func (h *CommentHandler) HandleListComments(ctx *gin.Context) {
	eventID, respErr := paramID(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	p, respErr := pagination(ctx, domain.CommentPageSize)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	page, err := h.svc.ListComments(ctx.Request.Context(), eventID, p)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListComments -> h.svc.ListComments", err)
		return
	}

	ctx.JSON(http.StatusOK, response.NewPage(ctx, page, h.presenter.Comment))
}

// HandleCreateComment godoc
// @Summary      Comment on an event
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        eventID  path  int                           true  "event id"
// @Param        request  body  request.CreateCommentRequest  true  "comment"
// @Success      201  {object}  response.Comment
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/comments [post]
// @Security BearerAuth
func (h *CommentHandler) HandleCreateComment(ctx *gin.Context) {
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

	var req request.CreateCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.CreateComment(ctx.Request.Context(), actor, eventID, req.Comment)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateComment -> h.svc.CreateComment", err)
		return
	}

	ctx.JSON(http.StatusCreated, h.presenter.Comment(created))
}

// HandleMarkCommentEdited godoc
// @Summary      Mark a comment as edited
// @Description  The comment is shown as "deleted comment" afterwards; its stored text is kept.
// @Tags         comments
// @Produce      json
// @Param        eventID    path  int  true  "event id"
// @Param        commentID  path  int  true  "comment id"
// @Success      200  {object}  response.Comment
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/comments/{commentID}/status [patch]
// @Security BearerAuth
func (h *CommentHandler) HandleMarkCommentEdited(ctx *gin.Context) {
	actor, eventID, commentID, respErr := h.commentTarget(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	updated, err := h.svc.MarkEdited(ctx.Request.Context(), actor, eventID, commentID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleMarkCommentEdited -> h.svc.MarkEdited", err)
		return
	}

	ctx.JSON(http.StatusOK, h.presenter.Comment(updated))
}

// HandleDeleteComment godoc
// @Summary      Delete a comment
// @Tags         comments
// @Param        eventID    path  int  true  "event id"
// @Param        commentID  path  int  true  "comment id"
// @Success      204
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/comments/{commentID} [delete]
// @Security BearerAuth
func (h *CommentHandler) HandleDeleteComment(ctx *gin.Context) {
	actor, eventID, commentID, respErr := h.commentTarget(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.DeleteComment(ctx.Request.Context(), actor, eventID, commentID); err != nil {
		renderServiceErr(ctx, "v1.HandleDeleteComment -> h.svc.DeleteComment", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *CommentHandler) commentTarget(ctx *gin.Context) (*domain.User, uint, uint, *response.Err) {
	actor, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		return nil, 0, 0, respErr
	}

	eventID, respErr := paramID(ctx, "eventID")
	if respErr != nil {
		return nil, 0, 0, respErr
	}

	commentID, respErr := paramID(ctx, "commentID")
	if respErr != nil {
		return nil, 0, 0, respErr
	}

	return actor, eventID, commentID, nil
}
