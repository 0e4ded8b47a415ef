package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TaiyoMatsuda/board-app/internal/api/handler/v1/request"
	"github.com/TaiyoMatsuda/board-app/internal/api/handler/v1/response"
	"github.com/TaiyoMatsuda/board-app/internal/domain"
)

type UserService interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
	UpdateProfile(ctx context.Context, actor *domain.User, id uint, patch domain.UserPatch) (domain.User, error)
	GetEmail(ctx context.Context, actor *domain.User, id uint) (string, error)
	UpdateEmail(ctx context.Context, actor *domain.User, id uint, email string) (domain.User, error)
	DeleteUser(ctx context.Context, actor *domain.User, id uint) error
	UploadIcon(ctx context.Context, actor *domain.User, id uint, upload domain.Upload) (domain.User, error)
}

type UserHandler struct {
	svc       UserService
	presenter *response.Presenter
}

func NewUserHandler(svc UserService, presenter *response.Presenter) *UserHandler {
	return &UserHandler{
		svc:       svc,
		presenter: presenter,
	}
}

// HandleGetUser godoc
// @Summary      Get a user's profile
// @Tags         users
// @Produce      json
// @Param        userID  path  int  true  "user id"
// @Success      200  {object}  response.UserProfile
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /users/{userID} [get]
func (h *UserHandler) HandleGetUser(ctx *gin.Context) {
	user, ok := h.lookup(ctx)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, h.presenter.UserProfile(user))
}

// HandleReadUser godoc
// @Summary      Get a user's public card
// @Tags         users
// @Produce      json
// @Param        userID  path  int  true  "user id"
// @Success      200  {object}  response.UserCard
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /users/{userID}/read [get]
func (h *UserHandler) HandleReadUser(ctx *gin.Context) {
	user, ok := h.lookup(ctx)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, h.presenter.UserCard(user))
}

// HandleGetShortName godoc
// @Summary      Get a user's short name
// @Tags         users
// @Produce      json
// @Param        userID  path  int  true  "user id"
// @Success      200  {object}  response.ShortName
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /users/{userID}/shortname [get]
func (h *UserHandler) HandleGetShortName(ctx *gin.Context) {
	user, ok := h.lookup(ctx)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, response.ShortName{ShortName: user.ShortName()})
}

// HandleUpdateUser godoc
// @Summary      Update your own profile
// @Description  email and password are refused here.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        userID   path  int                        true  "user id"
// @Param        request  body  request.UpdateUserRequest  true  "fields to change"
// @Success      200  {object}  response.UserProfile
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /users/{userID} [patch]
// @Security BearerAuth
func (h *UserHandler) HandleUpdateUser(ctx *gin.Context) {
	actor, id, ok := h.target(ctx)
	if !ok {
		return
	}

	var req request.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	user, err := h.svc.UpdateProfile(ctx.Request.Context(), actor, id, req.ToPatch())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUpdateUser -> h.svc.UpdateProfile", err)
		return
	}

	ctx.JSON(http.StatusOK, h.presenter.UserProfile(user))
}

// HandleDeleteUser godoc
// @Summary      Delete your own account
// @Description  Also deletes your events, participations and comments.
// @Tags         users
// @Param        userID  path  int  true  "user id"
// @Success      204
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /users/{userID} [delete]
// @Security BearerAuth
func (h *UserHandler) HandleDeleteUser(ctx *gin.Context) {
	actor, id, ok := h.target(ctx)
	if !ok {
		return
	}

	if err := h.svc.DeleteUser(ctx.Request.Context(), actor, id); err != nil {
		renderServiceErr(ctx, "v1.HandleDeleteUser -> h.svc.DeleteUser", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleGetEmail godoc
// @Summary      Get your own email
// @Tags         users
// @Produce      json
// @Param        userID  path  int  true  "user id"
// @Success      200  {object}  response.Email
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /users/{userID}/email [get]
// @Security BearerAuth
func (h *UserHandler) HandleGetEmail(ctx *gin.Context) {
	actor, id, ok := h.target(ctx)
	if !ok {
		return
	}

	email, err := h.svc.GetEmail(ctx.Request.Context(), actor, id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetEmail -> h.svc.GetEmail", err)
		return
	}

	ctx.JSON(http.StatusOK, response.Email{Email: email})
}

// HandleUpdateEmail godoc
// @Summary      Change your own email
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        userID   path  int                         true  "user id"
// @Param        request  body  request.UpdateEmailRequest  true  "new email"
// @Success      200  {object}  response.Email
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /users/{userID}/email [patch]
// @Security BearerAuth
func (h *UserHandler) HandleUpdateEmail(ctx *gin.Context) {
	actor, id, ok := h.target(ctx)
	if !ok {
		return
	}

	var req request.UpdateEmailRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	user, err := h.svc.UpdateEmail(ctx.Request.Context(), actor, id, req.Email)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUpdateEmail -> h.svc.UpdateEmail", err)
		return
	}

	ctx.JSON(http.StatusOK, response.Email{Email: user.Email})
}

// HandleUploadIcon godoc
// @Summary      Upload your icon
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Param        userID  path      int   true  "user id"
// @Param        icon    formData  file  true  "jpeg, png, gif or webp"
// @Success      200  {object}  response.UserProfile
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /users/{userID}/icon [put]
// @Security BearerAuth
func (h *UserHandler) HandleUploadIcon(ctx *gin.Context) {
	actor, id, ok := h.target(ctx)
	if !ok {
		return
	}

	upload, closeFn, respErr := readUpload(ctx, "icon")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	defer closeFn()

	user, err := h.svc.UploadIcon(ctx.Request.Context(), actor, id, upload)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUploadIcon -> h.svc.UploadIcon", err)
		return
	}

	ctx.JSON(http.StatusOK, h.presenter.UserProfile(user))
}

func (h *UserHandler) lookup(ctx *gin.Context) (domain.User, bool) {
	id, respErr := paramID(ctx, "userID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return domain.User{}, false
	}

	user, err := h.svc.GetUser(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "v1.lookup -> h.svc.GetUser", err)
		return domain.User{}, false
	}

	return user, true
}

// target resolves the acting user and the user named in the path.
func (h *UserHandler) target(ctx *gin.Context) (*domain.User, uint, bool) {
	actor, respErr := getUserFromContext(ctx, h.svc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return nil, 0, false
	}

	id, respErr := paramID(ctx, "userID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return nil, 0, false
	}

	return actor, id, true
}
