package v1

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/TaiyoMatsuda/board-app/internal/api/handler/v1/response"
	"github.com/TaiyoMatsuda/board-app/internal/api/middleware"
	"github.com/TaiyoMatsuda/board-app/internal/domain"
	"github.com/TaiyoMatsuda/board-app/internal/service"
	"github.com/TaiyoMatsuda/board-app/internal/storage"
)

const maxPageSize = 100

var (
	errInactiveUser    = errors.New("user is inactive or deleted")
	errInvalidPageSize = fmt.Errorf("page_size must be between 1 and %d", maxPageSize)
)

// UserFinder resolves the authenticated user id into the acting user.
type UserFinder interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
}

// getUserFromContext returns the acting user, or nil for an anonymous
// request. A valid token whose user has since been deactivated is refused.
func getUserFromContext(ctx *gin.Context, users UserFinder) (*domain.User, *response.Err) {
	id, ok := middleware.UserID(ctx)
	if !ok {
		return nil, nil
	}

	user, err := users.GetUser(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return nil, response.ErrUnauthorized(errInactiveUser)
		}

		return nil, response.ErrInternalServerError(fmt.Errorf("users.GetUser -> %w", err))
	}

	return &user, nil
}

// paramID reads a numeric path parameter. Anything else does not name a
// resource, so it is a 404.
func paramID(ctx *gin.Context, name string) (uint, *response.Err) {
	raw := ctx.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, response.ErrNotFound("resource", name, raw)
	}

	return uint(id), nil
}

// pagination reads the page and page_size query parameters.
func pagination(ctx *gin.Context, defaultSize int) (domain.Pagination, *response.Err) {
	page := domain.FirstPage
	if raw, ok := ctx.GetQuery("page"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil || n < domain.FirstPage {
			return domain.Pagination{}, response.ErrNotFound("page", "number", raw)
		}
		page = n
	}

	size := defaultSize
	if raw, ok := ctx.GetQuery("page_size"); ok && defaultSize != domain.UnlimitedPageSize {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxPageSize {
			return domain.Pagination{}, response.ErrBadRequest(errInvalidPageSize)
		}
		size = n
	}

	return domain.NewPagination(page, size), nil
}

// readUpload opens the multipart file in field. The caller closes it.
func readUpload(ctx *gin.Context, field string) (domain.Upload, func(), *response.Err) {
	header, err := ctx.FormFile(field)
	if err != nil {
		return domain.Upload{}, nil, response.ErrBadRequest(fmt.Errorf("%s: %w", field, err))
	}

	f, err := header.Open()
	if err != nil {
		return domain.Upload{}, nil, response.ErrInternalServerError(fmt.Errorf("header.Open -> %w", err))
	}

	upload := domain.Upload{
		Filename: header.Filename,
		Size:     header.Size,
		Content:  f,
	}

	return upload, func() { _ = f.Close() }, nil
}

// clientErrs are reported to the client as is, without the call chain.
var clientErrs = []error{
	service.ErrInvalidDateRange,
	service.ErrOrganizerMismatch,
	service.ErrAlreadyParticipating,
	service.ErrUserEmailExists,
	storage.ErrFileTooLarge,
	storage.ErrUnsupportedMediaType,
	storage.ErrEmptyFile,
}

var notFoundErrs = []struct {
	err      error
	resource string
	param    string
}{
	{service.ErrEventNotFound, "event", "eventID"},
	{service.ErrCommentNotFound, "comment", "commentID"},
	{service.ErrParticipantNotFound, "participant", "eventID"},
	{service.ErrUserNotFound, "user", "userID"},
}

// renderServiceErr maps a service error onto its HTTP response. op names
// the failing call for the server log.
func renderServiceErr(ctx *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		response.RenderErr(ctx, response.ErrUnauthorized(err))
		return
	case errors.Is(err, service.ErrForbidden):
		response.RenderErr(ctx, response.ErrPermissionDenied(err))
		return
	case errors.Is(err, service.ErrPageOutOfRange):
		response.RenderErr(ctx, response.ErrNotFound("page", "number", ctx.DefaultQuery("page", "1")))
		return
	}

	for _, sentinel := range clientErrs {
		if errors.Is(err, sentinel) {
			response.RenderErr(ctx, response.ErrBadRequest(sentinel))
			return
		}
	}

	for _, nf := range notFoundErrs {
		if errors.Is(err, nf.err) {
			response.RenderErr(ctx, response.ErrNotFound(nf.resource, nf.param, ctx.Param(nf.param)))
			return
		}
	}

	response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%s -> %w", op, err)))
}
