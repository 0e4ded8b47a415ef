package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation"
	"go.uber.org/zap"
)

type Err struct {
	Err            error             `json:"-"`
	HTTPStatusCode int               `json:"-"`
	StatusText     string            `json:"status"`
	Message        string            `json:"message,omitempty"`
	Details        map[string]string `json:"details,omitempty"`
}

func (e *Err) Error() string {
	if e.Err == nil {
		return e.StatusText
	}
	return e.Err.Error()
}

// RenderErr aborts the request with e. Server errors are logged with the
// request id; their cause is not sent to the client.
func RenderErr(ctx *gin.Context, e *Err) {
	if e.HTTPStatusCode >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("request_id", requestid.Get(ctx)),
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.Request.URL.Path),
			zap.Error(e.Err),
		)
	}

	ctx.AbortWithStatusJSON(e.HTTPStatusCode, e)
}

func newErr(code int, err error, msg string) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: code,
		StatusText:     http.StatusText(code),
		Message:        msg,
	}
}

// ErrBadRequest reports validation failures field by field.
func ErrBadRequest(err error) *Err {
	e := newErr(http.StatusBadRequest, err, "")

	var fields validation.Errors
	if errors.As(err, &fields) {
		e.Message = "invalid request"
		e.Details = make(map[string]string, len(fields))
		for name, fieldErr := range fields {
			if fieldErr != nil {
				e.Details[name] = fieldErr.Error()
			}
		}
		return e
	}

	if err != nil {
		e.Message = err.Error()
	}
	return e
}

func ErrUnauthorized(err error) *Err {
	return newErr(http.StatusUnauthorized, err, err.Error())
}

func ErrWrongCredentials(err error) *Err {
	return newErr(http.StatusUnauthorized, err, "unable to authenticate with provided credentials")
}

func ErrPermissionDenied(err error) *Err {
	return newErr(http.StatusForbidden, err, err.Error())
}

func ErrNotFound(resource, key string, value any) *Err {
	err := fmt.Errorf("%s with %s %v not found", resource, key, value)
	return newErr(http.StatusNotFound, err, err.Error())
}

func ErrTooManyRequests() *Err {
	return newErr(http.StatusTooManyRequests, errors.New("rate limit exceeded"), "too many requests, slow down")
}

func ErrInternalServerError(err error) *Err {
	return newErr(http.StatusInternalServerError, err, "")
}
