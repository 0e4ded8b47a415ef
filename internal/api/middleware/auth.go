package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/TaiyoMatsuda/board-app/internal/api/handler/v1/response"
	"github.com/TaiyoMatsuda/board-app/internal/pkg/jwthelper"
)

const (
	// UserIDKey holds the authenticated user's id in the gin context.
	UserIDKey = "userID"

	bearerPrefix = "Bearer "
)

var (
	errMissingToken      = errors.New("authorization header is missing")
	errMalformedHeader   = errors.New("authorization header must be 'Bearer <token>'")
	errUserAgentMismatch = errors.New("token was issued to a different client")
)

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

// VerifyJWT rejects requests without a valid bearer token.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if header == "" {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingToken))
			return
		}

		if err := a.identify(ctx, header); err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(err))
			return
		}

		ctx.Next()
	}
}

// IdentifyJWT lets anonymous requests through but still rejects a token
// that is present and invalid.
func (a *Authenticator) IdentifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if header == "" {
			ctx.Next()
			return
		}

		if err := a.identify(ctx, header); err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(err))
			return
		}

		ctx.Next()
	}
}

func (a *Authenticator) identify(ctx *gin.Context, header string) error {
	if !strings.HasPrefix(header, bearerPrefix) {
		return errMalformedHeader
	}

	claims, err := jwthelper.ParseToken(a.signingKey, strings.TrimPrefix(header, bearerPrefix))
	if err != nil {
		return err
	}
	if claims.UserAgent != ctx.Request.UserAgent() {
		return errUserAgentMismatch
	}

	ctx.Set(UserIDKey, claims.UserID)

	return nil
}

// UserID returns the id set by the authenticator, if any.
func UserID(ctx *gin.Context) (uint, bool) {
	v, ok := ctx.Get(UserIDKey)
	if !ok {
		return 0, false
	}

	id, ok := v.(uint)
	return id, ok && id != 0
}
