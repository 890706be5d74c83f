package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/snapdraw/raffle-api/internal/api/handler/v1/response"
	"github.com/snapdraw/raffle-api/internal/pkg/jwthelper"
)

const (
	// ClaimsContextKey is where VerifyJWT stores the parsed claims for
	// downstream handlers.
	ClaimsContextKey = "admin_claims"

	bearerPrefix = "Bearer "
)

var (
	errMissingToken = errors.New("missing or malformed authorization header")
	errInvalidToken = errors.New("invalid or expired token")
)

// TokenValidator is implemented by the auth service: revocation check
// first, then signature and expiry.
type TokenValidator interface {
	Validate(ctx context.Context, token string) (*jwthelper.Claims, error)
}

type Authenticator struct {
	validator TokenValidator
}

func NewAuthenticator(validator TokenValidator) *Authenticator {
	return &Authenticator{
		validator: validator,
	}
}

func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, ok := ExtractBearerToken(ctx)
		if !ok {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingToken))
			return
		}

		claims, err := a.validator.Validate(ctx.Request.Context(), token)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(errInvalidToken))
			return
		}

		ctx.Set(ClaimsContextKey, claims)
		ctx.Next()
	}
}

// ExtractBearerToken pulls the raw token out of the Authorization
// header. Handlers that need the token itself (logout) reuse this.
func ExtractBearerToken(ctx *gin.Context) (string, bool) {
	header := ctx.GetHeader("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}

	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if token == "" {
		return "", false
	}

	return token, true
}
