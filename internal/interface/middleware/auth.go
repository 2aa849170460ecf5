package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/oksasatya/budget-ledger-api/internal/domain/entity"
	"github.com/oksasatya/budget-ledger-api/pkg/apperror"
	"github.com/oksasatya/budget-ledger-api/pkg/helpers"
	"github.com/oksasatya/budget-ledger-api/pkg/response"
)

const (
	CtxUserIDKey       = "userID"
	CtxUserEmailKey    = "userEmail"
	CtxSessionIDKey    = "sessionID"
	CtxRefreshTokenKey = "refreshToken"
)

type AccessDecoder interface {
	DecodeAccess(token string) (helpers.AccessIdentity, error)
}

type RefreshDecoder interface {
	DecodeRefresh(token string) (uuid.UUID, error)
}

// UserResolver confirms the identity behind a token still exists.
type UserResolver interface {
	ResolveUser(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}

var (
	errMissingAuthorization = errors.New("authorization header missing")
	errMalformedBearer      = errors.New("authorization header is not a bearer token")
	errMissingRefresh       = errors.New("refresh cookie missing")
)

// BearerToken extracts the token from an Authorization header value. The value
// must contain "Bearer" and split on a single space into exactly two parts.
func BearerToken(header string) (string, error) {
	if header == "" {
		return "", apperror.UnauthorizedCause(errMissingAuthorization)
	}
	if !strings.Contains(header, "Bearer") {
		return "", apperror.UnauthorizedCause(errMalformedBearer)
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[1] == "" {
		return "", apperror.UnauthorizedCause(errMalformedBearer)
	}
	return parts[1], nil
}

// RequireAuth validates the bearer access token and stores the user id in the
// context. With a resolver the user must also still exist.
func RequireAuth(dec AccessDecoder, resolver UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := BearerToken(c.GetHeader("Authorization"))
		if err != nil {
			response.Abort(c, err)
			return
		}
		id, err := dec.DecodeAccess(token)
		if err != nil {
			response.Abort(c, apperror.UnauthorizedCause(err))
			return
		}
		email := id.Email
		if resolver != nil {
			u, err := resolver.ResolveUser(c.Request.Context(), id.UserID)
			if err != nil {
				response.Abort(c, err)
				return
			}
			email = u.Email
		}
		c.Set(CtxUserIDKey, id.UserID)
		c.Set(CtxUserEmailKey, email)
		c.Next()
	}
}

// RequireSession decodes the refresh cookie and exposes the session id together
// with the raw cookie value, so handlers can set the same cookie again.
func RequireSession(dec RefreshDecoder) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(helpers.RefreshCookie)
		if err != nil || raw == "" {
			response.Abort(c, apperror.UnauthorizedCause(errMissingRefresh))
			return
		}
		sid, err := dec.DecodeRefresh(raw)
		if err != nil {
			response.Abort(c, apperror.UnauthorizedCause(err))
			return
		}
		c.Set(CtxSessionIDKey, sid)
		c.Set(CtxRefreshTokenKey, raw)
		c.Next()
	}
}

// UserID returns the authenticated user id set by RequireAuth.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(CtxUserIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// Session returns the session id and raw refresh token set by RequireSession.
func Session(c *gin.Context) (uuid.UUID, string, bool) {
	v, ok := c.Get(CtxSessionIDKey)
	if !ok {
		return uuid.Nil, "", false
	}
	sid, ok := v.(uuid.UUID)
	if !ok {
		return uuid.Nil, "", false
	}
	return sid, c.GetString(CtxRefreshTokenKey), true
}
