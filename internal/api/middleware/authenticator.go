package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/techforum/engagement-api/internal/api/handler/v1/response"
	"github.com/techforum/engagement-api/internal/domain"
	"github.com/techforum/engagement-api/internal/service"
)

const (
	// UserKey is where the authenticator stores the verified user in the
	// gin context.
	UserKey = "authedUser"

	// AdminIDKey is where the admin authenticator stores the admin's ID.
	AdminIDKey = "authedAdminID"
)

type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (domain.User, error)
}

type AdminTokenVerifier interface {
	VerifyAdminToken(ctx context.Context, token string) (domain.Admin, error)
}

type Authenticator struct {
	svc TokenVerifier
}

func NewAuthenticator(svc TokenVerifier) *Authenticator {
	return &Authenticator{
		svc: svc,
	}
}

// VerifyToken resolves the bearer token to a live user. A token whose
// secret no longer matches the user row (rotated by a newer login) is
// rejected the same way as a tampered one.
func (a *Authenticator) VerifyToken() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, ok := bearerToken(ctx)
		if !ok {
			response.RenderErr(ctx, response.ErrUnauthorized("missing or malformed authorization header"))
			return
		}

		user, err := a.svc.VerifyToken(ctx.Request.Context(), token)
		if err != nil {
			if errors.Is(err, service.ErrInvalidToken) || errors.Is(err, service.ErrUserNotFound) {
				response.RenderErr(ctx, response.ErrUnauthorized("invalid or expired token"))
				return
			}

			response.RenderErr(ctx, response.ErrInternalServerError(err))
			return
		}

		ctx.Set(UserKey, user)
		ctx.Next()
	}
}

type AdminAuthenticator struct {
	svc AdminTokenVerifier
}

func NewAdminAuthenticator(svc AdminTokenVerifier) *AdminAuthenticator {
	return &AdminAuthenticator{
		svc: svc,
	}
}

func (a *AdminAuthenticator) VerifyToken() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, ok := bearerToken(ctx)
		if !ok {
			response.RenderErr(ctx, response.ErrUnauthorized("missing or malformed authorization header"))
			return
		}

		admin, err := a.svc.VerifyAdminToken(ctx.Request.Context(), token)
		if err != nil {
			if errors.Is(err, service.ErrInvalidToken) || errors.Is(err, service.ErrAdminNotFound) {
				response.RenderErr(ctx, response.ErrUnauthorized("invalid or expired token"))
				return
			}

			response.RenderErr(ctx, response.ErrInternalServerError(err))
			return
		}

		ctx.Set(AdminIDKey, admin.ID)
		ctx.Next()
	}
}

func bearerToken(ctx *gin.Context) (string, bool) {
	header := ctx.GetHeader("Authorization")
	if header == "" {
		// Websocket clients can't set headers from the browser, so the
		// token may arrive as a query parameter instead.
		if token := ctx.Query("token"); token != "" {
			return token, true
		}

		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	return parts[1], true
}
