package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/techforum/engagement-api/internal/api/handler/v1/request"
	"github.com/techforum/engagement-api/internal/api/handler/v1/response"
	"github.com/techforum/engagement-api/internal/domain"
	"github.com/techforum/engagement-api/internal/service"
)

type AuthService interface {
	Login(ctx context.Context, empNo, lastNumber string) (string, domain.User, error)
	AdminLogin(ctx context.Context, username, password string) (string, domain.Admin, error)
}

type AuthHandler struct {
	svc AuthService
}

func NewAuthHandler(svc AuthService) *AuthHandler {
	return &AuthHandler{
		svc: svc,
	}
}

// HandleLogin godoc
// @Summary      Login with employee number and phone fragment
// @Description  Verifies the employee against the corporate directory and issues a session token. Logging in again rotates the token; older tokens stop working.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      request.LoginRequest  true  "request body"
// @Success      200      {object}  response.LoginResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /auth/login [post]
func (h *AuthHandler) HandleLogin(ctx *gin.Context) {
	var req request.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	token, user, err := h.svc.Login(ctx.Request.Context(), req.EmpNo, req.LastNumber)
	if err != nil {
		if errors.Is(err, service.ErrIdentityRejected) {
			response.RenderErr(ctx, response.ErrUnauthorized(err.Error()))
			return
		}

		err = fmt.Errorf("v1.HandleLogin -> h.svc.Login -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.LoginResponse{
		Token: token,
		User:  user.Profile(),
	})
}

// HandleVerify godoc
// @Summary      Verify the current session token
// @Tags         auth
// @Produce      json
// @Success      200  {object}  domain.Profile
// @Failure      401  {object}  response.Err
// @Router       /auth/verify [get]
// @Security     BearerAuth
func (h *AuthHandler) HandleVerify(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	ctx.JSON(http.StatusOK, user.Profile())
}

// HandleAdminLogin godoc
// @Summary      Login to the admin console
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request  body      request.AdminLoginRequest  true  "request body"
// @Success      200      {object}  response.AdminLoginResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /admin/login [post]
func (h *AuthHandler) HandleAdminLogin(ctx *gin.Context) {
	var req request.AdminLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	token, _, err := h.svc.AdminLogin(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrWrongCredentials) || errors.Is(err, service.ErrAdminNotFound) {
			response.RenderErr(ctx, response.ErrWrongCredentials())
			return
		}

		err = fmt.Errorf("v1.HandleAdminLogin -> h.svc.AdminLogin -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.AdminLoginResponse{
		Token: token,
	})
}

// HandleAdminVerify godoc
// @Summary      Verify the current admin token
// @Tags         admin
// @Produce      json
// @Success      200  {object}  map[string]bool
// @Failure      401  {object}  response.Err
// @Router       /admin/verify [get]
// @Security     BearerAuth
func (h *AuthHandler) HandleAdminVerify(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"valid": true,
	})
}
