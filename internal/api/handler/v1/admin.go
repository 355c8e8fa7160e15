package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/techforum/engagement-api/internal/api/handler/v1/response"
	"github.com/techforum/engagement-api/internal/repository/dao"
	"github.com/techforum/engagement-api/internal/service"
)

type AdminService interface {
	Dashboard(ctx context.Context) (service.Dashboard, error)
	ListUsers(ctx context.Context) ([]dao.UserStats, error)
	ListParticipations(ctx context.Context) ([]dao.ParticipationDetail, error)
	ListEligibleUsers(ctx context.Context) ([]dao.EligibleUser, error)
}

type ParticipationAdminService interface {
	AdminDelete(ctx context.Context, participationID uint) (newlyIneligible bool, err error)
	AdminDeleteAllForUser(ctx context.Context, userID uint) (deletedCount int, err error)
}

type PrizeClaimLister interface {
	ListDetails(ctx context.Context) ([]dao.ClaimDetail, error)
}

type AdminHandler struct {
	svc              AdminService
	participationSvc ParticipationAdminService
	prizeSvc         PrizeClaimLister
}

func NewAdminHandler(svc AdminService, participationSvc ParticipationAdminService, prizeSvc PrizeClaimLister) *AdminHandler {
	return &AdminHandler{
		svc:              svc,
		participationSvc: participationSvc,
		prizeSvc:         prizeSvc,
	}
}

// HandleDashboard godoc
// @Summary      Get admin console dashboard counters
// @Tags         admin
// @Produce      json
// @Success      200  {object}  service.Dashboard
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/dashboard [get]
// @Security     BearerAuth
func (h *AdminHandler) HandleDashboard(ctx *gin.Context) {
	dashboard, err := h.svc.Dashboard(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleDashboard -> h.svc.Dashboard -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, dashboard)
}

// HandleListUsers godoc
// @Summary      List users with booth counts and claim flags
// @Tags         admin
// @Produce      json
// @Success      200  {array}   dao.UserStats
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/users [get]
// @Security     BearerAuth
func (h *AdminHandler) HandleListUsers(ctx *gin.Context) {
	users, err := h.svc.ListUsers(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListUsers -> h.svc.ListUsers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, users)
}

// HandleListParticipations godoc
// @Summary      List all booth participations
// @Tags         admin
// @Produce      json
// @Success      200  {array}   dao.ParticipationDetail
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/participations [get]
// @Security     BearerAuth
func (h *AdminHandler) HandleListParticipations(ctx *gin.Context) {
	details, err := h.svc.ListParticipations(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListParticipations -> h.svc.ListParticipations -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, details)
}

// HandleListEligibleUsers godoc
// @Summary      List prize-eligible users with their booth codes
// @Tags         admin
// @Produce      json
// @Success      200  {array}   dao.EligibleUser
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/eligible-users [get]
// @Security     BearerAuth
func (h *AdminHandler) HandleListEligibleUsers(ctx *gin.Context) {
	users, err := h.svc.ListEligibleUsers(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListEligibleUsers -> h.svc.ListEligibleUsers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, users)
}

// HandleListPrizeClaims godoc
// @Summary      List redeemed prize claims
// @Tags         admin
// @Produce      json
// @Success      200  {array}   dao.ClaimDetail
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/prize-claims [get]
// @Security     BearerAuth
func (h *AdminHandler) HandleListPrizeClaims(ctx *gin.Context) {
	claims, err := h.prizeSvc.ListDetails(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListPrizeClaims -> h.prizeSvc.ListDetails -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, claims)
}

// HandleDeleteParticipation godoc
// @Summary      Soft-delete a booth participation
// @Description  Removes one participation from eligibility counts. Already-issued lottery numbers and recorded claims are untouched.
// @Tags         admin
// @Produce      json
// @Param        participationID  path      int  true  "Participation ID"
// @Success      200              {object}  response.DeleteParticipationResponse
// @Failure      400              {object}  response.Err
// @Failure      401              {object}  response.Err
// @Failure      404              {object}  response.Err
// @Failure      500              {object}  response.Err
// @Router       /admin/participations/{participationID} [delete]
// @Security     BearerAuth
func (h *AdminHandler) HandleDeleteParticipation(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("participationID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid participation ID")))
		return
	}

	newlyIneligible, err := h.participationSvc.AdminDelete(ctx.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrParticipationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("participation", "participationID", id))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteParticipation -> h.participationSvc.AdminDelete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.DeleteParticipationResponse{
		Deleted:         true,
		NewlyIneligible: newlyIneligible,
	})
}

// HandleDeleteUserParticipations godoc
// @Summary      Soft-delete all of a user's booth participations
// @Tags         admin
// @Produce      json
// @Param        userID  path      int  true  "User ID"
// @Success      200     {object}  response.DeleteAllParticipationsResponse
// @Failure      400     {object}  response.Err
// @Failure      401     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /admin/users/{userID}/participations [delete]
// @Security     BearerAuth
func (h *AdminHandler) HandleDeleteUserParticipations(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("userID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid user ID")))
		return
	}

	deletedCount, err := h.participationSvc.AdminDeleteAllForUser(ctx.Request.Context(), uint(id))
	if err != nil {
		err = fmt.Errorf("v1.HandleDeleteUserParticipations -> h.participationSvc.AdminDeleteAllForUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.DeleteAllParticipationsResponse{
		DeletedCount: deletedCount,
	})
}
