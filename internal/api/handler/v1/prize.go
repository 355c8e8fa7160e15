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

type DrawService interface {
	DigitRanges(ctx context.Context) (maxNumber, participantCount int, ranges domain.DigitRanges, err error)
	CheckWinner(ctx context.Context, drawnNumber int) (winner *domain.Winner, participantCount int, err error)
	DrawBulk(ctx context.Context, count int) (winners []domain.Winner, availableCount int, err error)
}

type PrizeService interface {
	Claim(ctx context.Context, qrData string) (user domain.User, alreadyClaimed bool, err error)
}

type PrizeHandler struct {
	drawSvc  DrawService
	prizeSvc PrizeService
}

func NewPrizeHandler(drawSvc DrawService, prizeSvc PrizeService) *PrizeHandler {
	return &PrizeHandler{
		drawSvc:  drawSvc,
		prizeSvc: prizeSvc,
	}
}

// HandleDigitRanges godoc
// @Summary      Get digit wheel ranges for the draw screen
// @Description  Returns per-digit ranges sized to the participant count. A stage-screen affordance; the server still adjudicates any number.
// @Tags         prize
// @Produce      json
// @Success      200  {object}  response.DigitRangesResponse
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /prize/lottery-digits [get]
// @Security     BearerAuth
func (h *PrizeHandler) HandleDigitRanges(ctx *gin.Context) {
	maxNumber, participantCount, ranges, err := h.drawSvc.DigitRanges(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleDigitRanges -> h.drawSvc.DigitRanges -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.DigitRangesResponse{
		MaxNumber:        maxNumber,
		ParticipantCount: participantCount,
		CanDraw:          true,
		Digits:           ranges,
	})
}

// HandleCheckWinner godoc
// @Summary      Adjudicate a drawn number
// @Description  Looks the number up in the eligible pool. A miss is a normal outcome with a null winner, not an error.
// @Tags         prize
// @Accept       json
// @Produce      json
// @Param        request  body      request.CheckWinnerRequest  true  "request body"
// @Success      200      {object}  response.CheckWinnerResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /prize/check-winner [post]
// @Security     BearerAuth
func (h *PrizeHandler) HandleCheckWinner(ctx *gin.Context) {
	var req request.CheckWinnerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	winner, participantCount, err := h.drawSvc.CheckWinner(ctx.Request.Context(), req.DrawnNumber)
	if err != nil {
		err = fmt.Errorf("v1.HandleCheckWinner -> h.drawSvc.CheckWinner -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.CheckWinnerResponse{
		Winner:           winner,
		ParticipantCount: participantCount,
	})
}

// HandleDrawBulk godoc
// @Summary      Draw multiple winners at once
// @Description  Shuffles the eligible pool and returns the first count entries. Stateless: repeated calls can pick the same people until they claim.
// @Tags         prize
// @Accept       json
// @Produce      json
// @Param        request  body      request.DrawBulkRequest  true  "request body"
// @Success      200      {object}  response.DrawBulkResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /prize/draw-bulk [post]
// @Security     BearerAuth
func (h *PrizeHandler) HandleDrawBulk(ctx *gin.Context) {
	var req request.DrawBulkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	winners, availableCount, err := h.drawSvc.DrawBulk(ctx.Request.Context(), req.Count)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDrawCount) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidDrawCount))
			return
		}

		err = fmt.Errorf("v1.HandleDrawBulk -> h.drawSvc.DrawBulk -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.DrawBulkResponse{
		Winners:        winners,
		AvailableCount: availableCount,
	})
}

// HandleClaim godoc
// @Summary      Redeem a prize-claim QR
// @Description  Decodes a prize grant scanned at the admin desk and records the claim. A repeated scan reports alreadyClaimed instead of failing.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request  body      request.PrizeClaimRequest  true  "request body"
// @Success      200      {object}  response.ClaimResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /admin/prize-claim [post]
// @Security     BearerAuth
func (h *PrizeHandler) HandleClaim(ctx *gin.Context) {
	var req request.PrizeClaimRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	user, alreadyClaimed, err := h.prizeSvc.Claim(ctx.Request.Context(), req.EncryptedData)
	if err != nil {
		if errors.Is(err, service.ErrInvalidGrant) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidGrant))
			return
		}
		if errors.Is(err, service.ErrGrantExpired) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrGrantExpired))
			return
		}
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("user", "grant", "token secret"))
			return
		}

		err = fmt.Errorf("v1.HandleClaim -> h.prizeSvc.Claim -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.ClaimResponse{
		User:           user.Profile(),
		AlreadyClaimed: alreadyClaimed,
	})
}
