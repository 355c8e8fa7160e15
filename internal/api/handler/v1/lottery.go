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
	"github.com/techforum/engagement-api/internal/pkg/qrimage"
	"github.com/techforum/engagement-api/internal/service"
)

type LotteryService interface {
	Issue(ctx context.Context, userID uint, qrData string) (number domain.LotteryNumber, alreadyIssued bool, err error)
	NumberForUser(ctx context.Context, userID uint) (domain.LotteryNumber, error)
	NewAccessGrant(validMinutes int) (domain.LotteryAccessGrant, string, error)
}

type LotteryHandler struct {
	svc LotteryService
}

func NewLotteryHandler(svc LotteryService) *LotteryHandler {
	return &LotteryHandler{
		svc: svc,
	}
}

// HandleIssue godoc
// @Summary      Issue a lottery number
// @Description  Validates a lottery-access QR payload and allocates the next number. A user who already holds a number gets it back with alreadyIssued set.
// @Tags         lottery
// @Accept       json
// @Produce      json
// @Param        request  body      request.LotteryIssueRequest  true  "request body"
// @Success      200      {object}  response.LotteryIssueResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /lottery/issue [post]
// @Security     BearerAuth
func (h *LotteryHandler) HandleIssue(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.LotteryIssueRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	number, alreadyIssued, err := h.svc.Issue(ctx.Request.Context(), user.ID, req.QRData)
	if err != nil {
		if errors.Is(err, service.ErrInvalidGrant) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidGrant))
			return
		}
		if errors.Is(err, service.ErrGrantExpired) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrGrantExpired))
			return
		}

		err = fmt.Errorf("v1.HandleIssue -> h.svc.Issue -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.LotteryIssueResponse{
		Number:        number.Number,
		AlreadyIssued: alreadyIssued,
	})
}

// HandleGenerateQR godoc
// @Summary      Generate the venue lottery-access QR
// @Description  Seals a time-boxed lottery-access payload. Any number of users can scan it before it expires; expiry is the only reuse guard.
// @Tags         lottery
// @Accept       json
// @Produce      json
// @Param        request  body      request.LotteryQRRequest  true  "request body"
// @Success      200      {object}  response.LotteryQRResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /lottery/generate-qr [post]
// @Security     BearerAuth
func (h *LotteryHandler) HandleGenerateQR(ctx *gin.Context) {
	var req request.LotteryQRRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	grant, sealedData, err := h.svc.NewAccessGrant(req.ValidMinutes)
	if err != nil {
		err = fmt.Errorf("v1.HandleGenerateQR -> h.svc.NewAccessGrant -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	image, err := qrimage.DataURL(sealedData)
	if err != nil {
		err = fmt.Errorf("v1.HandleGenerateQR -> qrimage.DataURL -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.LotteryQRResponse{
		EncryptedData: sealedData,
		QRImage:       image,
		IssuedAt:      grant.IssuedAt,
		ExpiresAt:     grant.ExpiresAt,
	})
}
