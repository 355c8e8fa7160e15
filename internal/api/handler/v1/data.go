package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/techforum/engagement-api/internal/api/handler/v1/response"
	"github.com/techforum/engagement-api/internal/service"
)

type DataHandler struct {
	lotterySvc LotteryService
}

func NewDataHandler(lotterySvc LotteryService) *DataHandler {
	return &DataHandler{
		lotterySvc: lotterySvc,
	}
}

// HandleGetUser godoc
// @Summary      Get the authenticated user's profile
// @Tags         data
// @Produce      json
// @Success      200  {object}  domain.Profile
// @Failure      401  {object}  response.Err
// @Router       /data/user [get]
// @Security     BearerAuth
func (h *DataHandler) HandleGetUser(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	ctx.JSON(http.StatusOK, user.Profile())
}

// HandleGetLotteryNumber godoc
// @Summary      Get the authenticated user's lottery number
// @Description  The number is null until the user scans a valid lottery-access QR.
// @Tags         data
// @Produce      json
// @Success      200  {object}  response.LotteryNumberResponse
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /data/lottery-number [get]
// @Security     BearerAuth
func (h *DataHandler) HandleGetLotteryNumber(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	number, err := h.lotterySvc.NumberForUser(ctx.Request.Context(), user.ID)
	if err != nil {
		if errors.Is(err, service.ErrLotteryNumberNotFound) {
			ctx.JSON(http.StatusOK, response.LotteryNumberResponse{Number: nil})
			return
		}

		err = fmt.Errorf("v1.HandleGetLotteryNumber -> h.lotterySvc.NumberForUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.LotteryNumberResponse{Number: &number.Number})
}
