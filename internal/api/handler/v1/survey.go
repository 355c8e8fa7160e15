package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/techforum/engagement-api/internal/api/handler/v1/request"
	"github.com/techforum/engagement-api/internal/api/handler/v1/response"
	"github.com/techforum/engagement-api/internal/domain"
	"github.com/techforum/engagement-api/internal/pkg/qrimage"
)

type SurveyService interface {
	Submit(ctx context.Context, survey domain.Survey) (domain.Survey, error)
	Stats(ctx context.Context) (domain.SurveyStats, error)
	List(ctx context.Context) ([]domain.Survey, error)
}

type SurveyHandler struct {
	svc     SurveyService
	baseURL string
}

func NewSurveyHandler(svc SurveyService, baseURL string) *SurveyHandler {
	return &SurveyHandler{
		svc:     svc,
		baseURL: baseURL,
	}
}

// HandleSubmit godoc
// @Summary      Submit a satisfaction survey
// @Tags         survey
// @Accept       json
// @Produce      json
// @Param        request  body      request.SurveySubmitRequest  true  "request body"
// @Success      201      {object}  domain.Survey
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /survey/submit [post]
func (h *SurveyHandler) HandleSubmit(ctx *gin.Context) {
	var req request.SurveySubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	survey, err := h.svc.Submit(ctx.Request.Context(), domain.Survey{
		OverallSatisfaction: req.OverallSatisfaction,
		BoothSatisfaction:   req.BoothSatisfaction,
		SessionSatisfaction: req.SessionSatisfaction,
		WebsiteSatisfaction: req.WebsiteSatisfaction,
		PrizeSatisfaction:   req.PrizeSatisfaction,
		SatisfiedPoints:     req.SatisfiedPoints,
		ImprovementPoints:   req.ImprovementPoints,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleSubmit -> h.svc.Submit -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, survey)
}

// HandleGenerateQR godoc
// @Summary      Generate the survey QR code
// @Tags         survey
// @Produce      json
// @Success      200  {object}  response.QRResponse
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /survey/generate-qr [post]
// @Security     BearerAuth
func (h *SurveyHandler) HandleGenerateQR(ctx *gin.Context) {
	surveyURL := fmt.Sprintf("%s/survey", h.baseURL)

	image, err := qrimage.DataURL(surveyURL)
	if err != nil {
		err = fmt.Errorf("v1.HandleGenerateQR -> qrimage.DataURL -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.QRResponse{
		URL:     surveyURL,
		QRImage: image,
	})
}

// HandleStats godoc
// @Summary      Get survey averages
// @Tags         survey
// @Produce      json
// @Success      200  {object}  domain.SurveyStats
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/survey-stats [get]
// @Security     BearerAuth
func (h *SurveyHandler) HandleStats(ctx *gin.Context) {
	stats, err := h.svc.Stats(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleStats -> h.svc.Stats -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, stats)
}

// HandleList godoc
// @Summary      List all survey submissions
// @Tags         survey
// @Produce      json
// @Success      200  {array}   domain.Survey
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/surveys [get]
// @Security     BearerAuth
func (h *SurveyHandler) HandleList(ctx *gin.Context) {
	surveys, err := h.svc.List(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleList -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, surveys)
}
