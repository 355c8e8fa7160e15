package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/techforum/engagement-api/internal/api/handler/v1/request"
	"github.com/techforum/engagement-api/internal/api/handler/v1/response"
	"github.com/techforum/engagement-api/internal/domain"
	"github.com/techforum/engagement-api/internal/pkg/qrimage"
	"github.com/techforum/engagement-api/internal/service"
)

type ParticipationService interface {
	RecordScan(ctx context.Context, userID uint, boothCode, qrData string, lat, lng *float64) (alreadyRecorded bool, err error)
	Eligibility(ctx context.Context, userID uint) (domain.Eligibility, error)
	Participations(ctx context.Context, userID uint) ([]string, domain.Eligibility, error)
}

type PrizeGrantIssuer interface {
	NewGrant(ctx context.Context, user domain.User) (string, error)
}

type PayloadCodec interface {
	Seal(v interface{}) (string, error)
	Open(s string, v interface{}) error
}

type BoothHandler struct {
	svc      ParticipationService
	prizeSvc PrizeGrantIssuer
	codec    PayloadCodec
	baseURL  string
}

func NewBoothHandler(svc ParticipationService, prizeSvc PrizeGrantIssuer, codec PayloadCodec, baseURL string) *BoothHandler {
	return &BoothHandler{
		svc:      svc,
		prizeSvc: prizeSvc,
		codec:    codec,
		baseURL:  baseURL,
	}
}

// HandleScan godoc
// @Summary      Record a booth visit
// @Description  Decodes a booth QR payload and records the visit. Scanning the same booth twice is a no-op reported via alreadyRecorded.
// @Tags         booth
// @Accept       json
// @Produce      json
// @Param        request  body      request.BoothScanRequest  true  "request body"
// @Success      200      {object}  response.ScanResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /booth/scan [post]
// @Security     BearerAuth
func (h *BoothHandler) HandleScan(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.BoothScanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var payload domain.BoothQR
	if err := h.codec.Open(req.EncryptedData, &payload); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid booth QR data")))
		return
	}
	if payload.BoothCode == "" {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid booth QR data")))
		return
	}

	alreadyRecorded, err := h.svc.RecordScan(ctx.Request.Context(), user.ID, payload.BoothCode, req.EncryptedData, req.Latitude, req.Longitude)
	if err != nil {
		err = fmt.Errorf("v1.HandleScan -> h.svc.RecordScan -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	eligibility, err := h.svc.Eligibility(ctx.Request.Context(), user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleScan -> h.svc.Eligibility -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.ScanResponse{
		BoothCode:       payload.BoothCode,
		AlreadyRecorded: alreadyRecorded,
		Eligibility:     eligibility,
	})
}

// HandleParticipations godoc
// @Summary      List the user's booth visits
// @Tags         booth
// @Produce      json
// @Success      200  {object}  response.ParticipationsResponse
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /booth/participation [get]
// @Security     BearerAuth
func (h *BoothHandler) HandleParticipations(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	booths, eligibility, err := h.svc.Participations(ctx.Request.Context(), user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleParticipations -> h.svc.Participations -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.ParticipationsResponse{
		Booths:      booths,
		Eligibility: eligibility,
	})
}

// HandleGenerateQR godoc
// @Summary      Generate a booth QR code
// @Description  Seals a booth code into a reusable QR payload. Booth QRs carry no expiry and stay valid for the whole event.
// @Tags         booth
// @Accept       json
// @Produce      json
// @Param        request  body      request.BoothQRRequest  true  "request body"
// @Success      200      {object}  response.QRResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /booth/generate-qr [post]
// @Security     BearerAuth
func (h *BoothHandler) HandleGenerateQR(ctx *gin.Context) {
	var req request.BoothQRRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	sealedData, err := h.codec.Seal(domain.BoothQR{BoothCode: req.BoothCode})
	if err != nil {
		err = fmt.Errorf("v1.HandleGenerateQR -> h.codec.Seal -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	scanURL := fmt.Sprintf("%s/booth/scan?data=%s", h.baseURL, url.QueryEscape(sealedData))

	image, err := qrimage.DataURL(scanURL)
	if err != nil {
		err = fmt.Errorf("v1.HandleGenerateQR -> qrimage.DataURL -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.QRResponse{
		EncryptedData: sealedData,
		URL:           scanURL,
		QRImage:       image,
	})
}

// HandleGeneratePrizeQR godoc
// @Summary      Generate the user's prize-claim QR
// @Description  Issues a sealed prize grant for an eligible user. The grant expires 60 seconds after issuance; the client regenerates it on demand.
// @Tags         booth
// @Produce      json
// @Success      200  {object}  response.QRResponse
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /booth/generate-prize-qr [post]
// @Security     BearerAuth
func (h *BoothHandler) HandleGeneratePrizeQR(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	sealedData, err := h.prizeSvc.NewGrant(ctx.Request.Context(), user)
	if err != nil {
		if errors.Is(err, service.ErrNotEligible) {
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotEligible))
			return
		}

		err = fmt.Errorf("v1.HandleGeneratePrizeQR -> h.prizeSvc.NewGrant -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	image, err := qrimage.DataURL(sealedData)
	if err != nil {
		err = fmt.Errorf("v1.HandleGeneratePrizeQR -> qrimage.DataURL -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.QRResponse{
		EncryptedData: sealedData,
		QRImage:       image,
	})
}
