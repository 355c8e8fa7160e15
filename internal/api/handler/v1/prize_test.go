package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techforum/engagement-api/internal/domain"
)

type fakeDrawService struct {
	maxNumber        int
	participantCount int
	ranges           domain.DigitRanges
}

func (f *fakeDrawService) DigitRanges(_ context.Context) (int, int, domain.DigitRanges, error) {
	return f.maxNumber, f.participantCount, f.ranges, nil
}

func (f *fakeDrawService) CheckWinner(_ context.Context, _ int) (*domain.Winner, int, error) {
	return nil, f.participantCount, nil
}

func (f *fakeDrawService) DrawBulk(_ context.Context, _ int) ([]domain.Winner, int, error) {
	return nil, 0, nil
}

type fakeClaimService struct{}

func (f *fakeClaimService) Claim(_ context.Context, _ string) (domain.User, bool, error) {
	return domain.User{}, false, nil
}

func TestHandleDigitRanges_ResponseShape(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewPrizeHandler(&fakeDrawService{
		maxNumber:        150,
		participantCount: 150,
		ranges:           domain.NewDigitRanges(150),
	}, &fakeClaimService{})

	router := gin.New()
	router.GET("/prize/lottery-digits", h.HandleDigitRanges)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/prize/lottery-digits", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		MaxNumber        int  `json:"maxNumber"`
		ParticipantCount int  `json:"participantCount"`
		CanDraw          bool `json:"canDraw"`
		Digits           struct {
			Hundreds []int `json:"hundreds"`
			Tens     []int `json:"tens"`
			Ones     []int `json:"ones"`
		} `json:"digits"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, 150, body.MaxNumber)
	assert.Equal(t, 150, body.ParticipantCount)
	assert.True(t, body.CanDraw)
	assert.Equal(t, []int{0, 1}, body.Digits.Hundreds)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, body.Digits.Tens)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, body.Digits.Ones)
}
