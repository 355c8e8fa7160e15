package response

import (
	"github.com/techforum/engagement-api/internal/domain"
)

type LoginResponse struct {
	Token string         `json:"token"`
	User  domain.Profile `json:"user"`
}

type AdminLoginResponse struct {
	Token string `json:"token"`
}

type ScanResponse struct {
	BoothCode       string             `json:"boothCode"`
	AlreadyRecorded bool               `json:"alreadyRecorded"`
	Eligibility     domain.Eligibility `json:"eligibility"`
}

type ParticipationsResponse struct {
	Booths      []string           `json:"booths"`
	Eligibility domain.Eligibility `json:"eligibility"`
}

type QRResponse struct {
	EncryptedData string `json:"encryptedData"`
	URL           string `json:"url,omitempty"`
	QRImage       string `json:"qrImage"`
}

type LotteryQRResponse struct {
	EncryptedData string `json:"encryptedData"`
	QRImage       string `json:"qrImage"`
	IssuedAt      int64  `json:"issuedAt"`
	ExpiresAt     int64  `json:"expiresAt"`
}

type LotteryIssueResponse struct {
	Number        int  `json:"number"`
	AlreadyIssued bool `json:"alreadyIssued"`
}

type LotteryNumberResponse struct {
	Number *int `json:"number"`
}

type DigitRangesResponse struct {
	MaxNumber        int                `json:"maxNumber"`
	ParticipantCount int                `json:"participantCount"`
	CanDraw          bool               `json:"canDraw"`
	Digits           domain.DigitRanges `json:"digits"`
}

type CheckWinnerResponse struct {
	Winner           *domain.Winner `json:"winner"`
	ParticipantCount int            `json:"participantCount"`
}

type DrawBulkResponse struct {
	Winners        []domain.Winner `json:"winners"`
	AvailableCount int             `json:"availableCount"`
}

type ClaimResponse struct {
	User           domain.Profile `json:"user"`
	AlreadyClaimed bool           `json:"alreadyClaimed"`
}

type DeleteParticipationResponse struct {
	Deleted         bool `json:"deleted"`
	NewlyIneligible bool `json:"newlyIneligible"`
}

type DeleteAllParticipationsResponse struct {
	DeletedCount int `json:"deletedCount"`
}
