package domain

import "time"

const (
	// LotteryAccessType tags the admin-generated venue QR that unlocks
	// lottery number issuance.
	LotteryAccessType = "lottery_access"

	// DefaultLotteryAccessValidity is how long a lottery-access QR stays
	// scannable when the admin doesn't pick a duration.
	DefaultLotteryAccessValidity = 12 * time.Hour

	// PrizeGrantWindow is the maximum age of a prize-claim QR. The grant
	// is regenerated on the user's screen, so the window can be short.
	PrizeGrantWindow = 60 * time.Second
)

// BoothQR is the static payload inside a booth QR code. Booth QRs are
// reusable for the whole event and carry no expiry.
type BoothQR struct {
	BoothCode string `json:"boothCode"`
}

// LotteryAccessGrant is the time-boxed payload inside the venue-wide
// lottery QR. The nonce is not tracked for single use; expiry is the only
// reuse guard, so many distinct users can scan the same QR before it
// expires. Timestamps are millisecond epochs.
type LotteryAccessGrant struct {
	Type      string `json:"type"`
	IssuedAt  int64  `json:"issuedAt"`
	ExpiresAt int64  `json:"expiresAt"`
	Nonce     string `json:"nonce"`
}

func (g LotteryAccessGrant) Expired(now time.Time) bool {
	return g.ExpiresAt != 0 && now.UnixMilli() > g.ExpiresAt
}

// PrizeGrant is the payload inside a user's prize-claim QR. It resolves
// the user through the live token secret rather than an ID.
type PrizeGrant struct {
	UserID      uint     `json:"userId"`
	TokenSecret string   `json:"tokenSecret"`
	Timestamp   int64    `json:"timestamp"`
	Booths      []string `json:"booths"`
}

func (g PrizeGrant) Expired(now time.Time) bool {
	return now.UnixMilli()-g.Timestamp > PrizeGrantWindow.Milliseconds()
}

// ClaimEvent is pushed over the live websocket when an admin redeems a
// user's prize QR, so the user's own screen reflects the claim at once.
type ClaimEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
