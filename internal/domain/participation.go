package domain

import "time"

// EligibilityThreshold is the number of distinct booths a user must have
// scanned to qualify for the mobile-voucher prize track.
const EligibilityThreshold = 3

type BoothParticipation struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	BoothCode string    `json:"booth_code"`
	ScannedAt time.Time `json:"scanned_at"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	Deleted   bool      `json:"-"`
}

type Eligibility struct {
	Count    int  `json:"count"`
	Eligible bool `json:"eligible"`
}

func NewEligibility(count int) Eligibility {
	return Eligibility{
		Count:    count,
		Eligible: count >= EligibilityThreshold,
	}
}
