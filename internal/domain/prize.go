package domain

import "time"

type PrizeClaim struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	ClaimedAt time.Time `json:"claimed_at"`
	QRData    string    `json:"-"`
}
