package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type LotteryIssueRequest struct {
	QRData string `json:"qrData"`
}

func (req *LotteryIssueRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.QRData, validation.Required),
	)
}

type LotteryQRRequest struct {
	// ValidMinutes of 0 falls back to the 12-hour default.
	ValidMinutes int `json:"validMinutes"`
}

func (req *LotteryQRRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ValidMinutes, validation.Min(0), validation.Max(24*60)),
	)
}

type CheckWinnerRequest struct {
	DrawnNumber int `json:"drawnNumber"`
}

func (req *CheckWinnerRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.DrawnNumber, validation.Required, validation.Min(1)),
	)
}

type DrawBulkRequest struct {
	Count int `json:"count"`
}

func (req *DrawBulkRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Count, validation.Required, validation.Min(1), validation.Max(1000)),
	)
}
