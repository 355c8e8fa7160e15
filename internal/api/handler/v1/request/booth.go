package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type BoothScanRequest struct {
	EncryptedData string   `json:"encryptedData"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
}

func (req *BoothScanRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EncryptedData, validation.Required),
		validation.Field(&req.Latitude, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&req.Longitude, validation.Min(-180.0), validation.Max(180.0)),
	)
}

type BoothQRRequest struct {
	BoothCode string `json:"boothCode"`
}

func (req *BoothQRRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.BoothCode, validation.Required, validation.Length(1, 50)),
	)
}
