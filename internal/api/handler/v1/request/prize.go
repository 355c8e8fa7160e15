package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type PrizeClaimRequest struct {
	EncryptedData string `json:"encryptedData"`
}

func (req *PrizeClaimRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EncryptedData, validation.Required),
	)
}
