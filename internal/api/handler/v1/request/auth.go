package request

import (
	"errors"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
)

const lastNumberPattern = `^\d{4}$`

var (
	lastNumberExp = regexp.MustCompile(lastNumberPattern)

	errInvalidLastNumber = errors.New("lastNumber must be exactly 4 digits")
)

type LoginRequest struct {
	EmpNo      string `json:"empno"`
	LastNumber string `json:"lastNumber"`
}

func (req *LoginRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.EmpNo, validation.Required, validation.Length(1, 20)),
		validation.Field(&req.LastNumber, validation.Required),
	)
	if err != nil {
		return err
	}

	if !lastNumberExp.MatchString(req.LastNumber) {
		return errInvalidLastNumber
	}

	return nil
}

type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (req *AdminLoginRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Username, validation.Required),
		validation.Field(&req.Password, validation.Required),
	)
}
