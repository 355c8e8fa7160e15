package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type SurveySubmitRequest struct {
	OverallSatisfaction int    `json:"overallSatisfaction"`
	BoothSatisfaction   int    `json:"boothSatisfaction"`
	SessionSatisfaction int    `json:"sessionSatisfaction"`
	WebsiteSatisfaction int    `json:"websiteSatisfaction"`
	PrizeSatisfaction   int    `json:"prizeSatisfaction"`
	SatisfiedPoints     string `json:"satisfiedPoints"`
	ImprovementPoints   string `json:"improvementPoints"`
}

func (req *SurveySubmitRequest) Validate() error {
	likert := []validation.Rule{validation.Required, validation.Min(1), validation.Max(5)}

	return validation.ValidateStruct(
		req,
		validation.Field(&req.OverallSatisfaction, likert...),
		validation.Field(&req.BoothSatisfaction, likert...),
		validation.Field(&req.SessionSatisfaction, likert...),
		validation.Field(&req.WebsiteSatisfaction, likert...),
		validation.Field(&req.PrizeSatisfaction, likert...),
		validation.Field(&req.SatisfiedPoints, validation.Length(0, 2000)),
		validation.Field(&req.ImprovementPoints, validation.Length(0, 2000)),
	)
}
