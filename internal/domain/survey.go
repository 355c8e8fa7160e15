package domain

import "time"

// Survey is a free-standing satisfaction record. It is not tied to booth
// participation or lottery eligibility.
type Survey struct {
	ID                  uint      `json:"id"`
	OverallSatisfaction int       `json:"overall_satisfaction"`
	BoothSatisfaction   int       `json:"booth_satisfaction"`
	SessionSatisfaction int       `json:"session_satisfaction"`
	WebsiteSatisfaction int       `json:"website_satisfaction"`
	PrizeSatisfaction   int       `json:"prize_satisfaction"`
	SatisfiedPoints     string    `json:"satisfied_points"`
	ImprovementPoints   string    `json:"improvement_points"`
	SubmittedAt         time.Time `json:"submitted_at"`
}

type SurveyStats struct {
	AvgOverall float64 `json:"avg_overall"`
	AvgBooth   float64 `json:"avg_booth"`
	AvgSession float64 `json:"avg_session"`
	AvgWebsite float64 `json:"avg_website"`
	AvgPrize   float64 `json:"avg_prize"`
	Count      int     `json:"count"`
}
