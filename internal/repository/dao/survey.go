package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Survey struct {
	ID uint `gorm:"primaryKey"`

	OverallSatisfaction int `gorm:"not null"`
	BoothSatisfaction   int `gorm:"not null"`
	SessionSatisfaction int `gorm:"not null"`
	WebsiteSatisfaction int `gorm:"not null"`
	PrizeSatisfaction   int `gorm:"not null"`
	SatisfiedPoints     string
	ImprovementPoints   string

	SubmittedAt time.Time `gorm:"not null;autoCreateTime"`
}

type SurveyStats struct {
	AvgOverall float64
	AvgBooth   float64
	AvgSession float64
	AvgWebsite float64
	AvgPrize   float64
	Count      int
}

type SurveyDAO struct {
	db *gorm.DB
}

func NewSurveyDAO(db *gorm.DB) *SurveyDAO {
	return &SurveyDAO{
		db: db,
	}
}

func (d *SurveyDAO) Insert(ctx context.Context, survey Survey) (Survey, error) {
	result := d.db.WithContext(ctx).Create(&survey)
	if result.Error != nil {
		return Survey{}, result.Error
	}

	return survey, nil
}

func (d *SurveyDAO) CountAll(ctx context.Context) (int, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Survey{}).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return int(count), nil
}

func (d *SurveyDAO) Stats(ctx context.Context) (SurveyStats, error) {
	var stats SurveyStats

	result := d.db.WithContext(ctx).Model(&Survey{}).
		Select(`COALESCE(AVG(overall_satisfaction), 0) AS avg_overall,
			COALESCE(AVG(booth_satisfaction), 0) AS avg_booth,
			COALESCE(AVG(session_satisfaction), 0) AS avg_session,
			COALESCE(AVG(website_satisfaction), 0) AS avg_website,
			COALESCE(AVG(prize_satisfaction), 0) AS avg_prize,
			COUNT(*) AS count`).
		Scan(&stats)
	if result.Error != nil {
		return SurveyStats{}, result.Error
	}

	return stats, nil
}

func (d *SurveyDAO) ListAll(ctx context.Context) ([]Survey, error) {
	var surveys []Survey

	result := d.db.WithContext(ctx).
		Order("submitted_at DESC").
		Find(&surveys)
	if result.Error != nil {
		return nil, result.Error
	}

	return surveys, nil
}
