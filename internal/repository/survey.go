package repository

import (
	"context"
	"fmt"

	"github.com/techforum/engagement-api/internal/domain"
	"github.com/techforum/engagement-api/internal/repository/dao"
)

type SurveyDAO interface {
	Insert(ctx context.Context, survey dao.Survey) (dao.Survey, error)
	CountAll(ctx context.Context) (int, error)
	Stats(ctx context.Context) (dao.SurveyStats, error)
	ListAll(ctx context.Context) ([]dao.Survey, error)
}

type SurveyRepository struct {
	dao SurveyDAO
}

func NewSurveyRepository(dao SurveyDAO) *SurveyRepository {
	return &SurveyRepository{
		dao: dao,
	}
}

func (r *SurveyRepository) Create(ctx context.Context, survey domain.Survey) (domain.Survey, error) {
	created, err := r.dao.Insert(ctx, dao.Survey{
		OverallSatisfaction: survey.OverallSatisfaction,
		BoothSatisfaction:   survey.BoothSatisfaction,
		SessionSatisfaction: survey.SessionSatisfaction,
		WebsiteSatisfaction: survey.WebsiteSatisfaction,
		PrizeSatisfaction:   survey.PrizeSatisfaction,
		SatisfiedPoints:     survey.SatisfiedPoints,
		ImprovementPoints:   survey.ImprovementPoints,
	})
	if err != nil {
		return domain.Survey{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *SurveyRepository) CountAll(ctx context.Context) (int, error) {
	count, err := r.dao.CountAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountAll -> %w", err)
	}

	return count, nil
}

func (r *SurveyRepository) Stats(ctx context.Context) (domain.SurveyStats, error) {
	stats, err := r.dao.Stats(ctx)
	if err != nil {
		return domain.SurveyStats{}, fmt.Errorf("r.dao.Stats -> %w", err)
	}

	return domain.SurveyStats{
		AvgOverall: stats.AvgOverall,
		AvgBooth:   stats.AvgBooth,
		AvgSession: stats.AvgSession,
		AvgWebsite: stats.AvgWebsite,
		AvgPrize:   stats.AvgPrize,
		Count:      stats.Count,
	}, nil
}

func (r *SurveyRepository) ListAll(ctx context.Context) ([]domain.Survey, error) {
	rows, err := r.dao.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListAll -> %w", err)
	}

	surveys := make([]domain.Survey, len(rows))
	for i, row := range rows {
		surveys[i] = r.daoToDomain(row)
	}

	return surveys, nil
}

func (r *SurveyRepository) daoToDomain(s dao.Survey) domain.Survey {
	return domain.Survey{
		ID:                  s.ID,
		OverallSatisfaction: s.OverallSatisfaction,
		BoothSatisfaction:   s.BoothSatisfaction,
		SessionSatisfaction: s.SessionSatisfaction,
		WebsiteSatisfaction: s.WebsiteSatisfaction,
		PrizeSatisfaction:   s.PrizeSatisfaction,
		SatisfiedPoints:     s.SatisfiedPoints,
		ImprovementPoints:   s.ImprovementPoints,
		SubmittedAt:         s.SubmittedAt,
	}
}
