package service

import (
	"context"
	"fmt"

	"github.com/techforum/engagement-api/internal/domain"
)

type SurveyRepository interface {
	Create(ctx context.Context, survey domain.Survey) (domain.Survey, error)
	CountAll(ctx context.Context) (int, error)
	Stats(ctx context.Context) (domain.SurveyStats, error)
	ListAll(ctx context.Context) ([]domain.Survey, error)
}

type SurveyService struct {
	repo SurveyRepository
}

func NewSurveyService(repo SurveyRepository) *SurveyService {
	return &SurveyService{
		repo: repo,
	}
}

func (s *SurveyService) Submit(ctx context.Context, survey domain.Survey) (domain.Survey, error) {
	saved, err := s.repo.Create(ctx, survey)
	if err != nil {
		return domain.Survey{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return saved, nil
}

func (s *SurveyService) Stats(ctx context.Context) (domain.SurveyStats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return domain.SurveyStats{}, fmt.Errorf("s.repo.Stats -> %w", err)
	}

	return stats, nil
}

func (s *SurveyService) List(ctx context.Context) ([]domain.Survey, error) {
	surveys, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListAll -> %w", err)
	}

	return surveys, nil
}
