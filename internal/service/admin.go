package service

import (
	"context"
	"fmt"

	"github.com/techforum/engagement-api/internal/repository/dao"
)

type AdminUserRepository interface {
	CountAll(ctx context.Context) (int, error)
	ListWithStats(ctx context.Context) ([]dao.UserStats, error)
}

type AdminLotteryRepository interface {
	CountAndMax(ctx context.Context) (count, max int, err error)
}

// Dashboard is the admin console summary card.
type Dashboard struct {
	TotalUsers    int             `json:"totalUsers"`
	EligibleUsers int             `json:"eligibleUsers"`
	IssuedNumbers int             `json:"issuedNumbers"`
	TotalSurveys  int             `json:"totalSurveys"`
	BoothStats    []dao.BoothStat `json:"boothStats"`
}

// AdminService aggregates read models for the admin console. Writes
// (participation deletes, prize claims, draws) stay with their owning
// services.
type AdminService struct {
	userRepo      AdminUserRepository
	participation ParticipationRepository
	lotteryRepo   AdminLotteryRepository
	surveyRepo    SurveyRepository
}

func NewAdminService(userRepo AdminUserRepository, participation ParticipationRepository, lotteryRepo AdminLotteryRepository, surveyRepo SurveyRepository) *AdminService {
	return &AdminService{
		userRepo:      userRepo,
		participation: participation,
		lotteryRepo:   lotteryRepo,
		surveyRepo:    surveyRepo,
	}
}

func (s *AdminService) Dashboard(ctx context.Context) (Dashboard, error) {
	totalUsers, err := s.userRepo.CountAll(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("s.userRepo.CountAll -> %w", err)
	}

	eligible, err := s.participation.CountEligibleUsers(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("s.participation.CountEligibleUsers -> %w", err)
	}

	issued, _, err := s.lotteryRepo.CountAndMax(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("s.lotteryRepo.CountAndMax -> %w", err)
	}

	totalSurveys, err := s.surveyRepo.CountAll(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("s.surveyRepo.CountAll -> %w", err)
	}

	boothStats, err := s.participation.CountByBooth(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("s.participation.CountByBooth -> %w", err)
	}

	return Dashboard{
		TotalUsers:    totalUsers,
		EligibleUsers: eligible,
		IssuedNumbers: issued,
		TotalSurveys:  totalSurveys,
		BoothStats:    boothStats,
	}, nil
}

func (s *AdminService) ListUsers(ctx context.Context) ([]dao.UserStats, error) {
	users, err := s.userRepo.ListWithStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.userRepo.ListWithStats -> %w", err)
	}

	return users, nil
}

func (s *AdminService) ListParticipations(ctx context.Context) ([]dao.ParticipationDetail, error) {
	details, err := s.participation.ListDetails(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.participation.ListDetails -> %w", err)
	}

	return details, nil
}

func (s *AdminService) ListEligibleUsers(ctx context.Context) ([]dao.EligibleUser, error) {
	users, err := s.participation.ListEligibleUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.participation.ListEligibleUsers -> %w", err)
	}

	return users, nil
}
