package service

import (
	"context"
	"fmt"

	"github.com/techforum/engagement-api/internal/domain"
	"github.com/techforum/engagement-api/internal/repository"
	"github.com/techforum/engagement-api/internal/repository/dao"
)

var ErrParticipationNotFound = repository.ErrParticipationNotFound

type ParticipationRepository interface {
	RecordIfAbsent(ctx context.Context, p domain.BoothParticipation, qrData string) (bool, error)
	ListByUser(ctx context.Context, userID uint) ([]domain.BoothParticipation, error)
	CountDistinctBooths(ctx context.Context, userID uint) (int, error)
	FindByID(ctx context.Context, id uint) (domain.BoothParticipation, error)
	SoftDelete(ctx context.Context, id uint) error
	SoftDeleteAllForUser(ctx context.Context, userID uint) (int, error)
	CountByBooth(ctx context.Context) ([]dao.BoothStat, error)
	ListDetails(ctx context.Context) ([]dao.ParticipationDetail, error)
	ListEligibleUsers(ctx context.Context) ([]dao.EligibleUser, error)
	CountEligibleUsers(ctx context.Context) (int, error)
}

type ParticipationService struct {
	repo ParticipationRepository
}

func NewParticipationService(repo ParticipationRepository) *ParticipationService {
	return &ParticipationService{
		repo: repo,
	}
}

// RecordScan credits one booth visit at most once. A repeat scan is not
// an error: the caller learns it was already recorded and nothing
// changes, so clients can retry freely.
func (s *ParticipationService) RecordScan(ctx context.Context, userID uint, boothCode, qrData string, lat, lng *float64) (alreadyRecorded bool, err error) {
	created, err := s.repo.RecordIfAbsent(ctx, domain.BoothParticipation{
		UserID:    userID,
		BoothCode: boothCode,
		Latitude:  lat,
		Longitude: lng,
	}, qrData)
	if err != nil {
		return false, fmt.Errorf("s.repo.RecordIfAbsent -> %w", err)
	}

	return !created, nil
}

// Eligibility recomputes the mobile-voucher qualification on demand.
// Nothing is cached beyond the request.
func (s *ParticipationService) Eligibility(ctx context.Context, userID uint) (domain.Eligibility, error) {
	count, err := s.repo.CountDistinctBooths(ctx, userID)
	if err != nil {
		return domain.Eligibility{}, fmt.Errorf("s.repo.CountDistinctBooths -> %w", err)
	}

	return domain.NewEligibility(count), nil
}

// Participations returns the user's booth codes in scan order plus the
// derived eligibility. Eligibility counts distinct codes, same figure
// Eligibility reports.
func (s *ParticipationService) Participations(ctx context.Context, userID uint) ([]string, domain.Eligibility, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, domain.Eligibility{}, fmt.Errorf("s.repo.ListByUser -> %w", err)
	}

	codes := make([]string, len(rows))
	distinct := make(map[string]struct{}, len(rows))
	for i, row := range rows {
		codes[i] = row.BoothCode
		distinct[row.BoothCode] = struct{}{}
	}

	return codes, domain.NewEligibility(len(distinct)), nil
}

// AdminDelete soft-deletes one participation row and reports whether the
// user dropped below the eligibility threshold because of it. Issued
// lottery numbers and recorded claims are never touched.
func (s *ParticipationService) AdminDelete(ctx context.Context, participationID uint) (newlyIneligible bool, err error) {
	row, err := s.repo.FindByID(ctx, participationID)
	if err != nil {
		return false, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	before, err := s.Eligibility(ctx, row.UserID)
	if err != nil {
		return false, err
	}

	if err = s.repo.SoftDelete(ctx, participationID); err != nil {
		return false, fmt.Errorf("s.repo.SoftDelete -> %w", err)
	}

	after, err := s.Eligibility(ctx, row.UserID)
	if err != nil {
		return false, err
	}

	return before.Eligible && !after.Eligible, nil
}

// AdminDeleteAllForUser clears every participation row for the user.
func (s *ParticipationService) AdminDeleteAllForUser(ctx context.Context, userID uint) (deletedCount int, err error) {
	deletedCount, err = s.repo.SoftDeleteAllForUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("s.repo.SoftDeleteAllForUser -> %w", err)
	}

	return deletedCount, nil
}
