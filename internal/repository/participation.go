package repository

import (
	"context"
	"fmt"

	"github.com/techforum/engagement-api/internal/domain"
	"github.com/techforum/engagement-api/internal/repository/dao"
)

var ErrParticipationNotFound = dao.ErrParticipationNotFound

type ParticipationDAO interface {
	InsertIfAbsent(ctx context.Context, p dao.BoothParticipation) (bool, error)
	ListActiveByUser(ctx context.Context, userID uint) ([]dao.BoothParticipation, error)
	CountDistinctActive(ctx context.Context, userID uint) (int, error)
	FindByID(ctx context.Context, id uint) (dao.BoothParticipation, error)
	SoftDelete(ctx context.Context, id uint) error
	SoftDeleteAllForUser(ctx context.Context, userID uint) (int, error)
	CountByBooth(ctx context.Context) ([]dao.BoothStat, error)
	ListDetails(ctx context.Context) ([]dao.ParticipationDetail, error)
	ListEligibleUsers(ctx context.Context, threshold int) ([]dao.EligibleUser, error)
	CountEligibleUsers(ctx context.Context, threshold int) (int, error)
}

type ParticipationRepository struct {
	dao ParticipationDAO
}

func NewParticipationRepository(dao ParticipationDAO) *ParticipationRepository {
	return &ParticipationRepository{
		dao: dao,
	}
}

func (r *ParticipationRepository) RecordIfAbsent(ctx context.Context, p domain.BoothParticipation, qrData string) (bool, error) {
	created, err := r.dao.InsertIfAbsent(ctx, dao.BoothParticipation{
		UserID:    p.UserID,
		BoothCode: p.BoothCode,
		QRData:    qrData,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
	})
	if err != nil {
		return false, fmt.Errorf("r.dao.InsertIfAbsent -> %w", err)
	}

	return created, nil
}

func (r *ParticipationRepository) ListByUser(ctx context.Context, userID uint) ([]domain.BoothParticipation, error) {
	rows, err := r.dao.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListActiveByUser -> %w", err)
	}

	participations := make([]domain.BoothParticipation, len(rows))
	for i, row := range rows {
		participations[i] = r.daoToDomain(row)
	}

	return participations, nil
}

func (r *ParticipationRepository) CountDistinctBooths(ctx context.Context, userID uint) (int, error) {
	count, err := r.dao.CountDistinctActive(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountDistinctActive -> %w", err)
	}

	return count, nil
}

func (r *ParticipationRepository) FindByID(ctx context.Context, id uint) (domain.BoothParticipation, error) {
	row, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.BoothParticipation{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(row), nil
}

func (r *ParticipationRepository) SoftDelete(ctx context.Context, id uint) error {
	if err := r.dao.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.SoftDelete -> %w", err)
	}

	return nil
}

func (r *ParticipationRepository) SoftDeleteAllForUser(ctx context.Context, userID uint) (int, error) {
	deleted, err := r.dao.SoftDeleteAllForUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.SoftDeleteAllForUser -> %w", err)
	}

	return deleted, nil
}

func (r *ParticipationRepository) CountByBooth(ctx context.Context) ([]dao.BoothStat, error) {
	stats, err := r.dao.CountByBooth(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.CountByBooth -> %w", err)
	}

	return stats, nil
}

func (r *ParticipationRepository) ListDetails(ctx context.Context) ([]dao.ParticipationDetail, error) {
	details, err := r.dao.ListDetails(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListDetails -> %w", err)
	}

	return details, nil
}

func (r *ParticipationRepository) ListEligibleUsers(ctx context.Context) ([]dao.EligibleUser, error) {
	eligible, err := r.dao.ListEligibleUsers(ctx, domain.EligibilityThreshold)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListEligibleUsers -> %w", err)
	}

	return eligible, nil
}

func (r *ParticipationRepository) CountEligibleUsers(ctx context.Context) (int, error) {
	count, err := r.dao.CountEligibleUsers(ctx, domain.EligibilityThreshold)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountEligibleUsers -> %w", err)
	}

	return count, nil
}

func (r *ParticipationRepository) daoToDomain(p dao.BoothParticipation) domain.BoothParticipation {
	return domain.BoothParticipation{
		ID:        p.ID,
		UserID:    p.UserID,
		BoothCode: p.BoothCode,
		ScannedAt: p.ScannedAt,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		Deleted:   p.Deleted,
	}
}
