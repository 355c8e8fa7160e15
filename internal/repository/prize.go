package repository

import (
	"context"
	"fmt"

	"github.com/techforum/engagement-api/internal/domain"
	"github.com/techforum/engagement-api/internal/repository/dao"
)

var ErrPrizeClaimNotFound = dao.ErrPrizeClaimNotFound

type PrizeDAO interface {
	InsertIfAbsent(ctx context.Context, claim dao.PrizeClaim) (bool, error)
	FindByUserID(ctx context.Context, userID uint) (dao.PrizeClaim, error)
	ListDetails(ctx context.Context) ([]dao.ClaimDetail, error)
}

type PrizeRepository struct {
	dao PrizeDAO
}

func NewPrizeRepository(dao PrizeDAO) *PrizeRepository {
	return &PrizeRepository{
		dao: dao,
	}
}

func (r *PrizeRepository) RecordIfAbsent(ctx context.Context, userID uint, qrData string) (bool, error) {
	created, err := r.dao.InsertIfAbsent(ctx, dao.PrizeClaim{
		UserID: userID,
		QRData: qrData,
	})
	if err != nil {
		return false, fmt.Errorf("r.dao.InsertIfAbsent -> %w", err)
	}

	return created, nil
}

func (r *PrizeRepository) FindByUserID(ctx context.Context, userID uint) (domain.PrizeClaim, error) {
	claim, err := r.dao.FindByUserID(ctx, userID)
	if err != nil {
		return domain.PrizeClaim{}, fmt.Errorf("r.dao.FindByUserID -> %w", err)
	}

	return domain.PrizeClaim{
		ID:        claim.ID,
		UserID:    claim.UserID,
		ClaimedAt: claim.ClaimedAt,
		QRData:    claim.QRData,
	}, nil
}

func (r *PrizeRepository) ListDetails(ctx context.Context) ([]dao.ClaimDetail, error) {
	details, err := r.dao.ListDetails(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListDetails -> %w", err)
	}

	return details, nil
}
