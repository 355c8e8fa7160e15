package repository

import (
	"context"
	"fmt"

	"github.com/techforum/engagement-api/internal/domain"
	"github.com/techforum/engagement-api/internal/repository/dao"
)

var (
	ErrLotteryNumberNotFound = dao.ErrLotteryNumberNotFound
	ErrNumberTaken           = dao.ErrNumberTaken
)

type LotteryDAO interface {
	FindByUserID(ctx context.Context, userID uint) (dao.LotteryNumber, error)
	Allocate(ctx context.Context, userID uint) (dao.LotteryNumber, error)
	CountAndMax(ctx context.Context) (int, int, error)
	FindPoolEntryByNumber(ctx context.Context, number int) (dao.PoolEntry, error)
	ListPool(ctx context.Context) ([]dao.PoolEntry, error)
}

type LotteryRepository struct {
	dao LotteryDAO
}

func NewLotteryRepository(dao LotteryDAO) *LotteryRepository {
	return &LotteryRepository{
		dao: dao,
	}
}

func (r *LotteryRepository) FindByUserID(ctx context.Context, userID uint) (domain.LotteryNumber, error) {
	row, err := r.dao.FindByUserID(ctx, userID)
	if err != nil {
		return domain.LotteryNumber{}, fmt.Errorf("r.dao.FindByUserID -> %w", err)
	}

	return r.daoToDomain(row), nil
}

func (r *LotteryRepository) Allocate(ctx context.Context, userID uint) (domain.LotteryNumber, error) {
	row, err := r.dao.Allocate(ctx, userID)
	if err != nil {
		return domain.LotteryNumber{}, fmt.Errorf("r.dao.Allocate -> %w", err)
	}

	return r.daoToDomain(row), nil
}

func (r *LotteryRepository) CountAndMax(ctx context.Context) (count, max int, err error) {
	count, max, err = r.dao.CountAndMax(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("r.dao.CountAndMax -> %w", err)
	}

	return count, max, nil
}

func (r *LotteryRepository) FindWinnerByNumber(ctx context.Context, number int) (domain.Winner, error) {
	entry, err := r.dao.FindPoolEntryByNumber(ctx, number)
	if err != nil {
		return domain.Winner{}, fmt.Errorf("r.dao.FindPoolEntryByNumber -> %w", err)
	}

	return r.entryToWinner(entry), nil
}

func (r *LotteryRepository) ListEligiblePool(ctx context.Context) ([]domain.Winner, error) {
	entries, err := r.dao.ListPool(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListPool -> %w", err)
	}

	pool := make([]domain.Winner, len(entries))
	for i, entry := range entries {
		pool[i] = r.entryToWinner(entry)
	}

	return pool, nil
}

func (r *LotteryRepository) daoToDomain(row dao.LotteryNumber) domain.LotteryNumber {
	return domain.LotteryNumber{
		ID:        row.ID,
		UserID:    row.UserID,
		Number:    row.Number,
		CreatedAt: row.CreatedAt,
	}
}

func (r *LotteryRepository) entryToWinner(entry dao.PoolEntry) domain.Winner {
	return domain.Winner{
		EmpNo:    entry.EmpNo,
		EmpName:  entry.EmpName,
		DeptName: entry.DeptName,
		PosName:  entry.PosName,
		Number:   entry.Number,
	}
}
