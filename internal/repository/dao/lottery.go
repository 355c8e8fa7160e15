package dao

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrLotteryNumberNotFound = errors.New("lottery number not found")

	// ErrNumberTaken reports a lost allocation race: another issuance
	// grabbed the same next number first. Callers retry allocation.
	ErrNumberTaken = errors.New("lottery number already taken")
)

// LotteryNumber rows are created exactly once per user and never updated
// or deleted. Both uniqueness constraints are load-bearing: user_id keeps
// issuance idempotent, number converts a lost allocation race into a
// retryable insert failure instead of a silent duplicate.
type LotteryNumber struct {
	ID uint `gorm:"primaryKey"`

	UserID uint `gorm:"uniqueIndex;not null"`
	Number int  `gorm:"uniqueIndex;not null;column:lottery_number"`

	CreatedAt time.Time `gorm:"not null"`
}

// PoolEntry is a member of the draw-eligible pool: an issued number whose
// holder is not soft-deleted and has not claimed a prize.
type PoolEntry struct {
	UserID   uint   `json:"user_id"`
	EmpNo    string `json:"empno"`
	EmpName  string `json:"empname"`
	DeptName string `json:"deptname"`
	PosName  string `json:"posname"`
	Number   int    `json:"lottery_number"`
}

type LotteryDAO struct {
	db *gorm.DB
}

func NewLotteryDAO(db *gorm.DB) *LotteryDAO {
	return &LotteryDAO{
		db: db,
	}
}

func (d *LotteryDAO) FindByUserID(ctx context.Context, userID uint) (LotteryNumber, error) {
	var row LotteryNumber

	result := d.db.WithContext(ctx).First(&row, "user_id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return LotteryNumber{}, ErrLotteryNumberNotFound
		}

		return LotteryNumber{}, result.Error
	}

	return row, nil
}

// Allocate assigns max(number)+1 to the user inside one transaction.
// A concurrent allocation that wins the same number surfaces as
// ErrNumberTaken via the unique constraint.
func (d *LotteryDAO) Allocate(ctx context.Context, userID uint) (LotteryNumber, error) {
	var row LotteryNumber

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var max *int
		if result := tx.Model(&LotteryNumber{}).
			Select("MAX(lottery_number)").
			Scan(&max); result.Error != nil {
			return result.Error
		}

		next := 1
		if max != nil {
			next = *max + 1
		}

		row = LotteryNumber{
			UserID: userID,
			Number: next,
		}

		return tx.Create(&row).Error
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return LotteryNumber{}, ErrNumberTaken
		}

		return LotteryNumber{}, err
	}

	return row, nil
}

// CountAndMax returns the participant count and the highest issued
// number. Zero values when no number has been issued yet.
func (d *LotteryDAO) CountAndMax(ctx context.Context) (count, max int, err error) {
	var agg struct {
		Count int
		Max   *int
	}

	result := d.db.WithContext(ctx).Model(&LotteryNumber{}).
		Select("COUNT(*) AS count, MAX(lottery_number) AS max").
		Scan(&agg)
	if result.Error != nil {
		return 0, 0, result.Error
	}

	if agg.Max != nil {
		max = *agg.Max
	}

	return agg.Count, max, nil
}

const poolJoin = `JOIN users u ON u.id = lottery_numbers.user_id AND u.deleted = false`

const poolFilter = `NOT EXISTS (SELECT 1 FROM prize_claims pc WHERE pc.user_id = lottery_numbers.user_id)`

// FindPoolEntryByNumber resolves a drawn number within the eligible pool.
func (d *LotteryDAO) FindPoolEntryByNumber(ctx context.Context, number int) (PoolEntry, error) {
	var entry PoolEntry

	result := d.db.WithContext(ctx).Model(&LotteryNumber{}).
		Select("lottery_numbers.user_id, u.emp_no, u.emp_name, u.dept_name, u.pos_name, lottery_numbers.lottery_number AS number").
		Joins(poolJoin).
		Where("lottery_numbers.lottery_number = ?", number).
		Where(poolFilter).
		Scan(&entry)
	if result.Error != nil {
		return PoolEntry{}, result.Error
	}
	if entry.UserID == 0 {
		return PoolEntry{}, ErrLotteryNumberNotFound
	}

	return entry, nil
}

// ListPool returns the whole draw-eligible pool in number order.
func (d *LotteryDAO) ListPool(ctx context.Context) ([]PoolEntry, error) {
	var entries []PoolEntry

	result := d.db.WithContext(ctx).Model(&LotteryNumber{}).
		Select("lottery_numbers.user_id, u.emp_no, u.emp_name, u.dept_name, u.pos_name, lottery_numbers.lottery_number AS number").
		Joins(poolJoin).
		Where(poolFilter).
		Order("lottery_numbers.lottery_number").
		Scan(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}
