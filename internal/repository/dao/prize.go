package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrPrizeClaimNotFound = errors.New("prize claim not found")

type PrizeClaim struct {
	ID uint `gorm:"primaryKey"`

	UserID uint `gorm:"not null;index"`
	QRData string

	ClaimedAt time.Time `gorm:"not null;autoCreateTime"`
}

// ClaimDetail is the admin hand-over log row joined to the recipient.
type ClaimDetail struct {
	EmpName   string    `json:"empname"`
	DeptName  string    `json:"deptname"`
	PosName   string    `json:"posname"`
	ClaimedAt time.Time `json:"claimed_at"`
}

type PrizeDAO struct {
	db *gorm.DB
}

func NewPrizeDAO(db *gorm.DB) *PrizeDAO {
	return &PrizeDAO{
		db: db,
	}
}

// InsertIfAbsent records at most one claim per user. The transaction
// locks the user row before the existence check so two desks redeeming
// the same grant concurrently serialize instead of both inserting under
// read-committed isolation.
func (d *PrizeDAO) InsertIfAbsent(ctx context.Context, claim PrizeClaim) (created bool, err error) {
	err = d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owner User
		if result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&owner, claim.UserID); result.Error != nil {
			return result.Error
		}

		var existing PrizeClaim

		result := tx.First(&existing, "user_id = ?", claim.UserID)
		if result.Error == nil {
			return nil
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		if result := tx.Create(&claim); result.Error != nil {
			return result.Error
		}
		created = true

		return nil
	})
	if err != nil {
		return false, err
	}

	return created, nil
}

func (d *PrizeDAO) FindByUserID(ctx context.Context, userID uint) (PrizeClaim, error) {
	var claim PrizeClaim

	result := d.db.WithContext(ctx).First(&claim, "user_id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return PrizeClaim{}, ErrPrizeClaimNotFound
		}

		return PrizeClaim{}, result.Error
	}

	return claim, nil
}

func (d *PrizeDAO) ListDetails(ctx context.Context) ([]ClaimDetail, error) {
	var details []ClaimDetail

	result := d.db.WithContext(ctx).Model(&PrizeClaim{}).
		Select("u.emp_name, u.dept_name, u.pos_name, prize_claims.claimed_at").
		Joins("JOIN users u ON u.id = prize_claims.user_id").
		Order("prize_claims.claimed_at DESC").
		Scan(&details)
	if result.Error != nil {
		return nil, result.Error
	}

	return details, nil
}
