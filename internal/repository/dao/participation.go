package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrParticipationNotFound = errors.New("participation not found")

// BoothParticipation is an append-only log with a tombstone bit. There is
// deliberately no unique constraint on (user_id, booth_code): an
// admin-deleted booth must stay re-scannable, so "already recorded" means
// "a non-deleted row exists" and is evaluated inside a transaction.
type BoothParticipation struct {
	ID uint `gorm:"primaryKey"`

	UserID    uint   `gorm:"not null;index"`
	BoothCode string `gorm:"not null"`
	QRData    string
	Latitude  *float64
	Longitude *float64
	Deleted   bool `gorm:"not null;default:false"`

	ScannedAt time.Time `gorm:"not null;autoCreateTime"`
}

// BoothStat is the per-booth scan count shown on the admin dashboard.
type BoothStat struct {
	BoothCode string `json:"booth_code"`
	Count     int    `json:"count"`
}

// ParticipationDetail is the admin list row joined to the scanner.
type ParticipationDetail struct {
	ID        uint      `json:"id"`
	EmpName   string    `json:"empname"`
	DeptName  string    `json:"deptname"`
	PosName   string    `json:"posname"`
	BoothCode string    `json:"booth_code"`
	ScannedAt time.Time `json:"scanned_at"`
}

// EligibleUser is a mobile-voucher candidate with their booth list.
type EligibleUser struct {
	UserID     uint   `json:"user_id"`
	EmpNo      string `json:"empno"`
	EmpName    string `json:"empname"`
	DeptName   string `json:"deptname"`
	PosName    string `json:"posname"`
	BoothCount int    `json:"booth_count"`
	BoothCodes string `json:"booth_codes"`
}

type ParticipationDAO struct {
	db *gorm.DB
}

func NewParticipationDAO(db *gorm.DB) *ParticipationDAO {
	return &ParticipationDAO{
		db: db,
	}
}

// InsertIfAbsent records one scan at most once per (user, booth) among
// non-deleted rows. The check and the insert run in one transaction that
// first locks the user row, so two concurrent scans of the same booth
// serialize there instead of both passing the existence check under
// read-committed isolation. There is no unique constraint to fall back
// on: tombstoned rows must stay re-scannable.
func (d *ParticipationDAO) InsertIfAbsent(ctx context.Context, p BoothParticipation) (created bool, err error) {
	err = d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owner User
		if result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&owner, p.UserID); result.Error != nil {
			return result.Error
		}

		var existing BoothParticipation

		result := tx.First(&existing,
			"user_id = ? AND booth_code = ? AND deleted = false", p.UserID, p.BoothCode)
		if result.Error == nil {
			return nil
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		if result := tx.Create(&p); result.Error != nil {
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

func (d *ParticipationDAO) ListActiveByUser(ctx context.Context, userID uint) ([]BoothParticipation, error) {
	var rows []BoothParticipation

	result := d.db.WithContext(ctx).
		Where("user_id = ? AND deleted = false", userID).
		Order("scanned_at").
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

// CountDistinctActive is the eligibility figure: distinct non-deleted
// booth codes for the user.
func (d *ParticipationDAO) CountDistinctActive(ctx context.Context, userID uint) (int, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&BoothParticipation{}).
		Where("user_id = ? AND deleted = false", userID).
		Distinct("booth_code").
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return int(count), nil
}

func (d *ParticipationDAO) FindByID(ctx context.Context, id uint) (BoothParticipation, error) {
	var row BoothParticipation

	result := d.db.WithContext(ctx).First(&row, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return BoothParticipation{}, ErrParticipationNotFound
		}

		return BoothParticipation{}, result.Error
	}

	return row, nil
}

func (d *ParticipationDAO) SoftDelete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Model(&BoothParticipation{}).
		Where("id = ? AND deleted = false", id).
		Update("deleted", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrParticipationNotFound
	}

	return nil
}

func (d *ParticipationDAO) SoftDeleteAllForUser(ctx context.Context, userID uint) (int, error) {
	result := d.db.WithContext(ctx).Model(&BoothParticipation{}).
		Where("user_id = ? AND deleted = false", userID).
		Update("deleted", true)
	if result.Error != nil {
		return 0, result.Error
	}

	return int(result.RowsAffected), nil
}

func (d *ParticipationDAO) CountByBooth(ctx context.Context) ([]BoothStat, error) {
	var stats []BoothStat

	result := d.db.WithContext(ctx).Model(&BoothParticipation{}).
		Select("booth_code, COUNT(*) AS count").
		Where("deleted = false").
		Group("booth_code").
		Scan(&stats)
	if result.Error != nil {
		return nil, result.Error
	}

	return stats, nil
}

func (d *ParticipationDAO) ListDetails(ctx context.Context) ([]ParticipationDetail, error) {
	var details []ParticipationDetail

	result := d.db.WithContext(ctx).Model(&BoothParticipation{}).
		Select(`booth_participations.id, u.emp_name, u.dept_name, u.pos_name,
			booth_participations.booth_code, booth_participations.scanned_at`).
		Joins("JOIN users u ON u.id = booth_participations.user_id").
		Where("booth_participations.deleted = false AND u.deleted = false").
		Order("booth_participations.scanned_at DESC").
		Scan(&details)
	if result.Error != nil {
		return nil, result.Error
	}

	return details, nil
}

// ListEligibleUsers returns everyone at or above the booth threshold,
// with their booth codes concatenated for the admin view.
func (d *ParticipationDAO) ListEligibleUsers(ctx context.Context, threshold int) ([]EligibleUser, error) {
	var eligible []EligibleUser

	result := d.db.WithContext(ctx).Model(&BoothParticipation{}).
		Select(`booth_participations.user_id, u.emp_no, u.emp_name, u.dept_name, u.pos_name,
			COUNT(DISTINCT booth_participations.booth_code) AS booth_count,
			STRING_AGG(DISTINCT booth_participations.booth_code, ', ') AS booth_codes`).
		Joins("JOIN users u ON u.id = booth_participations.user_id").
		Where("booth_participations.deleted = false AND u.deleted = false").
		Group("booth_participations.user_id, u.emp_no, u.emp_name, u.dept_name, u.pos_name").
		Having("COUNT(DISTINCT booth_participations.booth_code) >= ?", threshold).
		Order("booth_count DESC, u.emp_name ASC").
		Scan(&eligible)
	if result.Error != nil {
		return nil, result.Error
	}

	return eligible, nil
}

func (d *ParticipationDAO) CountEligibleUsers(ctx context.Context, threshold int) (int, error) {
	eligible, err := d.ListEligibleUsers(ctx, threshold)
	if err != nil {
		return 0, err
	}

	return len(eligible), nil
}
