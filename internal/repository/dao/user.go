package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrAdminNotFound = errors.New("admin not found")
)

type User struct {
	ID uint `gorm:"primaryKey"`

	EmpNo       string `gorm:"uniqueIndex;not null"`
	EmpName     string `gorm:"not null"`
	DeptName    string
	PosName     string
	PhoneLast   string
	TokenSecret string `gorm:"index"`
	Deleted     bool   `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Admin struct {
	ID uint `gorm:"primaryKey"`

	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
}

// UserStats is the admin list row: profile plus booth count and whether a
// prize was already handed over.
type UserStats struct {
	EmpNo        string    `json:"empno"`
	EmpName      string    `json:"empname"`
	DeptName     string    `json:"deptname"`
	PosName      string    `json:"posname"`
	CreatedAt    time.Time `json:"created_at"`
	BoothCount   int       `json:"booth_count"`
	PrizeClaimed int       `json:"prize_claimed"`
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

func (d *UserDAO) Insert(ctx context.Context, user User) (User, error) {
	result := d.db.WithContext(ctx).Create(&user)
	if result.Error != nil {
		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) Update(ctx context.Context, user User) (User, error) {
	result := d.db.WithContext(ctx).Model(&User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"emp_name":     user.EmpName,
			"dept_name":    user.DeptName,
			"pos_name":     user.PosName,
			"phone_last":   user.PhoneLast,
			"token_secret": user.TokenSecret,
		})
	if result.Error != nil {
		return User{}, result.Error
	}

	return d.FindByID(ctx, user.ID)
}

func (d *UserDAO) FindByID(ctx context.Context, id uint) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByEmpNo(ctx context.Context, empNo string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, "emp_no = ?", empNo)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

// FindByTokenSecret resolves the live session credential. Soft-deleted
// users are invisible here so their tokens stop working immediately.
func (d *UserDAO) FindByTokenSecret(ctx context.Context, secret string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).
		First(&user, "token_secret = ? AND deleted = false", secret)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) CountAll(ctx context.Context) (int, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&User{}).
		Where("deleted = false").
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return int(count), nil
}

func (d *UserDAO) ListWithStats(ctx context.Context) ([]UserStats, error) {
	var rows []UserStats

	result := d.db.WithContext(ctx).Model(&User{}).
		Select(`users.emp_no, users.emp_name, users.dept_name, users.pos_name, users.created_at,
			COUNT(bp.id) AS booth_count,
			(SELECT COUNT(*) FROM prize_claims pc WHERE pc.user_id = users.id) AS prize_claimed`).
		Joins("LEFT JOIN booth_participations bp ON bp.user_id = users.id AND bp.deleted = false").
		Where("users.deleted = false").
		Group("users.id").
		Order("users.created_at DESC").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

func (d *UserDAO) FindAdminByUsername(ctx context.Context, username string) (Admin, error) {
	var admin Admin

	result := d.db.WithContext(ctx).First(&admin, "username = ?", username)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Admin{}, ErrAdminNotFound
		}

		return Admin{}, result.Error
	}

	return admin, nil
}

func (d *UserDAO) FindAdminByID(ctx context.Context, id uint) (Admin, error) {
	var admin Admin

	result := d.db.WithContext(ctx).First(&admin, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Admin{}, ErrAdminNotFound
		}

		return Admin{}, result.Error
	}

	return admin, nil
}

// EnsureAdmin seeds the default console account if no row exists yet.
func (d *UserDAO) EnsureAdmin(ctx context.Context, username, passwordHash string) error {
	admin := Admin{
		Username:     username,
		PasswordHash: passwordHash,
	}

	result := d.db.WithContext(ctx).
		Where("username = ?", username).
		FirstOrCreate(&admin)

	return result.Error
}
