package repository

import (
	"context"
	"fmt"

	"github.com/techforum/engagement-api/internal/domain"
	"github.com/techforum/engagement-api/internal/repository/dao"
)

var (
	ErrUserNotFound  = dao.ErrUserNotFound
	ErrAdminNotFound = dao.ErrAdminNotFound
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, error)
	Update(ctx context.Context, user dao.User) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByEmpNo(ctx context.Context, empNo string) (dao.User, error)
	FindByTokenSecret(ctx context.Context, secret string) (dao.User, error)
	CountAll(ctx context.Context) (int, error)
	ListWithStats(ctx context.Context) ([]dao.UserStats, error)
	FindAdminByUsername(ctx context.Context, username string) (dao.Admin, error)
	FindAdminByID(ctx context.Context, id uint) (dao.Admin, error)
	EnsureAdmin(ctx context.Context, username, passwordHash string) error
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(user))
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *UserRepository) Update(ctx context.Context, user domain.User) (domain.User, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(user))
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByEmpNo(ctx context.Context, empNo string) (domain.User, error) {
	found, err := r.dao.FindByEmpNo(ctx, empNo)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByEmpNo -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByTokenSecret(ctx context.Context, secret string) (domain.User, error) {
	found, err := r.dao.FindByTokenSecret(ctx, secret)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByTokenSecret -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) CountAll(ctx context.Context) (int, error) {
	count, err := r.dao.CountAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountAll -> %w", err)
	}

	return count, nil
}

func (r *UserRepository) ListWithStats(ctx context.Context) ([]dao.UserStats, error) {
	stats, err := r.dao.ListWithStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListWithStats -> %w", err)
	}

	return stats, nil
}

func (r *UserRepository) FindAdminByUsername(ctx context.Context, username string) (domain.Admin, error) {
	found, err := r.dao.FindAdminByUsername(ctx, username)
	if err != nil {
		return domain.Admin{}, fmt.Errorf("r.dao.FindAdminByUsername -> %w", err)
	}

	return r.adminDaoToDomain(found), nil
}

func (r *UserRepository) FindAdminByID(ctx context.Context, id uint) (domain.Admin, error) {
	found, err := r.dao.FindAdminByID(ctx, id)
	if err != nil {
		return domain.Admin{}, fmt.Errorf("r.dao.FindAdminByID -> %w", err)
	}

	return r.adminDaoToDomain(found), nil
}

func (r *UserRepository) EnsureAdmin(ctx context.Context, username, passwordHash string) error {
	if err := r.dao.EnsureAdmin(ctx, username, passwordHash); err != nil {
		return fmt.Errorf("r.dao.EnsureAdmin -> %w", err)
	}

	return nil
}

func (r *UserRepository) domainToDao(u domain.User) dao.User {
	return dao.User{
		ID:          u.ID,
		EmpNo:       u.EmpNo,
		EmpName:     u.EmpName,
		DeptName:    u.DeptName,
		PosName:     u.PosName,
		PhoneLast:   u.PhoneLast,
		TokenSecret: u.TokenSecret,
		Deleted:     u.Deleted,
	}
}

func (r *UserRepository) daoToDomain(u dao.User) domain.User {
	return domain.User{
		ID:          u.ID,
		EmpNo:       u.EmpNo,
		EmpName:     u.EmpName,
		DeptName:    u.DeptName,
		PosName:     u.PosName,
		PhoneLast:   u.PhoneLast,
		TokenSecret: u.TokenSecret,
		Deleted:     u.Deleted,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func (r *UserRepository) adminDaoToDomain(a dao.Admin) domain.Admin {
	return domain.Admin{
		ID:           a.ID,
		Username:     a.Username,
		PasswordHash: a.PasswordHash,
		CreatedAt:    a.CreatedAt,
	}
}
