package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/techforum/engagement-api/internal/domain"
	"github.com/techforum/engagement-api/internal/identity"
	"github.com/techforum/engagement-api/internal/repository"
)

var (
	ErrUserNotFound  = repository.ErrUserNotFound
	ErrAdminNotFound = repository.ErrAdminNotFound

	ErrIdentityRejected    = identity.ErrRejected
	ErrIdentityUnavailable = identity.ErrUnavailable

	ErrInvalidToken     = errors.New("invalid or expired token")
	ErrWrongCredentials = errors.New("wrong credentials")
)

type AuthUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	Update(ctx context.Context, user domain.User) (domain.User, error)
	FindByEmpNo(ctx context.Context, empNo string) (domain.User, error)
	FindByTokenSecret(ctx context.Context, secret string) (domain.User, error)
	FindAdminByUsername(ctx context.Context, username string) (domain.Admin, error)
	FindAdminByID(ctx context.Context, id uint) (domain.Admin, error)
	EnsureAdmin(ctx context.Context, username, passwordHash string) error
}

type IdentityVerifier interface {
	Verify(ctx context.Context, empNo, lastNumber string) (identity.Employee, error)
}

type TokenIssuer interface {
	Issue() (token, secret string, err error)
	Verify(token string) (secret string, err error)
	IssueAdmin(adminID uint) (string, error)
	VerifyAdmin(token string) (adminID uint, err error)
}

type AuthService struct {
	repo     AuthUserRepository
	verifier IdentityVerifier
	tokens   TokenIssuer
}

func NewAuthService(repo AuthUserRepository, verifier IdentityVerifier, tokens TokenIssuer) *AuthService {
	return &AuthService{
		repo:     repo,
		verifier: verifier,
		tokens:   tokens,
	}
}

// Login verifies the employee against the corporate directory, then
// creates the user on first contact or updates the profile on every
// later login. Either way a fresh token secret is stored, which
// invalidates all previously issued tokens for that user.
func (s *AuthService) Login(ctx context.Context, empNo, lastNumber string) (string, domain.User, error) {
	emp, err := s.verifier.Verify(ctx, empNo, lastNumber)
	if err != nil {
		return "", domain.User{}, fmt.Errorf("s.verifier.Verify -> %w", err)
	}

	token, secret, err := s.tokens.Issue()
	if err != nil {
		return "", domain.User{}, fmt.Errorf("s.tokens.Issue -> %w", err)
	}

	user, err := s.repo.FindByEmpNo(ctx, emp.EmpNo)
	switch {
	case err == nil:
		user.EmpName = emp.EmpName
		user.DeptName = emp.DeptName
		user.PosName = emp.PosName
		user.PhoneLast = lastNumber
		user.TokenSecret = secret

		user, err = s.repo.Update(ctx, user)
		if err != nil {
			return "", domain.User{}, fmt.Errorf("s.repo.Update -> %w", err)
		}
	case errors.Is(err, repository.ErrUserNotFound):
		user, err = s.repo.Create(ctx, domain.User{
			EmpNo:       emp.EmpNo,
			EmpName:     emp.EmpName,
			DeptName:    emp.DeptName,
			PosName:     emp.PosName,
			PhoneLast:   lastNumber,
			TokenSecret: secret,
		})
		if err != nil {
			return "", domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
		}
	default:
		return "", domain.User{}, fmt.Errorf("s.repo.FindByEmpNo -> %w", err)
	}

	return token, user, nil
}

// VerifyToken resolves a session token to its user. Expired, tampered
// and rotated-away tokens all come back as ErrInvalidToken.
func (s *AuthService) VerifyToken(ctx context.Context, tokenStr string) (domain.User, error) {
	secret, err := s.tokens.Verify(tokenStr)
	if err != nil {
		return domain.User{}, ErrInvalidToken
	}

	user, err := s.repo.FindByTokenSecret(ctx, secret)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrInvalidToken
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByTokenSecret -> %w", err)
	}

	return user, nil
}

func (s *AuthService) AdminLogin(ctx context.Context, username, password string) (string, domain.Admin, error) {
	admin, err := s.repo.FindAdminByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return "", domain.Admin{}, ErrWrongCredentials
		}

		return "", domain.Admin{}, fmt.Errorf("s.repo.FindAdminByUsername -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", domain.Admin{}, ErrWrongCredentials
	}

	token, err := s.tokens.IssueAdmin(admin.ID)
	if err != nil {
		return "", domain.Admin{}, fmt.Errorf("s.tokens.IssueAdmin -> %w", err)
	}

	return token, admin, nil
}

func (s *AuthService) VerifyAdminToken(ctx context.Context, tokenStr string) (domain.Admin, error) {
	adminID, err := s.tokens.VerifyAdmin(tokenStr)
	if err != nil {
		return domain.Admin{}, ErrInvalidToken
	}

	admin, err := s.repo.FindAdminByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return domain.Admin{}, ErrInvalidToken
		}

		return domain.Admin{}, fmt.Errorf("s.repo.FindAdminByID -> %w", err)
	}

	return admin, nil
}

// EnsureDefaultAdmin seeds the console account on startup.
func (s *AuthService) EnsureDefaultAdmin(ctx context.Context, username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}

	if err = s.repo.EnsureAdmin(ctx, username, string(hash)); err != nil {
		return fmt.Errorf("s.repo.EnsureAdmin -> %w", err)
	}

	return nil
}
