package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/techforum/engagement-api/internal/domain"
	"github.com/techforum/engagement-api/internal/repository"
)

var (
	ErrLotteryNumberNotFound = repository.ErrLotteryNumberNotFound

	ErrInvalidGrant = errors.New("invalid grant payload")
	ErrGrantExpired = errors.New("grant has expired")
)

// allocateRetries bounds how often a lost max+1 race is retried before
// the error surfaces.
const allocateRetries = 3

type GrantCodec interface {
	Seal(v interface{}) (string, error)
	Open(s string, v interface{}) error
}

type LotteryRepository interface {
	FindByUserID(ctx context.Context, userID uint) (domain.LotteryNumber, error)
	Allocate(ctx context.Context, userID uint) (domain.LotteryNumber, error)
	CountAndMax(ctx context.Context) (count, max int, err error)
	FindWinnerByNumber(ctx context.Context, number int) (domain.Winner, error)
	ListEligiblePool(ctx context.Context) ([]domain.Winner, error)
}

type LotteryService struct {
	repo  LotteryRepository
	codec GrantCodec
	now   func() time.Time
}

func NewLotteryService(repo LotteryRepository, codec GrantCodec) *LotteryService {
	return &LotteryService{
		repo:  repo,
		codec: codec,
		now:   time.Now,
	}
}

// Issue assigns the user their lottery number on first valid scan of the
// venue QR and returns the same number on every later scan. Per user
// the transition NoNumber -> Issued happens once and is terminal.
func (s *LotteryService) Issue(ctx context.Context, userID uint, qrData string) (number domain.LotteryNumber, alreadyIssued bool, err error) {
	var grant domain.LotteryAccessGrant
	if err = s.codec.Open(qrData, &grant); err != nil {
		return domain.LotteryNumber{}, false, ErrInvalidGrant
	}
	if grant.Type != domain.LotteryAccessType {
		return domain.LotteryNumber{}, false, ErrInvalidGrant
	}
	if grant.Expired(s.now()) {
		return domain.LotteryNumber{}, false, ErrGrantExpired
	}

	existing, err := s.repo.FindByUserID(ctx, userID)
	if err == nil {
		return existing, true, nil
	}
	if !errors.Is(err, repository.ErrLotteryNumberNotFound) {
		return domain.LotteryNumber{}, false, fmt.Errorf("s.repo.FindByUserID -> %w", err)
	}

	for attempt := 0; attempt < allocateRetries; attempt++ {
		number, err = s.repo.Allocate(ctx, userID)
		if err == nil {
			return number, false, nil
		}
		if !errors.Is(err, repository.ErrNumberTaken) {
			break
		}
		// Lost the max+1 race to a concurrent issuance; take the next slot.
	}

	return domain.LotteryNumber{}, false, fmt.Errorf("s.repo.Allocate -> %w", err)
}

// NumberForUser returns the user's number, or NotFound if none was
// issued yet.
func (s *LotteryService) NumberForUser(ctx context.Context, userID uint) (domain.LotteryNumber, error) {
	number, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return domain.LotteryNumber{}, fmt.Errorf("s.repo.FindByUserID -> %w", err)
	}

	return number, nil
}

// NewAccessGrant builds a sealed, time-boxed lottery-access payload for
// the admin's venue QR. The nonce distinguishes generations; it is not
// tracked for single use, expiry is the only reuse guard.
func (s *LotteryService) NewAccessGrant(validMinutes int) (domain.LotteryAccessGrant, string, error) {
	validity := domain.DefaultLotteryAccessValidity
	if validMinutes > 0 {
		validity = time.Duration(validMinutes) * time.Minute
	}

	now := s.now()
	grant := domain.LotteryAccessGrant{
		Type:      domain.LotteryAccessType,
		IssuedAt:  now.UnixMilli(),
		ExpiresAt: now.Add(validity).UnixMilli(),
		Nonce:     uuid.NewString(),
	}

	sealedData, err := s.codec.Seal(grant)
	if err != nil {
		return domain.LotteryAccessGrant{}, "", fmt.Errorf("s.codec.Seal -> %w", err)
	}

	return grant, sealedData, nil
}
