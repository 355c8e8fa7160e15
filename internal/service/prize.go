package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/techforum/engagement-api/internal/domain"
	"github.com/techforum/engagement-api/internal/repository"
	"github.com/techforum/engagement-api/internal/repository/dao"
)

var ErrNotEligible = errors.New("not eligible for a prize")

// Notifier pushes an event to a user's live session if one is connected.
// Best effort: implementations never block and failures are invisible to
// the caller.
type Notifier interface {
	Notify(userID uint, event domain.ClaimEvent)
}

type PrizeRepository interface {
	RecordIfAbsent(ctx context.Context, userID uint, qrData string) (bool, error)
	FindByUserID(ctx context.Context, userID uint) (domain.PrizeClaim, error)
	ListDetails(ctx context.Context) ([]dao.ClaimDetail, error)
}

type PrizeUserRepository interface {
	FindByTokenSecret(ctx context.Context, secret string) (domain.User, error)
}

type PrizeService struct {
	repo          PrizeRepository
	userRepo      PrizeUserRepository
	participation ParticipationRepository
	codec         GrantCodec
	notifier      Notifier
	now           func() time.Time
}

func NewPrizeService(repo PrizeRepository, userRepo PrizeUserRepository, participation ParticipationRepository, codec GrantCodec, notifier Notifier) *PrizeService {
	return &PrizeService{
		repo:          repo,
		userRepo:      userRepo,
		participation: participation,
		codec:         codec,
		notifier:      notifier,
		now:           time.Now,
	}
}

// NewGrant seals a short-lived prize-claim payload for an eligible user.
// The grant identifies the user through the live token secret, so a
// rotated session kills outstanding grants too.
func (s *PrizeService) NewGrant(ctx context.Context, user domain.User) (string, error) {
	rows, err := s.participation.ListByUser(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("s.participation.ListByUser -> %w", err)
	}
	if len(rows) < domain.EligibilityThreshold {
		return "", ErrNotEligible
	}

	booths := make([]string, len(rows))
	for i, row := range rows {
		booths[i] = row.BoothCode
	}

	sealedData, err := s.codec.Seal(domain.PrizeGrant{
		UserID:      user.ID,
		TokenSecret: user.TokenSecret,
		Timestamp:   s.now().UnixMilli(),
		Booths:      booths,
	})
	if err != nil {
		return "", fmt.Errorf("s.codec.Seal -> %w", err)
	}

	return sealedData, nil
}

// Claim redeems a prize grant scanned at the admin desk. At most one
// claim per user ever exists; redeeming twice reports alreadyClaimed
// instead of failing. The live-session notification is fire-and-forget
// and never fails the claim.
func (s *PrizeService) Claim(ctx context.Context, qrData string) (user domain.User, alreadyClaimed bool, err error) {
	var grant domain.PrizeGrant
	if err = s.codec.Open(qrData, &grant); err != nil {
		return domain.User{}, false, ErrInvalidGrant
	}
	if grant.Expired(s.now()) {
		return domain.User{}, false, ErrGrantExpired
	}

	user, err = s.userRepo.FindByTokenSecret(ctx, grant.TokenSecret)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, false, ErrUserNotFound
		}

		return domain.User{}, false, fmt.Errorf("s.userRepo.FindByTokenSecret -> %w", err)
	}

	created, err := s.repo.RecordIfAbsent(ctx, user.ID, qrData)
	if err != nil {
		return domain.User{}, false, fmt.Errorf("s.repo.RecordIfAbsent -> %w", err)
	}

	if created && s.notifier != nil {
		func() {
			defer func() {
				if r := recover(); r != nil {
					zap.L().Warn("prize claim notification panicked", zap.Any("recover", r))
				}
			}()
			s.notifier.Notify(user.ID, domain.ClaimEvent{
				Type:    "prize_claimed",
				Message: "Your prize has been handed over.",
			})
		}()
	}

	return user, !created, nil
}

func (s *PrizeService) ListDetails(ctx context.Context) ([]dao.ClaimDetail, error) {
	details, err := s.repo.ListDetails(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListDetails -> %w", err)
	}

	return details, nil
}
