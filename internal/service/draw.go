package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/techforum/engagement-api/internal/domain"
	"github.com/techforum/engagement-api/internal/repository"
)

var ErrInvalidDrawCount = errors.New("draw count must be at least 1")

// DrawService adjudicates both draw modes over the same eligible pool:
// issued lottery numbers whose holder is not soft-deleted and has no
// recorded prize claim.
type DrawService struct {
	repo LotteryRepository
}

func NewDrawService(repo LotteryRepository) *DrawService {
	return &DrawService{
		repo: repo,
	}
}

// DigitRanges sizes the client's digit wheel to the participant count.
// Display affordance only; CheckWinner stays authoritative.
func (s *DrawService) DigitRanges(ctx context.Context) (maxNumber, participantCount int, ranges domain.DigitRanges, err error) {
	participantCount, maxNumber, err = s.repo.CountAndMax(ctx)
	if err != nil {
		return 0, 0, domain.DigitRanges{}, fmt.Errorf("s.repo.CountAndMax -> %w", err)
	}

	if maxNumber == 0 {
		// Nothing issued yet; show the full three-digit wheel.
		maxNumber = 999
	}

	return maxNumber, participantCount, domain.NewDigitRanges(participantCount), nil
}

// CheckWinner validates a client-drawn number against the ledger. The
// client owns the randomness of the wheel spin; the server only confirms
// or denies. A miss is a normal outcome, not an error.
func (s *DrawService) CheckWinner(ctx context.Context, drawnNumber int) (winner *domain.Winner, participantCount int, err error) {
	participantCount, _, err = s.repo.CountAndMax(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("s.repo.CountAndMax -> %w", err)
	}

	found, err := s.repo.FindWinnerByNumber(ctx, drawnNumber)
	if err != nil {
		if errors.Is(err, repository.ErrLotteryNumberNotFound) {
			return nil, participantCount, nil
		}

		return nil, 0, fmt.Errorf("s.repo.FindWinnerByNumber -> %w", err)
	}

	return &found, participantCount, nil
}

// DrawBulk shuffles the whole eligible pool and returns the first
// min(count, pool size) entries. Runs are independent: nothing marks a
// winner as drawn, so a re-run can re-select earlier winners until a
// prize claim removes them from the pool.
func (s *DrawService) DrawBulk(ctx context.Context, count int) (winners []domain.Winner, availableCount int, err error) {
	if count < 1 {
		return nil, 0, ErrInvalidDrawCount
	}

	pool, err := s.repo.ListEligiblePool(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("s.repo.ListEligiblePool -> %w", err)
	}

	availableCount = len(pool)

	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	if count > availableCount {
		count = availableCount
	}

	return pool[:count], availableCount, nil
}
