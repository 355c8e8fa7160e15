package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techforum/engagement-api/internal/domain"
)

func poolOf(numbers ...int) []domain.Winner {
	pool := make([]domain.Winner, len(numbers))
	for i, n := range numbers {
		pool[i] = domain.Winner{
			EmpNo:   "E" + string(rune('0'+n)),
			EmpName: "Employee",
			Number:  n,
		}
	}

	return pool
}

func TestCheckWinner_Hit(t *testing.T) {
	repo := newFakeLotteryRepo()
	repo.numbers[1] = domain.LotteryNumber{UserID: 1, Number: 1}
	repo.numbers[2] = domain.LotteryNumber{UserID: 2, Number: 2}
	repo.pool = poolOf(1, 2)
	svc := NewDrawService(repo)

	winner, count, err := svc.CheckWinner(context.Background(), 2)
	require.NoError(t, err)
	require.NotNil(t, winner)
	assert.Equal(t, 2, winner.Number)
	assert.Equal(t, 2, count)
}

func TestCheckWinner_Miss(t *testing.T) {
	repo := newFakeLotteryRepo()
	repo.numbers[1] = domain.LotteryNumber{UserID: 1, Number: 1}
	repo.pool = poolOf(1)
	svc := NewDrawService(repo)

	// No matching number, including numbers outside the issued range.
	for _, n := range []int{2, 500, 999} {
		winner, count, err := svc.CheckWinner(context.Background(), n)
		require.NoError(t, err)
		assert.Nil(t, winner)
		assert.Equal(t, 1, count)
	}
}

func TestCheckWinner_ClaimedHolderIsAMiss(t *testing.T) {
	repo := newFakeLotteryRepo()
	repo.numbers[1] = domain.LotteryNumber{UserID: 1, Number: 1}
	repo.numbers[2] = domain.LotteryNumber{UserID: 2, Number: 2}
	// User 2 already claimed, so the eligible pool only holds number 1.
	repo.pool = poolOf(1)
	svc := NewDrawService(repo)

	winner, _, err := svc.CheckWinner(context.Background(), 2)
	require.NoError(t, err)
	assert.Nil(t, winner)
}

func TestDrawBulk_PoolBounds(t *testing.T) {
	repo := newFakeLotteryRepo()
	repo.pool = poolOf(1, 2, 3, 4, 5)
	svc := NewDrawService(repo)

	winners, available, err := svc.DrawBulk(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 5, available)
	assert.Len(t, winners, 3)

	// Every winner must come from the eligible pool, without repeats.
	seen := map[int]bool{}
	for _, w := range winners {
		assert.GreaterOrEqual(t, w.Number, 1)
		assert.LessOrEqual(t, w.Number, 5)
		assert.False(t, seen[w.Number])
		seen[w.Number] = true
	}
}

func TestDrawBulk_CountExceedsPool(t *testing.T) {
	repo := newFakeLotteryRepo()
	repo.pool = poolOf(1, 2)
	svc := NewDrawService(repo)

	winners, available, err := svc.DrawBulk(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 2, available)
	assert.Len(t, winners, 2)
}

func TestDrawBulk_EmptyPool(t *testing.T) {
	svc := NewDrawService(newFakeLotteryRepo())

	winners, available, err := svc.DrawBulk(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 0, available)
	assert.Empty(t, winners)
}

func TestDrawBulk_InvalidCount(t *testing.T) {
	svc := NewDrawService(newFakeLotteryRepo())

	_, _, err := svc.DrawBulk(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidDrawCount)
}

func TestDigitRanges_SmallEvent(t *testing.T) {
	repo := newFakeLotteryRepo()
	for i := uint(1); i <= 150; i++ {
		repo.numbers[i] = domain.LotteryNumber{UserID: i, Number: int(i)}
	}
	svc := NewDrawService(repo)

	maxNumber, count, ranges, err := svc.DigitRanges(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 150, maxNumber)
	assert.Equal(t, 150, count)
	assert.Equal(t, []int{0, 1}, ranges.Hundreds)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, ranges.Tens)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, ranges.Ones)
}

func TestDigitRanges_LargeEvent(t *testing.T) {
	repo := newFakeLotteryRepo()
	for i := uint(1); i <= 200; i++ {
		repo.numbers[i] = domain.LotteryNumber{UserID: i, Number: int(i)}
	}
	svc := NewDrawService(repo)

	_, _, ranges, err := svc.DigitRanges(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, ranges.Hundreds)
}

func TestDigitRanges_NothingIssued(t *testing.T) {
	svc := NewDrawService(newFakeLotteryRepo())

	maxNumber, count, ranges, err := svc.DigitRanges(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 999, maxNumber)
	assert.Equal(t, 0, count)
	assert.Equal(t, []int{0, 1}, ranges.Hundreds)
}

// An admin removing booth participations never touches issued numbers:
// the holder stays drawable as long as no prize claim exists.
func TestDrawBulk_SurvivesParticipationDeletes(t *testing.T) {
	participations := &fakeParticipationRepo{}
	participationSvc := NewParticipationService(participations)

	for _, code := range []string{"b1", "b2", "b3"} {
		_, err := participationSvc.RecordScan(context.Background(), 1, code, "qr", nil, nil)
		require.NoError(t, err)
	}

	lotteryRepo := newFakeLotteryRepo()
	lotteryRepo.numbers[1] = domain.LotteryNumber{UserID: 1, Number: 1}
	lotteryRepo.pool = poolOf(1)

	newlyIneligible, err := participationSvc.AdminDelete(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, newlyIneligible)

	winners, available, err := NewDrawService(lotteryRepo).DrawBulk(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 1, available)
	require.Len(t, winners, 1)
	assert.Equal(t, 1, winners[0].Number)
}
