package dao

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParticipationInsertIfAbsent(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	d := NewParticipationDAO(testDB)
	user := seedUser(t, "E100")

	created, err := d.InsertIfAbsent(ctx, BoothParticipation{UserID: user.ID, BoothCode: "BOOTH_A"})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = d.InsertIfAbsent(ctx, BoothParticipation{UserID: user.ID, BoothCode: "BOOTH_A"})
	require.NoError(t, err)
	assert.False(t, created)

	rows, err := d.ListActiveByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestParticipationConcurrentScans(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	d := NewParticipationDAO(testDB)
	user := seedUser(t, "E105")

	const scans = 8

	var wg sync.WaitGroup
	results := make(chan bool, scans)
	errs := make(chan error, scans)

	for i := 0; i < scans; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			created, err := d.InsertIfAbsent(ctx, BoothParticipation{UserID: user.ID, BoothCode: "BOOTH_A"})
			if err != nil {
				errs <- err
				return
			}
			results <- created
		}()
	}
	wg.Wait()
	close(results)
	close(errs)

	for err := range errs {
		t.Fatalf("InsertIfAbsent: %v", err)
	}

	createdCount := 0
	for created := range results {
		if created {
			createdCount++
		}
	}
	assert.Equal(t, 1, createdCount)

	var active int64
	require.NoError(t, testDB.Model(&BoothParticipation{}).
		Where("user_id = ? AND deleted = false", user.ID).
		Count(&active).Error)
	assert.EqualValues(t, 1, active)
}

func TestParticipationRescanAfterSoftDelete(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	d := NewParticipationDAO(testDB)
	user := seedUser(t, "E101")

	_, err := d.InsertIfAbsent(ctx, BoothParticipation{UserID: user.ID, BoothCode: "BOOTH_A"})
	require.NoError(t, err)

	rows, err := d.ListActiveByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	require.NoError(t, d.SoftDelete(ctx, rows[0].ID))

	count, err := d.CountDistinctActive(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	// The tombstone does not block a fresh scan of the same booth.
	created, err := d.InsertIfAbsent(ctx, BoothParticipation{UserID: user.ID, BoothCode: "BOOTH_A"})
	require.NoError(t, err)
	assert.True(t, created)

	// Both rows are kept, only one is live.
	var total int64
	require.NoError(t, testDB.Model(&BoothParticipation{}).Where("user_id = ?", user.ID).Count(&total).Error)
	assert.EqualValues(t, 2, total)

	count, err = d.CountDistinctActive(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestParticipationSoftDeleteTwice(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	d := NewParticipationDAO(testDB)
	user := seedUser(t, "E102")

	_, err := d.InsertIfAbsent(ctx, BoothParticipation{UserID: user.ID, BoothCode: "BOOTH_A"})
	require.NoError(t, err)

	rows, err := d.ListActiveByUser(ctx, user.ID)
	require.NoError(t, err)

	require.NoError(t, d.SoftDelete(ctx, rows[0].ID))
	assert.ErrorIs(t, d.SoftDelete(ctx, rows[0].ID), ErrParticipationNotFound)
}

func TestParticipationEligibleUsers(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	d := NewParticipationDAO(testDB)
	three := seedUser(t, "E103")
	two := seedUser(t, "E104")

	for _, booth := range []string{"BOOTH_A", "BOOTH_B", "BOOTH_C"} {
		_, err := d.InsertIfAbsent(ctx, BoothParticipation{UserID: three.ID, BoothCode: booth})
		require.NoError(t, err)
	}
	for _, booth := range []string{"BOOTH_A", "BOOTH_B"} {
		_, err := d.InsertIfAbsent(ctx, BoothParticipation{UserID: two.ID, BoothCode: booth})
		require.NoError(t, err)
	}

	eligible, err := d.ListEligibleUsers(ctx, 3)
	require.NoError(t, err)
	require.Len(t, eligible, 1)
	assert.Equal(t, three.ID, eligible[0].UserID)
	assert.Equal(t, 3, eligible[0].BoothCount)
	assert.Equal(t, "BOOTH_A, BOOTH_B, BOOTH_C", eligible[0].BoothCodes)

	count, err := d.CountEligibleUsers(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestLotteryAllocateSequential(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	d := NewLotteryDAO(testDB)
	first := seedUser(t, "E110")
	second := seedUser(t, "E111")

	row, err := d.Allocate(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, row.Number)

	row, err = d.Allocate(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, row.Number)

	count, max, err := d.CountAndMax(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, 2, max)
}

func TestLotteryAllocateTwiceSameUser(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	d := NewLotteryDAO(testDB)
	user := seedUser(t, "E112")

	_, err := d.Allocate(ctx, user.ID)
	require.NoError(t, err)

	// The user_id unique constraint trips the same violation path a lost
	// number race would.
	_, err = d.Allocate(ctx, user.ID)
	assert.ErrorIs(t, err, ErrNumberTaken)
}

func TestLotteryPoolExcludesClaimedAndDeleted(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	d := NewLotteryDAO(testDB)
	alive := seedUser(t, "E120")
	claimed := seedUser(t, "E121")
	gone := seedUser(t, "E122")

	aliveRow, err := d.Allocate(ctx, alive.ID)
	require.NoError(t, err)
	claimedRow, err := d.Allocate(ctx, claimed.ID)
	require.NoError(t, err)
	goneRow, err := d.Allocate(ctx, gone.ID)
	require.NoError(t, err)

	_, err = NewPrizeDAO(testDB).InsertIfAbsent(ctx, PrizeClaim{UserID: claimed.ID})
	require.NoError(t, err)
	require.NoError(t, testDB.Model(&User{}).Where("id = ?", gone.ID).Update("deleted", true).Error)

	pool, err := d.ListPool(ctx)
	require.NoError(t, err)
	require.Len(t, pool, 1)
	assert.Equal(t, alive.ID, pool[0].UserID)
	assert.Equal(t, aliveRow.Number, pool[0].Number)

	entry, err := d.FindPoolEntryByNumber(ctx, aliveRow.Number)
	require.NoError(t, err)
	assert.Equal(t, alive.EmpNo, entry.EmpNo)

	_, err = d.FindPoolEntryByNumber(ctx, claimedRow.Number)
	assert.ErrorIs(t, err, ErrLotteryNumberNotFound)

	_, err = d.FindPoolEntryByNumber(ctx, goneRow.Number)
	assert.ErrorIs(t, err, ErrLotteryNumberNotFound)
}

func TestPrizeInsertIfAbsent(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	d := NewPrizeDAO(testDB)
	user := seedUser(t, "E130")

	created, err := d.InsertIfAbsent(ctx, PrizeClaim{UserID: user.ID, QRData: "payload-1"})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = d.InsertIfAbsent(ctx, PrizeClaim{UserID: user.ID, QRData: "payload-2"})
	require.NoError(t, err)
	assert.False(t, created)

	claim, err := d.FindByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "payload-1", claim.QRData)

	details, err := d.ListDetails(ctx)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, user.EmpName, details[0].EmpName)
}

func TestPrizeConcurrentClaims(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	d := NewPrizeDAO(testDB)
	user := seedUser(t, "E131")

	const claims = 8

	var wg sync.WaitGroup
	results := make(chan bool, claims)
	errs := make(chan error, claims)

	for i := 0; i < claims; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			created, err := d.InsertIfAbsent(ctx, PrizeClaim{UserID: user.ID})
			if err != nil {
				errs <- err
				return
			}
			results <- created
		}()
	}
	wg.Wait()
	close(results)
	close(errs)

	for err := range errs {
		t.Fatalf("InsertIfAbsent: %v", err)
	}

	createdCount := 0
	for created := range results {
		if created {
			createdCount++
		}
	}
	assert.Equal(t, 1, createdCount)

	var total int64
	require.NoError(t, testDB.Model(&PrizeClaim{}).Where("user_id = ?", user.ID).Count(&total).Error)
	assert.EqualValues(t, 1, total)
}

func TestUserTokenSecretLookup(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	d := NewUserDAO(testDB)
	user := seedUser(t, "E140")

	found, err := d.FindByTokenSecret(ctx, user.TokenSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	require.NoError(t, testDB.Model(&User{}).Where("id = ?", user.ID).Update("deleted", true).Error)

	// Soft deletion revokes the session immediately.
	_, err = d.FindByTokenSecret(ctx, user.TokenSecret)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserListWithStats(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	user := seedUser(t, "E150")

	pd := NewParticipationDAO(testDB)
	for _, booth := range []string{"BOOTH_A", "BOOTH_B"} {
		_, err := pd.InsertIfAbsent(ctx, BoothParticipation{UserID: user.ID, BoothCode: booth})
		require.NoError(t, err)
	}
	_, err := NewPrizeDAO(testDB).InsertIfAbsent(ctx, PrizeClaim{UserID: user.ID})
	require.NoError(t, err)

	rows, err := NewUserDAO(testDB).ListWithStats(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, user.EmpNo, rows[0].EmpNo)
	assert.Equal(t, 2, rows[0].BoothCount)
	assert.Equal(t, 1, rows[0].PrizeClaimed)
}

func TestEnsureAdminIdempotent(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	d := NewUserDAO(testDB)

	require.NoError(t, d.EnsureAdmin(ctx, "admin", "hash-1"))
	require.NoError(t, d.EnsureAdmin(ctx, "admin", "hash-2"))

	admin, err := d.FindAdminByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "hash-1", admin.PasswordHash)
}

func TestSurveyStats(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	d := NewSurveyDAO(testDB)

	stats, err := d.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Count)
	assert.Zero(t, stats.AvgOverall)

	_, err = d.Insert(ctx, Survey{OverallSatisfaction: 5, BoothSatisfaction: 4, SessionSatisfaction: 3, WebsiteSatisfaction: 2, PrizeSatisfaction: 1})
	require.NoError(t, err)
	_, err = d.Insert(ctx, Survey{OverallSatisfaction: 3, BoothSatisfaction: 4, SessionSatisfaction: 5, WebsiteSatisfaction: 4, PrizeSatisfaction: 3})
	require.NoError(t, err)

	stats, err = d.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Count)
	assert.InDelta(t, 4.0, stats.AvgOverall, 0.001)
	assert.InDelta(t, 2.0, stats.AvgPrize, 0.001)
}
