package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techforum/engagement-api/internal/domain"
	"github.com/techforum/engagement-api/internal/repository"
	"github.com/techforum/engagement-api/internal/repository/dao"
)

type fakeParticipationRepo struct {
	rows   []domain.BoothParticipation
	nextID uint
}

func (f *fakeParticipationRepo) RecordIfAbsent(_ context.Context, p domain.BoothParticipation, _ string) (bool, error) {
	for _, row := range f.rows {
		if !row.Deleted && row.UserID == p.UserID && row.BoothCode == p.BoothCode {
			return false, nil
		}
	}

	f.nextID++
	p.ID = f.nextID
	f.rows = append(f.rows, p)

	return true, nil
}

func (f *fakeParticipationRepo) ListByUser(_ context.Context, userID uint) ([]domain.BoothParticipation, error) {
	var out []domain.BoothParticipation
	for _, row := range f.rows {
		if !row.Deleted && row.UserID == userID {
			out = append(out, row)
		}
	}

	return out, nil
}

func (f *fakeParticipationRepo) CountDistinctBooths(_ context.Context, userID uint) (int, error) {
	codes := map[string]struct{}{}
	for _, row := range f.rows {
		if !row.Deleted && row.UserID == userID {
			codes[row.BoothCode] = struct{}{}
		}
	}

	return len(codes), nil
}

func (f *fakeParticipationRepo) FindByID(_ context.Context, id uint) (domain.BoothParticipation, error) {
	for _, row := range f.rows {
		if row.ID == id {
			return row, nil
		}
	}

	return domain.BoothParticipation{}, repository.ErrParticipationNotFound
}

func (f *fakeParticipationRepo) SoftDelete(_ context.Context, id uint) error {
	for i, row := range f.rows {
		if row.ID == id && !row.Deleted {
			f.rows[i].Deleted = true
			return nil
		}
	}

	return repository.ErrParticipationNotFound
}

func (f *fakeParticipationRepo) SoftDeleteAllForUser(_ context.Context, userID uint) (int, error) {
	deleted := 0
	for i, row := range f.rows {
		if row.UserID == userID && !row.Deleted {
			f.rows[i].Deleted = true
			deleted++
		}
	}

	return deleted, nil
}

func (f *fakeParticipationRepo) CountByBooth(_ context.Context) ([]dao.BoothStat, error) {
	return nil, nil
}

func (f *fakeParticipationRepo) ListDetails(_ context.Context) ([]dao.ParticipationDetail, error) {
	return nil, nil
}

func (f *fakeParticipationRepo) ListEligibleUsers(_ context.Context) ([]dao.EligibleUser, error) {
	return nil, nil
}

func (f *fakeParticipationRepo) CountEligibleUsers(_ context.Context) (int, error) {
	return 0, nil
}

func (f *fakeParticipationRepo) activeCount(userID uint) int {
	count := 0
	for _, row := range f.rows {
		if !row.Deleted && row.UserID == userID {
			count++
		}
	}

	return count
}

func TestRecordScan_Idempotent(t *testing.T) {
	repo := &fakeParticipationRepo{}
	svc := NewParticipationService(repo)

	already, err := svc.RecordScan(context.Background(), 1, "b1", "qr", nil, nil)
	require.NoError(t, err)
	assert.False(t, already)

	already, err = svc.RecordScan(context.Background(), 1, "b1", "qr", nil, nil)
	require.NoError(t, err)
	assert.True(t, already)

	assert.Equal(t, 1, repo.activeCount(1))
}

func TestRecordScan_PerUser(t *testing.T) {
	repo := &fakeParticipationRepo{}
	svc := NewParticipationService(repo)

	already, err := svc.RecordScan(context.Background(), 1, "b1", "qr", nil, nil)
	require.NoError(t, err)
	assert.False(t, already)

	// Another user scanning the same booth is a fresh record.
	already, err = svc.RecordScan(context.Background(), 2, "b1", "qr", nil, nil)
	require.NoError(t, err)
	assert.False(t, already)
}

func TestEligibility_Threshold(t *testing.T) {
	tests := []struct {
		booths   []string
		eligible bool
	}{
		{nil, false},
		{[]string{"b1"}, false},
		{[]string{"b1", "b2"}, false},
		{[]string{"b1", "b2", "b3"}, true},
		{[]string{"b1", "b2", "b3", "b4"}, true},
	}

	for _, tt := range tests {
		repo := &fakeParticipationRepo{}
		svc := NewParticipationService(repo)

		for _, code := range tt.booths {
			_, err := svc.RecordScan(context.Background(), 1, code, "qr", nil, nil)
			require.NoError(t, err)
		}

		eligibility, err := svc.Eligibility(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, len(tt.booths), eligibility.Count)
		assert.Equal(t, tt.eligible, eligibility.Eligible)
	}
}

func TestParticipations_ScanOrderAndEligibility(t *testing.T) {
	repo := &fakeParticipationRepo{}
	svc := NewParticipationService(repo)

	for _, code := range []string{"b1", "b2"} {
		_, err := svc.RecordScan(context.Background(), 1, code, "qr", nil, nil)
		require.NoError(t, err)
	}

	booths, eligibility, err := svc.Participations(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"b1", "b2"}, booths)
	assert.Equal(t, domain.Eligibility{Count: 2, Eligible: false}, eligibility)

	_, err = svc.RecordScan(context.Background(), 1, "b3", "qr", nil, nil)
	require.NoError(t, err)

	booths, eligibility, err = svc.Participations(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"b1", "b2", "b3"}, booths)
	assert.Equal(t, domain.Eligibility{Count: 3, Eligible: true}, eligibility)
}

func TestParticipations_DuplicateRowsCountOnce(t *testing.T) {
	// Duplicate active rows for one booth should never happen, but if
	// they do the two eligibility figures must still agree on distinct
	// codes.
	repo := &fakeParticipationRepo{
		rows: []domain.BoothParticipation{
			{ID: 1, UserID: 1, BoothCode: "b1"},
			{ID: 2, UserID: 1, BoothCode: "b1"},
			{ID: 3, UserID: 1, BoothCode: "b2"},
		},
		nextID: 3,
	}
	svc := NewParticipationService(repo)

	booths, fromList, err := svc.Participations(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, booths, 3)
	assert.Equal(t, domain.Eligibility{Count: 2, Eligible: false}, fromList)

	fromCount, err := svc.Eligibility(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, fromList, fromCount)
}

func TestAdminDelete_NewlyIneligible(t *testing.T) {
	repo := &fakeParticipationRepo{}
	svc := NewParticipationService(repo)

	for _, code := range []string{"b1", "b2", "b3"} {
		_, err := svc.RecordScan(context.Background(), 1, code, "qr", nil, nil)
		require.NoError(t, err)
	}

	// Dropping from 3 to 2 crosses the threshold.
	newlyIneligible, err := svc.AdminDelete(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, newlyIneligible)

	// Dropping from 2 to 1 does not; the user was already ineligible.
	newlyIneligible, err = svc.AdminDelete(context.Background(), 2)
	require.NoError(t, err)
	assert.False(t, newlyIneligible)

	eligibility, err := svc.Eligibility(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.Eligibility{Count: 1, Eligible: false}, eligibility)
}

func TestAdminDelete_NotFound(t *testing.T) {
	svc := NewParticipationService(&fakeParticipationRepo{})

	_, err := svc.AdminDelete(context.Background(), 99)
	assert.ErrorIs(t, err, ErrParticipationNotFound)
}

func TestRecordScan_AfterSoftDelete(t *testing.T) {
	repo := &fakeParticipationRepo{}
	svc := NewParticipationService(repo)

	_, err := svc.RecordScan(context.Background(), 1, "b1", "qr", nil, nil)
	require.NoError(t, err)

	_, err = svc.AdminDelete(context.Background(), 1)
	require.NoError(t, err)

	// The tombstone stays; a fresh scan creates a new row.
	already, err := svc.RecordScan(context.Background(), 1, "b1", "qr", nil, nil)
	require.NoError(t, err)
	assert.False(t, already)
	assert.Equal(t, 1, repo.activeCount(1))
	assert.Len(t, repo.rows, 2)
}

func TestAdminDeleteAllForUser(t *testing.T) {
	repo := &fakeParticipationRepo{}
	svc := NewParticipationService(repo)

	for _, code := range []string{"b1", "b2", "b3"} {
		_, err := svc.RecordScan(context.Background(), 1, code, "qr", nil, nil)
		require.NoError(t, err)
	}
	_, err := svc.RecordScan(context.Background(), 2, "b1", "qr", nil, nil)
	require.NoError(t, err)

	deleted, err := svc.AdminDeleteAllForUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 3, deleted)
	assert.Equal(t, 0, repo.activeCount(1))
	assert.Equal(t, 1, repo.activeCount(2))
}
