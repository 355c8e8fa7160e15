package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techforum/engagement-api/internal/domain"
	"github.com/techforum/engagement-api/internal/pkg/sealed"
	"github.com/techforum/engagement-api/internal/repository"
	"github.com/techforum/engagement-api/internal/repository/dao"
)

type fakePrizeRepo struct {
	claims map[uint]domain.PrizeClaim
	nextID uint
}

func newFakePrizeRepo() *fakePrizeRepo {
	return &fakePrizeRepo{
		claims: make(map[uint]domain.PrizeClaim),
	}
}

func (f *fakePrizeRepo) RecordIfAbsent(_ context.Context, userID uint, qrData string) (bool, error) {
	if _, ok := f.claims[userID]; ok {
		return false, nil
	}

	f.nextID++
	f.claims[userID] = domain.PrizeClaim{
		ID:        f.nextID,
		UserID:    userID,
		ClaimedAt: time.Now(),
		QRData:    qrData,
	}

	return true, nil
}

func (f *fakePrizeRepo) FindByUserID(_ context.Context, userID uint) (domain.PrizeClaim, error) {
	claim, ok := f.claims[userID]
	if !ok {
		return domain.PrizeClaim{}, repository.ErrPrizeClaimNotFound
	}

	return claim, nil
}

func (f *fakePrizeRepo) ListDetails(_ context.Context) ([]dao.ClaimDetail, error) {
	return nil, nil
}

type fakePrizeUserRepo struct {
	users map[string]domain.User // keyed by token secret
}

func (f *fakePrizeUserRepo) FindByTokenSecret(_ context.Context, secret string) (domain.User, error) {
	user, ok := f.users[secret]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

type recordingNotifier struct {
	events []struct {
		userID uint
		event  domain.ClaimEvent
	}
}

func (r *recordingNotifier) Notify(userID uint, event domain.ClaimEvent) {
	r.events = append(r.events, struct {
		userID uint
		event  domain.ClaimEvent
	}{userID, event})
}

func prizeFixture(t *testing.T) (*PrizeService, *fakePrizeRepo, *fakeParticipationRepo, *recordingNotifier, *sealed.Codec) {
	t.Helper()

	codec := sealed.NewCodec("test-passphrase")
	repo := newFakePrizeRepo()
	participations := &fakeParticipationRepo{}
	notifier := &recordingNotifier{}
	userRepo := &fakePrizeUserRepo{
		users: map[string]domain.User{
			"secret-1": {ID: 1, EmpNo: "E001", EmpName: "Kim", TokenSecret: "secret-1"},
		},
	}

	svc := NewPrizeService(repo, userRepo, participations, codec, notifier)

	return svc, repo, participations, notifier, codec
}

func sealGrant(t *testing.T, codec *sealed.Codec, secret string, issued time.Time) string {
	t.Helper()

	qrData, err := codec.Seal(domain.PrizeGrant{
		UserID:      1,
		TokenSecret: secret,
		Timestamp:   issued.UnixMilli(),
		Booths:      []string{"b1", "b2", "b3"},
	})
	require.NoError(t, err)

	return qrData
}

func TestNewGrant_RequiresEligibility(t *testing.T) {
	svc, _, participations, _, _ := prizeFixture(t)

	user := domain.User{ID: 1, TokenSecret: "secret-1"}

	for _, code := range []string{"b1", "b2"} {
		_, err := participations.RecordIfAbsent(context.Background(), domain.BoothParticipation{UserID: 1, BoothCode: code}, "qr")
		require.NoError(t, err)
	}

	_, err := svc.NewGrant(context.Background(), user)
	assert.ErrorIs(t, err, ErrNotEligible)

	_, err = participations.RecordIfAbsent(context.Background(), domain.BoothParticipation{UserID: 1, BoothCode: "b3"}, "qr")
	require.NoError(t, err)

	qrData, err := svc.NewGrant(context.Background(), user)
	require.NoError(t, err)
	assert.NotEmpty(t, qrData)
}

func TestNewGrant_PayloadContents(t *testing.T) {
	svc, _, participations, _, codec := prizeFixture(t)

	for _, code := range []string{"b1", "b2", "b3"} {
		_, err := participations.RecordIfAbsent(context.Background(), domain.BoothParticipation{UserID: 1, BoothCode: code}, "qr")
		require.NoError(t, err)
	}

	qrData, err := svc.NewGrant(context.Background(), domain.User{ID: 1, TokenSecret: "secret-1"})
	require.NoError(t, err)

	var grant domain.PrizeGrant
	require.NoError(t, codec.Open(qrData, &grant))
	assert.Equal(t, uint(1), grant.UserID)
	assert.Equal(t, "secret-1", grant.TokenSecret)
	assert.Equal(t, []string{"b1", "b2", "b3"}, grant.Booths)
	assert.False(t, grant.Expired(time.Now()))
}

func TestClaim_OncePerUser(t *testing.T) {
	svc, repo, _, notifier, codec := prizeFixture(t)

	user, alreadyClaimed, err := svc.Claim(context.Background(), sealGrant(t, codec, "secret-1", time.Now()))
	require.NoError(t, err)
	assert.False(t, alreadyClaimed)
	assert.Equal(t, "E001", user.EmpNo)
	require.Len(t, notifier.events, 1)
	assert.Equal(t, uint(1), notifier.events[0].userID)
	assert.Equal(t, "prize_claimed", notifier.events[0].event.Type)

	// A second grant for the same user resolves to the same claim row.
	user, alreadyClaimed, err = svc.Claim(context.Background(), sealGrant(t, codec, "secret-1", time.Now()))
	require.NoError(t, err)
	assert.True(t, alreadyClaimed)
	assert.Equal(t, "E001", user.EmpNo)

	assert.Len(t, repo.claims, 1)
	assert.Len(t, notifier.events, 1) // no second notification
}

func TestClaim_ExpiredGrant(t *testing.T) {
	svc, repo, _, _, codec := prizeFixture(t)

	qrData := sealGrant(t, codec, "secret-1", time.Now().Add(-2*time.Minute))

	_, _, err := svc.Claim(context.Background(), qrData)
	assert.ErrorIs(t, err, ErrGrantExpired)
	assert.Empty(t, repo.claims)
}

func TestClaim_InvalidPayload(t *testing.T) {
	svc, repo, _, _, _ := prizeFixture(t)

	_, _, err := svc.Claim(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrInvalidGrant)
	assert.Empty(t, repo.claims)
}

func TestClaim_UnknownTokenSecret(t *testing.T) {
	svc, repo, _, _, codec := prizeFixture(t)

	// A rotated login leaves old grants pointing at a dead secret.
	qrData := sealGrant(t, codec, "stale-secret", time.Now())

	_, _, err := svc.Claim(context.Background(), qrData)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Empty(t, repo.claims)
}
