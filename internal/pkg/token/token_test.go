package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueVerify_RoundTrip(t *testing.T) {
	issuer := NewIssuer("signing-key")

	tokenStr, secret, err := issuer.Issue()
	require.NoError(t, err)
	assert.Len(t, secret, 64) // 32 bytes, hex encoded.

	got, err := issuer.Verify(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, secret, got)
}

func TestIssue_SecretsDiffer(t *testing.T) {
	issuer := NewIssuer("signing-key")

	_, first, err := issuer.Issue()
	require.NoError(t, err)
	_, second, err := issuer.Issue()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerify_Failures(t *testing.T) {
	issuer := NewIssuer("signing-key")

	tokenStr, _, err := issuer.Issue()
	require.NoError(t, err)

	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"garbage", "not.a.token"},
		{"tampered signature", tokenStr[:len(tokenStr)-4] + "AAAA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := issuer.Verify(tt.input)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestVerify_WrongSigningKey(t *testing.T) {
	tokenStr, _, err := NewIssuer("key-one").Issue()
	require.NoError(t, err)

	_, err = NewIssuer("key-two").Verify(tokenStr)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssueAdminVerifyAdmin_RoundTrip(t *testing.T) {
	issuer := NewIssuer("signing-key")

	tokenStr, err := issuer.IssueAdmin(42)
	require.NoError(t, err)

	adminID, err := issuer.VerifyAdmin(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, uint(42), adminID)
}

func TestVerifyAdmin_RejectsUserToken(t *testing.T) {
	issuer := NewIssuer("signing-key")

	tokenStr, _, err := issuer.Issue()
	require.NoError(t, err)

	_, err = issuer.VerifyAdmin(tokenStr)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
