package sealed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	BoothCode string `json:"boothCode"`
	Count     int    `json:"count"`
}

func TestSealOpen_RoundTrip(t *testing.T) {
	codec := NewCodec("test-passphrase")

	in := payload{BoothCode: "b1", Count: 3}
	sealedData, err := codec.Seal(in)
	require.NoError(t, err)

	parts := strings.Split(sealedData, ":")
	require.Len(t, parts, 2)
	assert.Len(t, parts[0], 32) // 16-byte IV, hex encoded.

	var out payload
	require.NoError(t, codec.Open(sealedData, &out))
	assert.Equal(t, in, out)
}

func TestSealOpen_UniqueIVs(t *testing.T) {
	codec := NewCodec("test-passphrase")

	first, err := codec.Seal(payload{BoothCode: "b1"})
	require.NoError(t, err)
	second, err := codec.Seal(payload{BoothCode: "b1"})
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestOpen_Failures(t *testing.T) {
	codec := NewCodec("test-passphrase")

	sealedData, err := codec.Seal(payload{BoothCode: "b1"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"no separator", "deadbeef"},
		{"bad hex iv", "zz:" + strings.Split(sealedData, ":")[1]},
		{"truncated ciphertext", strings.Split(sealedData, ":")[0] + ":deadbeef"},
		{"tampered ciphertext", sealedData[:len(sealedData)-2] + "zz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out payload
			err := codec.Open(tt.input, &out)
			assert.ErrorIs(t, err, ErrInvalidPayload)
		})
	}
}

func TestOpen_WrongPassphrase(t *testing.T) {
	sealedData, err := NewCodec("passphrase-one").Seal(payload{BoothCode: "b1"})
	require.NoError(t, err)

	var out payload
	err = NewCodec("passphrase-two").Open(sealedData, &out)
	assert.ErrorIs(t, err, ErrInvalidPayload)
}
