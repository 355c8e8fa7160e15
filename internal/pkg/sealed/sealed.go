// Package sealed encodes the small JSON payloads embedded in QR codes as
// AES-256-CBC ciphertext in the form "{hex iv}:{hex ciphertext}". The
// 32-byte key is derived from the configured passphrase with SHA-256.
package sealed

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPayload covers every structural or cryptographic failure.
// Callers get no detail about which check failed.
var ErrInvalidPayload = errors.New("invalid payload")

type Codec struct {
	key []byte
}

func NewCodec(passphrase string) *Codec {
	key := sha256.Sum256([]byte(passphrase))

	return &Codec{
		key: key[:],
	}
}

func (c *Codec) Seal(v interface{}) (string, error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("json.Marshal -> %w", err)
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", fmt.Errorf("aes.NewCipher -> %w", err)
	}

	iv := make([]byte, aes.BlockSize)
	if _, err = rand.Read(iv); err != nil {
		return "", fmt.Errorf("rand.Read -> %w", err)
	}

	padded := pad(plaintext)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return hex.EncodeToString(iv) + ":" + hex.EncodeToString(ciphertext), nil
}

func (c *Codec) Open(s string, v interface{}) error {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return ErrInvalidPayload
	}

	iv, err := hex.DecodeString(parts[0])
	if err != nil || len(iv) != aes.BlockSize {
		return ErrInvalidPayload
	}

	ciphertext, err := hex.DecodeString(parts[1])
	if err != nil || len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return ErrInvalidPayload
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return ErrInvalidPayload
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	plaintext, ok := unpad(plaintext)
	if !ok {
		return ErrInvalidPayload
	}

	if err = json.Unmarshal(plaintext, v); err != nil {
		return ErrInvalidPayload
	}

	return nil
}

// PKCS#7 padding, same as node's createCipheriv default.
func pad(b []byte) []byte {
	n := aes.BlockSize - len(b)%aes.BlockSize

	return append(b, bytes.Repeat([]byte{byte(n)}, n)...)
}

func unpad(b []byte) ([]byte, bool) {
	if len(b) == 0 {
		return nil, false
	}

	n := int(b[len(b)-1])
	if n == 0 || n > aes.BlockSize || n > len(b) {
		return nil, false
	}

	for _, p := range b[len(b)-n:] {
		if int(p) != n {
			return nil, false
		}
	}

	return b[:len(b)-n], true
}
