// Package keys derives purpose-bound sub-keys from the single server secret,
// so the daily word index and challenge signatures never share key material.
package keys

import (
	"crypto/sha256"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	PurposeDaily     = "friendle/daily"
	PurposeChallenge = "friendle/challenge"
)

// Size is the length of every derived key in bytes.
const Size = 32

var ErrEmptySecret = errors.New("keys: empty master secret")

// Derive expands master into a Size-byte key bound to purpose using HKDF-SHA256.
func Derive(master []byte, purpose string) ([]byte, error) {
	if len(master) == 0 {
		return nil, ErrEmptySecret
	}
	h := hkdf.New(sha256.New, master, nil, []byte(purpose))
	out := make([]byte, Size)
	if _, err := io.ReadFull(h, out); err != nil {
		return nil, err
	}
	return out, nil
}
