// Package passwords encodes stored passwords and checks candidates against them.
package passwords

import (
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Codec encodes a plain password for storage and checks a candidate against a stored value.
type Codec interface {
	Encode(plain string) (string, error)
	Matches(stored, candidate string) (bool, error)
}

// New returns the codec registered under name ("base64" or "bcrypt").
func New(name string) (Codec, error) {
	switch name {
	case "", "base64":
		return Base64Codec{}, nil
	case "bcrypt":
		return BcryptCodec{Cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("unknown password encoding %q", name)
	}
}

// Base64Codec stores passwords reversibly. It exists for compatibility with
// rows written by the previous deployment and offers no protection at rest.
type Base64Codec struct{}

func (Base64Codec) Encode(plain string) (string, error) {
	return base64.StdEncoding.EncodeToString([]byte(plain)), nil
}

func (Base64Codec) Matches(stored, candidate string) (bool, error) {
	decoded, err := base64.StdEncoding.DecodeString(stored)
	if err != nil {
		return false, fmt.Errorf("decode stored password: %w", err)
	}
	return string(decoded) == candidate, nil
}

type BcryptCodec struct {
	Cost int
}

func (b BcryptCodec) Encode(plain string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

func (BcryptCodec) Matches(stored, candidate string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("compare password: %w", err)
	}
}
