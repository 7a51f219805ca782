package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexedwards/argon2id"
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher produces and verifies one-way password hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}

// HashParams tunes the argon2id key derivation.
type HashParams struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
}

// DefaultHashParams mirrors argon2id.DefaultParams.
var DefaultHashParams = HashParams{
	Memory:      argon2id.DefaultParams.Memory,
	Iterations:  argon2id.DefaultParams.Iterations,
	Parallelism: argon2id.DefaultParams.Parallelism,
}

// Argon2Hasher hashes new passwords with argon2id. It still verifies bcrypt
// hashes written by earlier deployments so those accounts can log in.
type Argon2Hasher struct {
	params *argon2id.Params
}

func NewArgon2Hasher(p HashParams) *Argon2Hasher {
	params := *argon2id.DefaultParams
	if p.Memory > 0 {
		params.Memory = p.Memory
	}
	if p.Iterations > 0 {
		params.Iterations = p.Iterations
	}
	if p.Parallelism > 0 {
		params.Parallelism = p.Parallelism
	}
	return &Argon2Hasher{params: &params}
}

func (h *Argon2Hasher) Hash(password string) (string, error) {
	hash, err := argon2id.CreateHash(password, h.params)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

func (h *Argon2Hasher) Verify(password, encoded string) (bool, error) {
	switch {
	case strings.HasPrefix(encoded, "$argon2id$"):
		match, err := argon2id.ComparePasswordAndHash(password, encoded)
		if err != nil {
			return false, fmt.Errorf("compare argon2id hash: %w", err)
		}
		return match, nil
	case isBcryptHash(encoded):
		err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password))
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("compare bcrypt hash: %w", err)
		}
		return true, nil
	default:
		return false, errors.New("unsupported password hash format")
	}
}

func isBcryptHash(encoded string) bool {
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(encoded, prefix) {
			return true
		}
	}
	return false
}
