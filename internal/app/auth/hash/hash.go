package hash

import (
	"github.com/alexedwards/argon2id"

	customErrors "github.com/platemate/auth-gateway/internal/domain/account/errors"
)

var argonParams = &argon2id.Params{
	Memory:      64 * 1024, // 64 MiB
	Iterations:  2,
	Parallelism: 4,
	SaltLength:  16,
	KeyLength:   32,
}

// Hasher produces and verifies salted argon2id password digests. An
// optional pepper is appended to every plaintext before hashing.
type Hasher struct {
	pepper string
}

func New(pepper string) *Hasher {
	return &Hasher{pepper: pepper}
}

// Hash returns a fresh digest; the embedded salt makes two digests of the
// same plaintext differ.
func (h *Hasher) Hash(plaintext string) (string, error) {
	digest, err := argon2id.CreateHash(plaintext+h.pepper, argonParams)
	if err != nil {
		return "", customErrors.WrapInternal(err, "hash password")
	}
	return digest, nil
}

// Verify reports whether plaintext matches digest. A malformed digest is
// treated as a mismatch, never surfaced as an error.
func (h *Hasher) Verify(plaintext, digest string) bool {
	ok, err := argon2id.ComparePasswordAndHash(plaintext+h.pepper, digest)
	if err != nil {
		return false
	}
	return ok
}
