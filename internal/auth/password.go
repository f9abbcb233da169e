// Password hashing for stored credentials.
//
// Passwords are stored as bcrypt hashes, never as plaintext and never with a
// general-purpose hash like SHA-256. bcrypt is deliberately slow (tunable via
// its cost parameter), salts every hash itself, and packs salt and cost into
// the output string, so the users table needs a single password_hash column
// and nothing else.

package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// defaultCost is the bcrypt work factor used in production. At 12, a single
// hash lands in the low hundreds of milliseconds on current hardware — slow
// enough to make offline cracking expensive, fast enough for a login flow.
const defaultCost = 12

// PasswordService hashes and verifies passwords at a fixed bcrypt cost.
//
// The cost lives in a struct field rather than a package constant so tests
// can run at bcrypt.MinCost; hashing at cost 12 in every test would dominate
// the suite's runtime.
type PasswordService struct {
	cost int
}

// NewPasswordService returns a PasswordService at the production cost.
func NewPasswordService() *PasswordService {
	return &PasswordService{cost: defaultCost}
}

// NewPasswordServiceForTest returns a PasswordService at an arbitrary cost.
// Test-only: low costs are trivially crackable.
func NewPasswordServiceForTest(cost int) *PasswordService {
	return &PasswordService{cost: cost}
}

// Hash bcrypt-hashes a plaintext password.
//
// The returned string (e.g. "$2a$12$...") embeds the salt and cost, so it
// goes straight into the database and Verify can decode it later without any
// extra stored state.
func (p *PasswordService) Hash(plaintext string) (string, error) {
	// bcrypt only reads the first 72 bytes of its input. Hashing a longer
	// password would silently bind the account to a truncated secret, so
	// refuse instead. Register enforces the same bound with a 400 before
	// this point is ever reached.
	if len(plaintext) > 72 {
		return "", fmt.Errorf("auth: password must be 72 bytes or fewer")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), p.cost)
	if err != nil {
		return "", fmt.Errorf("auth: hashing password: %w", err)
	}

	return string(hashed), nil
}

// Verify reports whether plaintext matches the stored hash; nil means match.
// The underlying comparison runs in constant time, so response timing leaks
// nothing about how close a guess was.
func (p *PasswordService) Verify(hash, plaintext string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return fmt.Errorf("auth: invalid password")
		}
		return fmt.Errorf("auth: comparing password hash: %w", err)
	}
	return nil
}
