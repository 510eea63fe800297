package util

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters. Tuned for interactive logins: one pass over 64 MiB
// keeps a single verification in the tens of milliseconds while staying
// expensive for offline brute force.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	saltLen      = 16
)

// GenerateSalt returns a new random salt encoded as base64.
func GenerateSalt() (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return base64.RawStdEncoding.EncodeToString(salt), nil
}

// HashPassword derives an argon2id hash of password using the given salt
// and returns it in the storable form "argon2id$<salt>$<hash>".
func HashPassword(password, salt string) (string, error) {
	rawSalt, err := base64.RawStdEncoding.DecodeString(salt)
	if err != nil {
		return "", fmt.Errorf("invalid salt encoding: %w", err)
	}
	key := argon2.IDKey([]byte(password), rawSalt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return fmt.Sprintf("argon2id$%s$%s", salt, base64.RawStdEncoding.EncodeToString(key)), nil
}

// HashNewPassword generates a fresh salt and hashes password with it.
func HashNewPassword(password string) (string, error) {
	salt, err := GenerateSalt()
	if err != nil {
		return "", err
	}
	return HashPassword(password, salt)
}

// VerifyPassword recomputes the argon2id hash of the candidate password
// with the salt embedded in stored and compares in constant time.
// Returns true only when the derived keys match.
func VerifyPassword(stored, password string) bool {
	parts := strings.Split(stored, "$")
	if len(parts) != 3 || parts[0] != "argon2id" {
		return false
	}

	recomputed, err := HashPassword(password, parts[1])
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(recomputed)) == 1
}
