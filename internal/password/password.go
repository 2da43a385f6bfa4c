// Package password implements the credential store: argon2id hashing with a
// per-password random salt and constant-time verification.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	saltLen = 16
	keyLen  = 32

	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
)

// Hash derives an argon2id hash of the password under a fresh random salt and
// returns it encoded as "hash:salt" in hex, suitable for persistence.
func Hash(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, keyLen)

	return hex.EncodeToString(key) + ":" + hex.EncodeToString(salt), nil
}

// Verify re-derives the hash with the stored salt and compares in constant
// time. Any malformed stored value verifies false rather than erroring.
func Verify(password, stored string) bool {
	parts := strings.Split(stored, ":")
	if len(parts) != 2 {
		return false
	}

	key, err := hex.DecodeString(parts[0])
	if err != nil || len(key) == 0 {
		return false
	}

	salt, err := hex.DecodeString(parts[1])
	if err != nil || len(salt) == 0 {
		return false
	}

	candidate := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, uint32(len(key)))

	return subtle.ConstantTimeCompare(candidate, key) == 1
}
