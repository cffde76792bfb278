package security

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

// KeyPrefix marks admin keys of the register back office.
const KeyPrefix = "cr_admin_"

// GenerateAPIKey creates a secure random API key and its SHA256 hash.
//
// Returns:
//   - realKey: the key handed to the operator, shown once
//   - keyHash: the hex SHA256 to put in ADMIN_API_KEY_HASH
//
// Example:
//
//	realKey, keyHash, err := GenerateAPIKey()
func GenerateAPIKey() (string, string, error) {
	// 1. Generate 32 random bytes using crypto/rand
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	// 2. Convert to hexadecimal string and add the prefix
	realKey := KeyPrefix + hex.EncodeToString(bytes)

	// 3. Hash the key; only the hash is configured on the server
	return realKey, HashKey(realKey), nil
}

func HashKey(key string) string {
	hash := sha256.Sum256([]byte(key))
	return hex.EncodeToString(hash[:])
}

// ValidateKey checks if a provided API key matches the stored hash.
func ValidateKey(providedKey, storedHash string) bool {
	if storedHash == "" {
		return false
	}
	computed := HashKey(providedKey)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}
