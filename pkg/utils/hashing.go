package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HashPassword returns the hex SHA-256 digest of password. Stored hashes are
// unsalted; existing rows depend on this exact format.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// ComparePasswords reports whether plainPassword hashes to hashedPassword.
func ComparePasswords(hashedPassword string, plainPassword string) error {
	candidate := HashPassword(plainPassword)
	if subtle.ConstantTimeCompare([]byte(hashedPassword), []byte(candidate)) != 1 {
		return ErrInvalidCredentials
	}
	return nil
}

// LooksHashed reports whether s has the shape of a HashPassword result.
func LooksHashed(s string) bool {
	if len(s) != sha256.Size*2 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}
