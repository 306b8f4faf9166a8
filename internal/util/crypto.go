package util

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// pinHashCost 和原服务 bcryptjs 的 salt rounds 保持一致
const pinHashCost = 10

// HashPin hashes a user's PIN with bcrypt. The salt is generated per
// call and embedded in the output, so hashing the same PIN twice yields
// different values.
func HashPin(pin string) (string, error) {
	if pin == "" {
		return "", fmt.Errorf("pin is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), pinHashCost)
	if err != nil {
		return "", fmt.Errorf("hash pin: %w", err)
	}
	return string(hash), nil
}

// CheckPin reports whether pin reproduces the stored hash. bcrypt's
// comparison runs in constant time regardless of where a mismatch
// occurs.
func CheckPin(pin, stored string) bool {
	if pin == "" || stored == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(pin)) == nil
}
