package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the bcrypt work factor used for all stored passwords.
const BcryptCost = 10

// HashPassword hashes a password with bcrypt (salted, cost 10).
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored bcrypt hash.
// bcrypt compares in constant time.
func CheckPassword(password, hashedPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
