package crypto

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes bcrypt ignores everything past this length
const maxPasswordBytes = 72

// ErrPasswordTooLong returned for passwords bcrypt would silently truncate
var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

// HashPassword bcrypt hash at the default cost
func HashPassword(password string) (string, error) {
	if len(password) > maxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash. A malformed hash never matches.
func CheckPassword(password, hash string) bool {
	if hash == "" || len(password) > maxPasswordBytes {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
