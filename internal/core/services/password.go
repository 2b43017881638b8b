package services

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/domain"
)

const minPasswordLength = 8

// HashPassword returns a salted bcrypt hash.
func HashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", domain.ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Compared against when the account does not exist so both failure paths
// cost one bcrypt comparison.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("campus-pay-dummy-password"), bcrypt.DefaultCost)
