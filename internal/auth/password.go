// Package auth hashes passwords and issues the session tokens stored in
// the auth cookie.
package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the minimum number of characters of a password.
const MinPasswordLength = 6

var (
	ErrPasswordTooShort = errors.New("the password must be at least 6 characters long")
	ErrPasswordMismatch = errors.New("the email address or password is wrong")
)

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// CheckPassword returns ErrPasswordMismatch if password does not match hash.
func CheckPassword(hash, password string) error {
	if hash == "" || password == "" {
		return ErrPasswordMismatch
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		return ErrPasswordMismatch
	}

	return nil
}
