package utils

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor for staff and citizen accounts.
var PasswordCost = bcrypt.DefaultCost

var (
	// ErrPasswordTooLong marks a password past bcrypt's 72-byte input limit.
	ErrPasswordTooLong = errors.New("password must be at most 72 bytes")
	// ErrPasswordMismatch marks a login attempt with the wrong password.
	ErrPasswordMismatch = errors.New("password does not match")
)

// HashPassword returns the bcrypt hash stored in password_hash.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), PasswordCost)
	switch {
	case errors.Is(err, bcrypt.ErrPasswordTooLong):
		return "", ErrPasswordTooLong
	case err != nil:
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares plain against a stored hash. A wrong password yields ErrPasswordMismatch;
// any other error means the stored hash is unusable.
func CheckPassword(plain, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrPasswordMismatch
	}
	return err
}
