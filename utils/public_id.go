package utils

import (
	"crypto/rand"
	"math/big"
)

const (
	publicIDMin = 100000000
	publicIDMax = 999999999
)

var publicIDSpan = big.NewInt(publicIDMax - publicIDMin + 1)

// NewPublicID draws a uniformly random 9-digit tracking number.
func NewPublicID() (int64, error) {
	n, err := rand.Int(rand.Reader, publicIDSpan)
	if err != nil {
		return 0, err
	}
	return n.Int64() + publicIDMin, nil
}

// ValidPublicID reports whether id has exactly nine digits.
func ValidPublicID(id int64) bool {
	return id >= publicIDMin && id <= publicIDMax
}
