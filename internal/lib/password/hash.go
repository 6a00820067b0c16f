// Package password hashes account passwords with bcrypt.
package password

import (
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// Cost is the bcrypt cost used by GetHash. Tests lower it to bcrypt.MinCost.
var Cost = bcrypt.DefaultCost

// GetHash returns the bcrypt hash of password.
func GetHash(password string) (string, error) {
	const op = "password.GetHash"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), Cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashedPassword), nil
}

// CompareHash returns nil when password matches hash.
func CompareHash(hash, password string) error {
	const op = "password.CompareHash"
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

var (
	dummyOnce sync.Once
	dummyHash string
)

// BurnCompare spends one bcrypt comparison against a fixed hash so that a
// lookup of an unknown email costs about as much as a wrong password.
func BurnCompare(password string) {
	dummyOnce.Do(func() {
		dummyHash, _ = GetHash("campus-hire-dummy")
	})
	_ = CompareHash(dummyHash, password)
}
