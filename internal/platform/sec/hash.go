// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plain-text password using the bcrypt algorithm.
func HashPassword(plainTextPassword string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckPasswordHash compares a plain-text password with its hashed version.
func CheckPasswordHash(plainTextPassword, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword))
	return err == nil
}

// dummyHash is compared against when no account matches, so a failed sign-in
// costs one bcrypt comparison whether or not the email exists.
var dummyHash = sync.OnceValue(func() string {
	hash, err := HashPassword("formulary-no-such-account")
	if err != nil {
		panic(err)
	}
	return hash
})

// DummyPasswordHash returns a fixed bcrypt hash at the default cost that no
// real password is expected to match.
func DummyPasswordHash() string {
	return dummyHash()
}
