// Package crypto wraps the password hashing primitive. bcrypt
// generates a fresh salt per call, so two hashes of the same password
// never match byte-for-byte.
package crypto

import "golang.org/x/crypto/bcrypt"

const bcryptCost = 10

// HashPassword derives a salted one-way hash of the password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether the plaintext password matches the
// stored hash.
func VerifyPassword(password, encodedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password)) == nil
}
