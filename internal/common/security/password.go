package security

import "golang.org/x/crypto/bcrypt"

// bcrypt work factor; raising it slows brute-force attempts against leaked hashes.
const passwordHashCost = 10

// HashPassword produces a salted one-way hash of the plaintext. Two calls with
// the same input yield different stored forms.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	return string(bytes), err
}

// CheckPasswordHash reports whether the plaintext matches the stored hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
