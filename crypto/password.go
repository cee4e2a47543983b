package crypto

import "golang.org/x/crypto/bcrypt"

// PasswordHashCost is the bcrypt cost factor. 12 rounds is deliberately
// slow to resist offline brute force.
const PasswordHashCost = 12

// CheckPassword compares a bcrypt hashed password with its possible plaintext equivalent
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GenerateHash creates a bcrypt hash from a password
func GenerateHash(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), PasswordHashCost)
	return string(hashedBytes), err
}
