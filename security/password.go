// Package security contains everything related to the security of user data
package security

import "golang.org/x/crypto/bcrypt"

// bcryptCost is pinned so existing hashes keep verifying after upgrades
const bcryptCost = 12

func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// CheckPassword reports whether plain matches the stored hash
func CheckPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
