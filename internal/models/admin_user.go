package models

import "golang.org/x/crypto/bcrypt"

// AdminUser is an account allowed into the admin panel.
type AdminUser struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
}

// HashPassword returns the bcrypt hash of pw.
func HashPassword(pw string) (string, error) {
	return hashPasswordCost(pw, bcrypt.DefaultCost)
}

func hashPasswordCost(pw string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	return string(hash), err
}

// CheckPassword reports whether pw matches hash.
func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
