package model

import "time"

// User stores account profile and Google linking state.
type User struct {
	ID                 uint   `gorm:"primaryKey"`
	Email              string `gorm:"uniqueIndex"`
	GivenName          string
	FamilyName         string
	Image              string
	GoogleRefreshToken string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// GoogleLinked reports whether the account has a stored refresh token.
func (u *User) GoogleLinked() bool {
	return u.GoogleRefreshToken != ""
}
