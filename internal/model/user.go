package model

import (
	"time"
)

// User is a registered account. Passwords are stored as bcrypt hashes and are
// never serialized. The avatar is kept inline as a blob, capped at 2 MiB by
// the account service.
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Username     string    `json:"username" gorm:"not null;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"column:password;not null"`
	AvatarBlob   []byte    `json:"-" gorm:"column:avatar_blob"`
	CreatedAt    time.Time `json:"created_at"`
}
