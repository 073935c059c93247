package model

import (
	"fmt"
	"strconv"
	"time"
)

// UserID identifies a User. Tokens carry it as a decimal string in the
// subject claim.
type UserID uint

// ParseUserID decodes a subject claim.
func ParseUserID(s string) (UserID, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid user id %q", s)
	}
	return UserID(id), nil
}

func (id UserID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// User represents a registered account.
type User struct {
	ID           UserID     `json:"id" gorm:"primaryKey"`
	Name         string     `json:"name" gorm:"size:100;not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;size:120;not null"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Phone        *string    `json:"phone" gorm:"size:20"`
	Location     *string    `json:"location" gorm:"size:100"`
	ProfileImage *string    `json:"profile_image" gorm:"size:200"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login"`
	SearchCount  int        `json:"search_count" gorm:"not null;default:0"`
}

// TableName keeps the table name used by existing deployments.
func (User) TableName() string {
	return "user"
}
