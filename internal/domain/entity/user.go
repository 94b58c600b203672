package entity

import "time"

type Role int

const (
	RoleRegular Role = 0
	// RolePrivileged may create posts.
	RolePrivileged Role = 1
)

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"not null;uniqueIndex"`
	PasswordHash string `gorm:"not null"`
	Role         Role   `gorm:"not null;default:0"`
	DateJoined   time.Time
}

// IsPrivileged reports whether the user holds the privileged role.
func (u *User) IsPrivileged() bool {
	return u.Role == RolePrivileged
}
