package entity

import "time"

// Target is something a user can register for: a Post (join) or a Club (attend).
type Target interface {
	GetID() uint
	GetTitle() string
}

// Join registers a user's interest in a Post. At most one per (user, post).
type Join struct {
	ID         uint      `gorm:"primaryKey"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_joins_user_post"`
	User       User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	PostID     uint      `gorm:"not null;uniqueIndex:idx_joins_user_post;index"`
	Post       Post      `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	DateJoined time.Time `gorm:"not null;index"`
}

// Attend registers a user's interest in a Club. At most one per (user, club).
type Attend struct {
	ID           uint      `gorm:"primaryKey"`
	UserID       uint      `gorm:"not null;uniqueIndex:idx_attends_user_club"`
	User         User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ClubID       uint      `gorm:"not null;uniqueIndex:idx_attends_user_club;index"`
	Club         Club      `gorm:"foreignKey:ClubID;constraint:OnDelete:CASCADE"`
	DateAttended time.Time `gorm:"not null;index"`
}
