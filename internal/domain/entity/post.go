package entity

import (
	"time"
)

type Post struct {
	ID         uint   `gorm:"primaryKey"`
	Title      string `gorm:"not null"`
	Content    string `gorm:"not null"`
	Location   string
	DateStart  time.Time
	DateEnd    time.Time
	AuthorID   uint      `gorm:"not null;index"`
	Author     User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	DatePosted time.Time `gorm:"not null;index"`
}

func (p *Post) GetID() uint {
	return p.ID
}

func (p *Post) GetTitle() string {
	return p.Title
}
