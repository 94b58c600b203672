package entity

import "time"

type Club struct {
	ID          uint      `gorm:"primaryKey"`
	Title       string    `gorm:"not null"`
	DateCreated time.Time `gorm:"not null;index"`
}

func (c *Club) GetID() uint {
	return c.ID
}

func (c *Club) GetTitle() string {
	return c.Title
}
