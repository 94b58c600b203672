package dto

import (
	"time"

	"github.com/clubhub-dev/clubhub/internal/domain/entity"
)

type Post struct {
	ID         uint       `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Location   string     `json:"location"`
	DateStart  *time.Time `json:"date_start,omitempty"`
	DateEnd    *time.Time `json:"date_end,omitempty"`
	Author     User       `json:"author"`
	DatePosted time.Time  `json:"date_posted"`
}

func NewPostFromEntity(post entity.Post) Post {
	return Post{
		ID:         post.ID,
		Title:      post.Title,
		Content:    post.Content,
		Location:   post.Location,
		DateStart:  optionalTime(post.DateStart),
		DateEnd:    optionalTime(post.DateEnd),
		Author:     NewUserFromEntity(post.Author),
		DatePosted: post.DatePosted,
	}
}

// PostInput carries the editable fields of a post. Dates are accepted as RFC 3339
// or as "2006-01-02 15:04" in the configured time zone; empty means unset.
type PostInput struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Location  string `json:"location"`
	DateStart string `json:"date_start"`
	DateEnd   string `json:"date_end"`
}

type Club struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	DateCreated time.Time `json:"date_created"`
}

func NewClubFromEntity(club entity.Club) Club {
	return Club{
		ID:          club.ID,
		Title:       club.Title,
		DateCreated: club.DateCreated,
	}
}

type User struct {
	ID         uint        `json:"id"`
	Username   string      `json:"username"`
	Role       entity.Role `json:"role"`
	DateJoined time.Time   `json:"date_joined"`
}

func NewUserFromEntity(user entity.User) User {
	return User{
		ID:         user.ID,
		Username:   user.Username,
		Role:       user.Role,
		DateJoined: user.DateJoined,
	}
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
