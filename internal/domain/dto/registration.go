package dto

import (
	"time"

	"github.com/clubhub-dev/clubhub/internal/domain/entity"
)

// Registration is the outcome of a join/attend request.
type Registration struct {
	Kind              string `json:"kind"`
	TargetID          uint   `json:"target_id"`
	TargetTitle       string `json:"target_title"`
	Username          string `json:"username"`
	AlreadyRegistered bool   `json:"already_registered"`
}

type Join struct {
	ID         uint      `json:"id"`
	User       User      `json:"user"`
	PostID     uint      `json:"post_id"`
	PostTitle  string    `json:"post_title,omitempty"`
	DateJoined time.Time `json:"date_joined"`
}

func NewJoinFromEntity(join entity.Join) Join {
	return Join{
		ID:         join.ID,
		User:       NewUserFromEntity(join.User),
		PostID:     join.PostID,
		PostTitle:  join.Post.Title,
		DateJoined: join.DateJoined,
	}
}

type Attend struct {
	ID           uint      `json:"id"`
	User         User      `json:"user"`
	ClubID       uint      `json:"club_id"`
	ClubTitle    string    `json:"club_title,omitempty"`
	DateAttended time.Time `json:"date_attended"`
}

func NewAttendFromEntity(attend entity.Attend) Attend {
	return Attend{
		ID:           attend.ID,
		User:         NewUserFromEntity(attend.User),
		ClubID:       attend.ClubID,
		ClubTitle:    attend.Club.Title,
		DateAttended: attend.DateAttended,
	}
}

// Session is returned on login.
type Session struct {
	Token       string    `json:"-"`
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        User      `json:"user"`
}
