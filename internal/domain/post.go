package domain

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user"`
	Text   string    `json:"text"`
	// Name and Avatar are copied from the author at creation time and never
	// synced afterwards.
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	Likes     []Like    `json:"likes"`
	CreatedAt time.Time `json:"date"`
}

type Like struct {
	UserID    uuid.UUID `json:"user"`
	CreatedAt time.Time `json:"-"`
}

// LikedBy reports whether userID is present in the like list.
func (p *Post) LikedBy(userID uuid.UUID) bool {
	for _, l := range p.Likes {
		if l.UserID == userID {
			return true
		}
	}
	return false
}
