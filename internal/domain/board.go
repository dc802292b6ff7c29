package domain

import "time"

// Board is a named container of tasks owned by exactly one user.
// UserID is assigned at creation from the authenticated caller and
// never reassigned. Order determines display position within the
// owner's board set, ascending.
type Board struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
