package domain

import "time"

// User represents a registered account. Users are created at registration
// and never deleted; the only mutable field is TourCompleted.
//
// Password holds the bcrypt hash and is serialized into snapshots only;
// API responses go through a DTO that omits it.
type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Password      string    `json:"password"`
	Name          string    `json:"name"`
	CreatedAt     time.Time `json:"createdAt"`
	TourCompleted bool      `json:"tourCompleted"`
}
