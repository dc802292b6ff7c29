package handler

import "github.com/msomdec/taskboard/internal/domain"

// UserDTO is the JSON representation of a user in auth responses. The
// password hash and tour flag never leave through this shape.
type UserDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
	}
}

// AuthResponse pairs a fresh token with the user it identifies.
type AuthResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}
