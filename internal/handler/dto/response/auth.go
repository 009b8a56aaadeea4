package response

import (
	"rentease/internal/usecase/commands"

	"github.com/google/uuid"
)

type LoginResponse struct {
	Token     string    `json:"token"`
	UserID    uuid.UUID `json:"userId"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
}

func FromLoginResult(res *commands.LoginResult) *LoginResponse {
	return &LoginResponse{
		Token:     res.Token,
		UserID:    res.UserID,
		Email:     res.Email,
		FirstName: res.FirstName,
		LastName:  res.LastName,
	}
}

type TokenResponse struct {
	Token string `json:"token"`
}
