package dto

import "github.com/talenthub/jobboard-be/internal/api/model"

type CreateUserRequest struct {
	Username       string  `json:"username" binding:"required"`
	Email          string  `json:"email" binding:"required,email"`
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	Bio            *string `json:"bio"`
	ProfilePicture *string `json:"profile_picture"`
}

type UserResponse struct {
	ID             int64   `json:"id"`
	Username       string  `json:"username"`
	Email          string  `json:"email"`
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	Bio            *string `json:"bio"`
	ProfilePicture *string `json:"profile_picture"`
	CreatedAt      string  `json:"created_at"`
}

func FromUser(u *model.User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Bio:            u.Bio,
		ProfilePicture: u.ProfilePicture,
		CreatedAt:      formatTime(u.CreatedAt),
	}
}

func FromUsers(users []model.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, FromUser(&users[i]))
	}
	return out
}
