package dto

import "github.com/talenthub/jobboard-be/internal/api/model"

type CreateCompanyUserRequest struct {
	Email     string  `json:"email" binding:"required,email"`
	FirstName string  `json:"first_name" binding:"required"`
	LastName  string  `json:"last_name" binding:"required"`
	Role      string  `json:"role" binding:"required"`
	Phone     *string `json:"phone"`
}

type UpdateCompanyUserRequest struct {
	Email          *string `json:"email"`
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	Role           *string `json:"role"`
	Phone          *string `json:"phone"`
	ProfilePicture *string `json:"profile_picture"`
	IsActive       *bool   `json:"is_active"`
}

type ListCompanyUsersRequest struct {
	Role     string `form:"role"`
	IsActive *bool  `form:"is_active"`
	Page     int    `form:"page"`
	PerPage  int    `form:"per_page"`
}

type CompanyUserResponse struct {
	ID             int64   `json:"id"`
	CompanyID      int64   `json:"company_id"`
	Email          string  `json:"email"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Role           string  `json:"role"`
	Phone          *string `json:"phone"`
	ProfilePicture *string `json:"profile_picture"`
	IsActive       bool    `json:"is_active"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

func FromCompanyUser(u *model.CompanyUser) CompanyUserResponse {
	return CompanyUserResponse{
		ID:             u.ID,
		CompanyID:      u.CompanyID,
		Email:          u.Email,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Role:           u.Role,
		Phone:          u.Phone,
		ProfilePicture: u.ProfilePicture,
		IsActive:       u.IsActive,
		CreatedAt:      formatTime(u.CreatedAt),
		UpdatedAt:      formatTime(u.UpdatedAt),
	}
}

func FromCompanyUsers(users []model.CompanyUser) []CompanyUserResponse {
	out := make([]CompanyUserResponse, 0, len(users))
	for i := range users {
		out = append(out, FromCompanyUser(&users[i]))
	}
	return out
}
