package dto

import "github.com/talenthub/jobboard-be/internal/api/model"

type CreateCompanyRequest struct {
	Name           string  `json:"name" binding:"required"`
	Email          string  `json:"email" binding:"required,email"`
	Website        *string `json:"website"`
	Industry       *string `json:"industry"`
	Size           *string `json:"size"`
	FoundedYear    *int    `json:"founded_year"`
	Description    *string `json:"description"`
	Headquarters   *string `json:"headquarters"`
	AdminEmail     string  `json:"admin_email" binding:"required,email"`
	AdminFirstName string  `json:"admin_first_name" binding:"required"`
	AdminLastName  string  `json:"admin_last_name" binding:"required"`
}

// UpdateCompanyRequest carries a partial update: nil fields keep the
// stored value.
type UpdateCompanyRequest struct {
	Name            *string `json:"name"`
	Email           *string `json:"email"`
	Website         *string `json:"website"`
	Industry        *string `json:"industry"`
	Size            *string `json:"size"`
	FoundedYear     *int    `json:"founded_year"`
	Description     *string `json:"description"`
	Mission         *string `json:"mission"`
	Culture         *string `json:"culture"`
	Benefits        *string `json:"benefits"`
	Headquarters    *string `json:"headquarters"`
	Locations       *string `json:"locations"`
	SocialLinkedin  *string `json:"social_linkedin"`
	SocialTwitter   *string `json:"social_twitter"`
	SocialFacebook  *string `json:"social_facebook"`
	SocialInstagram *string `json:"social_instagram"`
	IsFeatured      *bool   `json:"is_featured"`
}

type UpdateCompanyLogoRequest struct {
	Logo string `json:"logo" binding:"required"`
}

type ListCompaniesRequest struct {
	Industry   string `form:"industry"`
	Size       string `form:"size"`
	IsVerified *bool  `form:"is_verified"`
	IsFeatured *bool  `form:"is_featured"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}

type CompanyResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Slug            string  `json:"slug"`
	Email           string  `json:"email"`
	Logo            *string `json:"logo"`
	Website         *string `json:"website"`
	Industry        *string `json:"industry"`
	Size            *string `json:"size"`
	FoundedYear     *int    `json:"founded_year"`
	Description     *string `json:"description"`
	Mission         *string `json:"mission"`
	Culture         *string `json:"culture"`
	Benefits        *string `json:"benefits"`
	Headquarters    *string `json:"headquarters"`
	Locations       *string `json:"locations"`
	SocialLinkedin  *string `json:"social_linkedin"`
	SocialTwitter   *string `json:"social_twitter"`
	SocialFacebook  *string `json:"social_facebook"`
	SocialInstagram *string `json:"social_instagram"`
	IsVerified      bool    `json:"is_verified"`
	IsFeatured      bool    `json:"is_featured"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

func FromCompany(c *model.Company) CompanyResponse {
	return CompanyResponse{
		ID:              c.ID,
		Name:            c.Name,
		Slug:            c.Slug,
		Email:           c.Email,
		Logo:            c.Logo,
		Website:         c.Website,
		Industry:        c.Industry,
		Size:            c.Size,
		FoundedYear:     c.FoundedYear,
		Description:     c.Description,
		Mission:         c.Mission,
		Culture:         c.Culture,
		Benefits:        c.Benefits,
		Headquarters:    c.Headquarters,
		Locations:       c.Locations,
		SocialLinkedin:  c.SocialLinkedin,
		SocialTwitter:   c.SocialTwitter,
		SocialFacebook:  c.SocialFacebook,
		SocialInstagram: c.SocialInstagram,
		IsVerified:      c.IsVerified,
		IsFeatured:      c.IsFeatured,
		CreatedAt:       formatTime(c.CreatedAt),
		UpdatedAt:       formatTime(c.UpdatedAt),
	}
}

func FromCompanies(companies []model.Company) []CompanyResponse {
	out := make([]CompanyResponse, 0, len(companies))
	for i := range companies {
		out = append(out, FromCompany(&companies[i]))
	}
	return out
}
