package dto

import "github.com/talenthub/jobboard-be/internal/api/model"

type CreateMediaRequest struct {
	MediaType   string  `json:"media_type" binding:"required"`
	URL         string  `json:"url" binding:"required"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	IsFeatured  bool    `json:"is_featured"`
	Position    int     `json:"position"`
}

type UpdateMediaRequest struct {
	MediaType   *string `json:"media_type"`
	URL         *string `json:"url"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	IsFeatured  *bool   `json:"is_featured"`
	Position    *int    `json:"position"`
}

type MediaResponse struct {
	ID          int64   `json:"id"`
	CompanyID   int64   `json:"company_id"`
	MediaType   string  `json:"media_type"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	URL         string  `json:"url"`
	IsFeatured  bool    `json:"is_featured"`
	Position    int     `json:"position"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func FromMedia(m *model.CompanyMedia) MediaResponse {
	return MediaResponse{
		ID:          m.ID,
		CompanyID:   m.CompanyID,
		MediaType:   m.MediaType,
		Title:       m.Title,
		Description: m.Description,
		URL:         m.URL,
		IsFeatured:  m.IsFeatured,
		Position:    m.Position,
		CreatedAt:   formatTime(m.CreatedAt),
		UpdatedAt:   formatTime(m.UpdatedAt),
	}
}

func FromMediaItems(items []model.CompanyMedia) []MediaResponse {
	out := make([]MediaResponse, 0, len(items))
	for i := range items {
		out = append(out, FromMedia(&items[i]))
	}
	return out
}
