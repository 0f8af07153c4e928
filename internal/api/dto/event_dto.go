package dto

import "github.com/talenthub/jobboard-be/internal/api/model"

type CreateEventRequest struct {
	Title                string  `json:"title" binding:"required"`
	Description          string  `json:"description" binding:"required"`
	EventType            string  `json:"event_type" binding:"required"`
	Location             *string `json:"location"`
	IsVirtual            bool    `json:"is_virtual"`
	VirtualLink          *string `json:"virtual_link"`
	StartDate            string  `json:"start_date" binding:"required"`
	EndDate              string  `json:"end_date" binding:"required"`
	MaxParticipants      *int    `json:"max_participants"`
	RegistrationDeadline *string `json:"registration_deadline"`
}

type UpdateEventRequest struct {
	Title                *string `json:"title"`
	Description          *string `json:"description"`
	EventType            *string `json:"event_type"`
	Location             *string `json:"location"`
	IsVirtual            *bool   `json:"is_virtual"`
	VirtualLink          *string `json:"virtual_link"`
	StartDate            *string `json:"start_date"`
	EndDate              *string `json:"end_date"`
	MaxParticipants      *int    `json:"max_participants"`
	RegistrationDeadline *string `json:"registration_deadline"`
}

type ListEventsRequest struct {
	EventType   string `form:"event_type"`
	IsPublished *bool  `form:"is_published"`
	Page        int    `form:"page"`
	PerPage     int    `form:"per_page"`
}

type CreateRegistrationRequest struct {
	UserID int64   `json:"user_id" binding:"required"`
	Notes  *string `json:"notes"`
}

type UpdateRegistrationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type EventResponse struct {
	ID                   int64   `json:"id"`
	CompanyID            int64   `json:"company_id"`
	Title                string  `json:"title"`
	Description          string  `json:"description"`
	EventType            string  `json:"event_type"`
	Location             *string `json:"location"`
	IsVirtual            bool    `json:"is_virtual"`
	VirtualLink          *string `json:"virtual_link"`
	StartDate            string  `json:"start_date"`
	EndDate              string  `json:"end_date"`
	MaxParticipants      *int    `json:"max_participants"`
	RegistrationDeadline *string `json:"registration_deadline"`
	IsPublished          bool    `json:"is_published"`
	CreatedAt            string  `json:"created_at"`
	UpdatedAt            string  `json:"updated_at"`
}

func FromEvent(e *model.RecruitingEvent) EventResponse {
	return EventResponse{
		ID:                   e.ID,
		CompanyID:            e.CompanyID,
		Title:                e.Title,
		Description:          e.Description,
		EventType:            e.EventType,
		Location:             e.Location,
		IsVirtual:            e.IsVirtual,
		VirtualLink:          e.VirtualLink,
		StartDate:            formatTime(e.StartDate),
		EndDate:              formatTime(e.EndDate),
		MaxParticipants:      e.MaxParticipants,
		RegistrationDeadline: formatTimePtr(e.RegistrationDeadline),
		IsPublished:          e.IsPublished,
		CreatedAt:            formatTime(e.CreatedAt),
		UpdatedAt:            formatTime(e.UpdatedAt),
	}
}

func FromEvents(events []model.RecruitingEvent) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for i := range events {
		out = append(out, FromEvent(&events[i]))
	}
	return out
}

type RegistrationResponse struct {
	ID               int64              `json:"id"`
	EventID          int64              `json:"event_id"`
	UserID           int64              `json:"user_id"`
	Status           string             `json:"status"`
	RegistrationDate string             `json:"registration_date"`
	Notes            *string            `json:"notes"`
	User             *model.UserSummary `json:"user,omitempty"`
}

func FromRegistration(r *model.EventRegistration) RegistrationResponse {
	return RegistrationResponse{
		ID:               r.ID,
		EventID:          r.EventID,
		UserID:           r.UserID,
		Status:           r.Status,
		RegistrationDate: formatTime(r.RegistrationDate),
		Notes:            r.Notes,
	}
}

func FromRegistrationListItems(items []model.RegistrationListItem) []RegistrationResponse {
	out := make([]RegistrationResponse, 0, len(items))
	for i := range items {
		resp := FromRegistration(&items[i].EventRegistration)
		resp.User = items[i].User
		out = append(out, resp)
	}
	return out
}
