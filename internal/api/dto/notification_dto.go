package dto

import "github.com/talenthub/jobboard-be/internal/api/model"

type ListNotificationsRequest struct {
	IsRead  *bool `form:"is_read"`
	Page    int   `form:"page"`
	PerPage int   `form:"per_page"`
}

type NotificationResponse struct {
	ID            int64  `json:"id"`
	RecipientType string `json:"recipient_type"`
	RecipientID   int64  `json:"recipient_id"`
	EventType     string `json:"event_type"`
	SubjectID     int64  `json:"subject_id"`
	Body          string `json:"body"`
	IsRead        bool   `json:"is_read"`
	CreatedAt     string `json:"created_at"`
}

func FromNotification(n *model.Notification) NotificationResponse {
	return NotificationResponse{
		ID:            n.ID,
		RecipientType: n.RecipientType,
		RecipientID:   n.RecipientID,
		EventType:     n.EventType,
		SubjectID:     n.SubjectID,
		Body:          n.Body,
		IsRead:        n.IsRead,
		CreatedAt:     formatTime(n.CreatedAt),
	}
}

func FromNotifications(notifications []model.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(notifications))
	for i := range notifications {
		out = append(out, FromNotification(&notifications[i]))
	}
	return out
}
