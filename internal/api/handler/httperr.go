package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/talenthub/jobboard-be/internal/api/domain"
)

// respondError maps a domain error onto the wire taxonomy: not-found
// sentinels become 404, validation failures 400, uniqueness and
// lifecycle conflicts 409, participant mismatches 403, everything
// else 500 with the detail kept out of the response body.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	var convExists *domain.ConversationExistsError
	if errors.As(err, &convExists) {
		c.JSON(http.StatusConflict, gin.H{
			"error":           convExists.Error(),
			"conversation_id": convExists.ConversationID,
		})
		return
	}

	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error()})
		return
	}

	switch {
	case isNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidParty),
		errors.Is(err, domain.ErrLastAdmin):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrSenderNotParticipant):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, domain.ErrDuplicateApplication),
		errors.Is(err, domain.ErrDuplicateRegistration),
		errors.Is(err, domain.ErrEventFull),
		errors.Is(err, domain.ErrInvoiceNotPending):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("Request failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func isNotFound(err error) bool {
	for _, sentinel := range []error{
		domain.ErrUserNotFound,
		domain.ErrCompanyNotFound,
		domain.ErrCompanyUserNotFound,
		domain.ErrJobPostingNotFound,
		domain.ErrApplicationNotFound,
		domain.ErrConversationNotFound,
		domain.ErrMessageNotFound,
		domain.ErrEventNotFound,
		domain.ErrRegistrationNotFound,
		domain.ErrInvoiceNotFound,
		domain.ErrReviewNotFound,
		domain.ErrMediaNotFound,
		domain.ErrNotificationNotFound,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
}
