package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/talenthub/jobboard-be/internal/api/dto"
	"github.com/talenthub/jobboard-be/internal/api/model"
)

type UserStore interface {
	GetUser(ctx context.Context, id int64) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	CreateUser(ctx context.Context, user *model.User) error
}

type UserHandler struct {
	store  UserStore
	logger *slog.Logger
}

func NewUserHandler(store UserStore, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		store:  store,
		logger: logger.With(slog.String("handler", "user")),
	}
}

// GetUser handles GET /users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	user, err := h.store.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromUser(user))
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.store.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	items := dto.FromUsers(users)
	c.JSON(http.StatusOK, dto.NewListResponse(items, len(items), 1, len(items)))
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user := &model.User{
		Username:       req.Username,
		Email:          req.Email,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Bio:            req.Bio,
		ProfilePicture: req.ProfilePicture,
	}
	if err := h.store.CreateUser(c.Request.Context(), user); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.Info("User created", slog.Int64("user_id", user.ID))
	c.JSON(http.StatusCreated, dto.FromUser(user))
}
