package http

import (
	"net/http"

	"channelhub/internal/application/usecase"
	"channelhub/internal/infrastructure/monitoring"
	"channelhub/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserHandler struct {
	uc      *usecase.MembershipUseCase
	metrics *monitoring.PrometheusCollector
	log     *zap.Logger
}

func NewUserHandler(uc *usecase.MembershipUseCase, metrics *monitoring.PrometheusCollector, log *zap.Logger) *UserHandler {
	return &UserHandler{uc: uc, metrics: metrics, log: log}
}

type createUserRequest struct {
	Email          string `json:"email"`
	Username       string `json:"username"`
	HashedPassword string `json:"hashed_password"`
	IsActive       *bool  `json:"is_active"`
}

type updateUserRequest struct {
	Email          *string `json:"email"`
	Username       *string `json:"username"`
	HashedPassword *string `json:"hashed_password"`
	IsActive       *bool   `json:"is_active"`
}

// GET /users/all
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.uc.ListUsers(c.Request.Context())
	if err != nil {
		HandleServiceError(c, h.log, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"users": users})
}

// GET /users/:user_id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		ErrorResponse(c, http.StatusNotFound, "user not found")
		return
	}
	user, err := h.uc.GetUser(c.Request.Context(), id)
	if err != nil {
		HandleServiceError(c, h.log, err)
		return
	}
	SuccessResponse(c, http.StatusOK, user)
}

// POST /users/
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}
	user, err := h.uc.CreateUser(c.Request.Context(), usecase.CreateUserInput{
		Email:          req.Email,
		Username:       req.Username,
		HashedPassword: req.HashedPassword,
		IsActive:       req.IsActive,
	})
	if err != nil {
		HandleServiceError(c, h.log, err)
		return
	}
	h.metrics.RecordUserCreated()
	SuccessResponse(c, http.StatusCreated, user)
}

// PUT /users/:user_id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		ErrorResponse(c, http.StatusNotFound, "user not found")
		return
	}
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}
	user, err := h.uc.UpdateUser(c.Request.Context(), id, usecase.UpdateUserInput{
		Email:          req.Email,
		Username:       req.Username,
		HashedPassword: req.HashedPassword,
		IsActive:       req.IsActive,
	})
	if err != nil {
		HandleServiceError(c, h.log, err)
		return
	}
	SuccessResponse(c, http.StatusOK, user)
}

// DELETE /users/:user_id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		ErrorResponse(c, http.StatusNotFound, "user not found")
		return
	}
	user, err := h.uc.DeleteUser(c.Request.Context(), id)
	if err != nil {
		HandleServiceError(c, h.log, err)
		return
	}
	SuccessResponse(c, http.StatusOK, user)
}

// PUT /users/add_to_group/:user_id?channel_id=...
func (h *UserHandler) JoinChannel(c *gin.Context) {
	userID, channelID, ok := h.membershipIDs(c)
	if !ok {
		return
	}
	if err := h.uc.JoinChannel(c.Request.Context(), userID, channelID); err != nil {
		HandleServiceError(c, h.log, err)
		return
	}
	h.metrics.RecordMembershipCreated()
	SuccessResponse(c, http.StatusOK, gin.H{"ok": true})
}

// DELETE /users/remove_from_group/:user_id?channel_id=...
func (h *UserHandler) LeaveChannel(c *gin.Context) {
	userID, channelID, ok := h.membershipIDs(c)
	if !ok {
		return
	}
	if err := h.uc.LeaveChannel(c.Request.Context(), userID, channelID); err != nil {
		HandleServiceError(c, h.log, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"ok": true})
}

func (h *UserHandler) membershipIDs(c *gin.Context) (userID, channelID uuid.UUID, ok bool) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		ErrorResponse(c, http.StatusNotFound, "user not found")
		return uuid.Nil, uuid.Nil, false
	}
	raw := c.Query("channel_id")
	if raw == "" {
		HandleServiceError(c, h.log, validation.NewFieldError("channel_id", "channel_id is required"))
		return uuid.Nil, uuid.Nil, false
	}
	channelID, err = uuid.Parse(raw)
	if err != nil {
		ErrorResponse(c, http.StatusNotFound, "channel does not exist")
		return uuid.Nil, uuid.Nil, false
	}
	return userID, channelID, true
}
