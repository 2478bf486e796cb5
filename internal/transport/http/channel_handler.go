package http

import (
	"net/http"

	"channelhub/internal/application/usecase"
	"channelhub/internal/infrastructure/monitoring"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ChannelHandler struct {
	uc      *usecase.MembershipUseCase
	metrics *monitoring.PrometheusCollector
	log     *zap.Logger
}

func NewChannelHandler(uc *usecase.MembershipUseCase, metrics *monitoring.PrometheusCollector, log *zap.Logger) *ChannelHandler {
	return &ChannelHandler{uc: uc, metrics: metrics, log: log}
}

type createChannelRequest struct {
	Name string `json:"name"`
}

// GET /channels/all
func (h *ChannelHandler) ListChannels(c *gin.Context) {
	channels, err := h.uc.ListChannels(c.Request.Context())
	if err != nil {
		HandleServiceError(c, h.log, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"channels": channels})
}

// GET /channels/:channel_id
func (h *ChannelHandler) GetChannel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("channel_id"))
	if err != nil {
		ErrorResponse(c, http.StatusNotFound, "channel does not exist")
		return
	}
	channel, err := h.uc.GetChannel(c.Request.Context(), id)
	if err != nil {
		HandleServiceError(c, h.log, err)
		return
	}
	SuccessResponse(c, http.StatusOK, channel)
}

// POST /channels/add
func (h *ChannelHandler) CreateChannel(c *gin.Context) {
	var req createChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}
	channel, err := h.uc.CreateChannel(c.Request.Context(), usecase.CreateChannelInput{Name: req.Name})
	if err != nil {
		HandleServiceError(c, h.log, err)
		return
	}
	h.metrics.RecordChannelCreated()
	SuccessResponse(c, http.StatusCreated, channel)
}
