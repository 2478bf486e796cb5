package http

import (
	"errors"
	"net/http"

	"channelhub/internal/domain"
	"channelhub/internal/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HandleServiceError translates business errors to status codes: validation
// to 400, absence to 404, state conflicts to 409, everything else to a
// logged 500.
func HandleServiceError(c *gin.Context, log *zap.Logger, err error) {
	var fieldErr *validation.FieldError
	switch {
	case errors.As(err, &fieldErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": fieldErr.Reason, "field": fieldErr.Field})
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrChannelNotFound),
		errors.Is(err, domain.ErrMembershipNotFound),
		errors.Is(err, domain.ErrMemberReferenceGone):
		ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUserAlreadyExists),
		errors.Is(err, domain.ErrChannelAlreadyExists),
		errors.Is(err, domain.ErrAlreadyMember):
		ErrorResponse(c, http.StatusConflict, err.Error())
	default:
		log.Error("unhandled service error", zap.Error(err), zap.String("path", c.FullPath()))
		ErrorResponse(c, http.StatusInternalServerError, "an unexpected error occurred")
	}
}
