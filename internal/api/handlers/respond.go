package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"fleet-management-backend/internal/auth"
	"fleet-management-backend/internal/authz"
	apperrors "fleet-management-backend/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrorResponse represents a standard API error response
type ErrorResponse struct {
	Error string `json:"error" example:"error message"`
}

// writeError maps the service error taxonomy onto HTTP status codes.
// Unrecognized errors are logged and surfaced as an opaque 500.
func writeError(c *gin.Context, err error) {
	var bindErrs validator.ValidationErrors

	switch {
	case apperrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case apperrors.IsAlreadyExists(err):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case apperrors.IsAuthorization(err):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case apperrors.IsAuthentication(err):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
	case apperrors.IsValidation(err), errors.As(err, &bindErrs):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrInvalidResetToken):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("unhandled error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

// actorFromContext pulls the authenticated actor set by the auth
// middleware. Reaching a handler without one means the route is
// misconfigured; treat it as unauthenticated.
func actorFromContext(c *gin.Context) (authz.Actor, bool) {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
	}
	return actor, ok
}

// parseID parses the :id path parameter as a UUID
func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

// pagination reads the page and page_size query parameters. Out-of-range
// values are normalized by the service layer.
func pagination(c *gin.Context) (int, int) {
	page := queryInt(c, "page", 1)
	pageSize := queryInt(c, "page_size", 20)
	return page, pageSize
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
