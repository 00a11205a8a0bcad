package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"campusnet/internal/service"
	"campusnet/pkg/response"

	"github.com/gin-gonic/gin"
)

// respondError translates a domain error into the stable wire code.
// Storage failures become a generic 500 without internal detail.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidOperation):
		response.Error(c, http.StatusBadRequest, response.CodeInvalidOperation, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, err.Error())
	case errors.Is(err, service.ErrForbidden):
		response.Error(c, http.StatusForbidden, response.CodeForbidden, err.Error())
	case errors.Is(err, service.ErrNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, err.Error())
	case errors.Is(err, service.ErrConflict), errors.Is(err, service.ErrEmailTaken):
		response.Error(c, http.StatusConflict, response.CodeConflict, err.Error())
	case errors.Is(err, service.ErrInvalidState):
		response.Error(c, http.StatusConflict, response.CodeInvalidState, err.Error())
	default:
		slog.Error("Request failed", "error", err, "path", c.FullPath())
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "internal server error")
	}
}
