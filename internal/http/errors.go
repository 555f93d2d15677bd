package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"article-hub/internal/auth"
	"article-hub/internal/service"
)

// respondError maps domain errors onto status codes and writes a
// {"message": ...} body. Unexpected errors are logged and hidden from the client.
func (h *Handler) respondError(c *gin.Context, err error) {
	status, message := http.StatusInternalServerError, "internal server error"
	var tooLarge *http.MaxBytesError

	switch {
	case errors.Is(err, service.ErrInvalidInput):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrInvalidCredentials):
		status, message = http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, auth.ErrMissingToken):
		status, message = http.StatusUnauthorized, "Missing authorization token"
	case errors.Is(err, auth.ErrInvalidToken):
		status, message = http.StatusUnauthorized, "Invalid or expired token"
	case errors.Is(err, service.ErrNotFound):
		status, message = http.StatusNotFound, err.Error()
	case errors.Is(err, service.ErrConflict):
		status, message = http.StatusConflict, err.Error()
	case errors.As(err, &tooLarge):
		status, message = http.StatusRequestEntityTooLarge, "upload exceeds "+strconv.FormatInt(tooLarge.Limit, 10)+" bytes"
	default:
		h.logger.WithField("request_id", c.GetString(requestIDKey)).
			WithError(err).
			Errorf("%s %s", c.Request.Method, c.Request.URL.Path)
	}

	c.JSON(status, gin.H{"message": message})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": message})
}

func parseID(c *gin.Context, kind string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid "+kind+" id")
		return 0, false
	}
	return id, true
}
