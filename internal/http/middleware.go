package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"article-hub/internal/auth"
	"article-hub/internal/metrics"
	"article-hub/internal/repository"
)

const (
	claimsKey       = "claims"
	requestIDKey    = "request_id"
	requestIDHeader = "X-Request-ID"
)

func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		latency := time.Since(start)
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		metrics.HTTPLatency.WithLabelValues(c.Request.Method, route).Observe(latency.Seconds())

		entry := h.logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     status,
			"latency":    latency.String(),
		})
		switch {
		case status >= http.StatusInternalServerError:
			entry.Warn("request failed")
		default:
			entry.Debug("request handled")
		}
	}
}

// requireAuth verifies the bearer token and reloads the account it names, so
// role changes and deletions apply to tokens that are already issued.
func (h *Handler) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.BearerToken(c.GetHeader("Authorization"))
		if err != nil {
			h.respondError(c, err)
			c.Abort()
			return
		}
		claims, err := h.tokens.Verify(token)
		if err != nil {
			h.respondError(c, err)
			c.Abort()
			return
		}

		user, err := h.users.GetByID(c.Request.Context(), claims.ID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				err = auth.ErrInvalidToken
			}
			h.respondError(c, err)
			c.Abort()
			return
		}

		claims.Username = user.Username
		claims.Role = user.Role
		c.Set(claimsKey, claims)
		c.Next()
	}
}

func requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := currentClaims(c)
		if claims == nil || !claims.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Admin access required"})
			return
		}
		c.Next()
	}
}

func (h *Handler) limitBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.maxUploadBytes > 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
		}
		c.Next()
	}
}

func currentClaims(c *gin.Context) *auth.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}
