package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"storefront/internal/domain"
)

const (
	headerRequestID = "X-Request-ID"

	ctxRequestID = "request_id"
	ctxUser      = "user"
	ctxAdmin     = "admin"

	userCookie  = "session_token"
	adminCookie = "admin_token"
)

// RequestID keeps the caller's request id or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxRequestID, id)
		c.Header(headerRequestID, id)
		c.Next()
	}
}

// AccessLog logs one line per request once the handler chain is done.
func AccessLog(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		var evt *zerolog.Event
		switch {
		case status >= http.StatusInternalServerError:
			evt = logger.Error()
		case status >= http.StatusBadRequest:
			evt = logger.Warn()
		default:
			evt = logger.Info()
		}

		evt = evt.
			Str("request_id", requestID(c)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP())
		if u := currentUser(c); u != nil {
			evt = evt.Uint64("user_id", u.ID)
		}
		if err := c.Errors.Last(); err != nil {
			evt = evt.Str("error", err.Error())
		}
		evt.Msg("request completed")
	}
}

func Recovery(logger zerolog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, rec any) {
		logger.Error().
			Str("request_id", requestID(c)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("panic", fmt.Sprint(rec)).
			Msg("panic recovered")
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	})
}

func requestID(c *gin.Context) string {
	if id := c.GetString(ctxRequestID); id != "" {
		return id
	}
	return "unknown"
}

// loadSession resolves the user and admin cookies when present. A stale or
// unknown token is treated as signed out.
func (h *Handler) loadSession(c *gin.Context) {
	ctx := c.Request.Context()
	if token, err := c.Cookie(userCookie); err == nil && token != "" {
		user, err := h.svc.Auth.Authenticate(ctx, token)
		switch {
		case err == nil:
			c.Set(ctxUser, user)
		case !errors.Is(err, domain.ErrUnauthorized):
			h.writeError(c, err)
			return
		}
	}
	if token, err := c.Cookie(adminCookie); err == nil && token != "" {
		user, err := h.svc.Auth.Authenticate(ctx, token)
		switch {
		case err == nil && user.IsAdmin():
			c.Set(ctxAdmin, user)
		case err != nil && !errors.Is(err, domain.ErrUnauthorized):
			h.writeError(c, err)
			return
		}
	}
	c.Next()
}

func (h *Handler) requireUser(c *gin.Context) {
	if currentUser(c) == nil {
		h.writeError(c, domain.ErrUnauthorized)
		return
	}
	c.Next()
}

func (h *Handler) requireAdmin(c *gin.Context) {
	if currentAdmin(c) == nil {
		h.writeError(c, domain.ErrUnauthorized)
		return
	}
	c.Next()
}

func currentUser(c *gin.Context) *domain.User {
	if v, ok := c.Get(ctxUser); ok {
		if u, ok := v.(*domain.User); ok {
			return u
		}
	}
	return nil
}

func currentAdmin(c *gin.Context) *domain.User {
	if v, ok := c.Get(ctxAdmin); ok {
		if u, ok := v.(*domain.User); ok {
			return u
		}
	}
	return nil
}

func (h *Handler) setSessionCookie(c *gin.Context, name string, session *domain.Session) {
	maxAge := int(time.Until(session.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, session.Token, maxAge, "/", "", h.cookies.Secure, true)
}

func (h *Handler) clearSessionCookie(c *gin.Context, name string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, "", -1, "/", "", h.cookies.Secure, true)
}

// idParam parses a numeric path parameter, answering 400 when it is not one.
func idParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: name + " must be a positive integer", Field: name})
		return 0, false
	}
	return id, true
}
