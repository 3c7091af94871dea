package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/services"
)

func (h *Handler) Register(c *gin.Context) {
	var req services.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	user, session, err := h.svc.Auth.Register(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.setSessionCookie(c, userCookie, session)
	c.JSON(http.StatusCreated, AuthResponse{User: user})
}

func (h *Handler) Login(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	user, session, err := h.svc.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.setSessionCookie(c, userCookie, session)
	c.JSON(http.StatusOK, AuthResponse{User: user})
}

func (h *Handler) Logout(c *gin.Context) {
	h.endSession(c, userCookie)
}

func (h *Handler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, AuthResponse{User: currentUser(c)})
}

func (h *Handler) AdminLogin(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	user, session, err := h.svc.Auth.LoginAdmin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.setSessionCookie(c, adminCookie, session)
	c.JSON(http.StatusOK, AuthResponse{User: user})
}

func (h *Handler) AdminLogout(c *gin.Context) {
	h.endSession(c, adminCookie)
}

func (h *Handler) endSession(c *gin.Context, cookie string) {
	if token, err := c.Cookie(cookie); err == nil {
		if err := h.svc.Auth.Logout(c.Request.Context(), token); err != nil {
			h.writeError(c, err)
			return
		}
	}
	h.clearSessionCookie(c, cookie)
	c.Status(http.StatusNoContent)
}
