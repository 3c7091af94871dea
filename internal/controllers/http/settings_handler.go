package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
)

func (h *Handler) ListPaymentSettings(c *gin.Context) {
	settings, err := h.svc.Settings.ListEnabled(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *Handler) AdminListPaymentSettings(c *gin.Context) {
	settings, err := h.svc.Settings.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *Handler) UpdatePaymentSetting(c *gin.Context) {
	var req PaymentSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	method := domain.PaymentMethod(c.Param("method"))
	setting, err := h.svc.Settings.Upsert(c.Request.Context(), method, *req.Enabled, req.Details)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, setting)
}
