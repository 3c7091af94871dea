package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/services"
)

func (h *Handler) ValidateRedeemCode(c *gin.Context) {
	var req ValidateCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	res, err := h.svc.Redeem.Validate(c.Request.Context(), req.Code, req.Items)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"valid":    true,
		"discount": res.Discount,
		"quote":    res.Quote,
	})
}

func (h *Handler) ListRedeemCodes(c *gin.Context) {
	codes, err := h.svc.Redeem.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, codes)
}

func (h *Handler) GenerateRedeemCodes(c *gin.Context) {
	var req services.GenerateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	codes, err := h.svc.Redeem.Generate(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, codes)
}

func (h *Handler) DeleteRedeemCode(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Redeem.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
