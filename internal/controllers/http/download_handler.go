package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Download redirects a buyer to the product file.
func (h *Handler) Download(c *gin.Context) {
	id, ok := idParam(c, "productId")
	if !ok {
		return
	}
	url, err := h.svc.Downloads.Resolve(c.Request.Context(), currentUser(c), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Redirect(http.StatusFound, url)
}
