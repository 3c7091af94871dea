package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/repository"
)

func productFilter(c *gin.Context) repository.ProductFilter {
	return repository.ProductFilter{
		Category: c.Query("category"),
		Search:   c.Query("q"),
	}
}

func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.svc.Catalog.ListPublic(c.Request.Context(), productFilter(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	product, err := h.svc.Catalog.GetPublic(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) AdminListProducts(c *gin.Context) {
	filter := productFilter(c)
	filter.ActiveOnly = c.Query("active") == "true"
	products, err := h.svc.Catalog.List(c.Request.Context(), filter)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	product := req.toProduct()
	if err := h.svc.Catalog.Create(c.Request.Context(), product); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	product := req.toProduct()
	product.ID = id
	if err := h.svc.Catalog.Update(c.Request.Context(), product); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Catalog.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
