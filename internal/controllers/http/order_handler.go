package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	"storefront/internal/repository"
	"storefront/internal/services"
)

func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	in := services.CreateOrderInput{
		Customer: domain.Customer{
			Name:  req.CustomerName,
			Email: req.CustomerEmail,
			Phone: req.CustomerPhone,
		},
		Items:         req.Items,
		PaymentMethod: req.PaymentMethod,
		RedeemCode:    req.RedeemCode,
		Total:         req.Total,
	}
	if u := currentUser(c); u != nil {
		id := u.ID
		in.UserID = &id
	}

	order, err := h.svc.Orders.CreateOrder(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, CreateOrderResponse{
		ID:       order.ID,
		Subtotal: order.Subtotal,
		Discount: order.DiscountAmount,
		VAT:      order.VATAmount,
		Total:    order.Total,
		Status:   order.Status,
	})
}

// GetOrder shows an order to its owner, to an admin, or to a guest who knows
// the email the order was placed with.
func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	order, err := h.svc.Orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if !canViewOrder(c, order, c.Query("email")) {
		h.writeError(c, &domain.NotFoundError{Resource: "order", ID: id})
		return
	}
	c.JSON(http.StatusOK, order)
}

// canViewOrder reports whether the caller may see or pay the order: an admin,
// the signed-in owner, or anyone who knows the email it was placed with.
func canViewOrder(c *gin.Context, order *domain.Order, email string) bool {
	if currentAdmin(c) != nil {
		return true
	}
	if u := currentUser(c); u != nil {
		if order.UserID != nil && *order.UserID == u.ID {
			return true
		}
		if strings.EqualFold(u.Email, order.CustomerEmail) {
			return true
		}
	}
	email = strings.TrimSpace(email)
	return email != "" && strings.EqualFold(email, order.CustomerEmail)
}

func (h *Handler) MyOrders(c *gin.Context) {
	orders, err := h.svc.Orders.ListMyOrders(c.Request.Context(), currentUser(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) AdminListOrders(c *gin.Context) {
	filter := repository.OrderFilter{
		Status: domain.OrderStatus(c.Query("status")),
		Email:  strings.ToLower(strings.TrimSpace(c.Query("email"))),
	}
	var ok bool
	if filter.Limit, ok = queryInt(c, "limit", 50); !ok {
		return
	}
	if filter.Offset, ok = queryInt(c, "offset", 0); !ok {
		return
	}

	orders, err := h.svc.Orders.ListOrders(c.Request.Context(), filter)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	order, err := h.svc.Orders.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// queryInt parses a non-negative integer query parameter, answering 400 when
// it is not one.
func queryInt(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: name + " must be a non-negative integer", Field: name})
		return 0, false
	}
	return n, true
}
