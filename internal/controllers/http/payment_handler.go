package http

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

// SubmitPayment accepts a payment proof either as JSON or as a multipart form
// carrying the receipt file. Only an admin may record a payment as completed;
// anyone else must own the order or know the email it was placed with.
func (h *Handler) SubmitPayment(c *gin.Context) {
	var (
		payment *domain.Payment
		receipt *multipart.FileHeader
		email   string
		err     error
	)
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		payment, receipt, err = paymentFromForm(c)
		email = c.PostForm("email")
	} else {
		var req PaymentRequest
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
			writeBindError(c, bindErr)
			return
		}
		payment = req.toPayment()
		email = req.Email
	}
	if err != nil {
		h.writeError(c, err)
		return
	}

	if currentAdmin(c) == nil {
		if err := h.authorizePayment(c, payment.OrderID, email); err != nil {
			h.writeError(c, err)
			return
		}
		payment.Status = domain.PaymentPending
	}

	if receipt != nil {
		if h.receipts == nil {
			h.writeError(c, errors.New("receipt uploads are not configured"))
			return
		}
		rel, err := h.receipts.Save(receipt)
		if err != nil {
			h.writeError(c, err)
			return
		}
		payment.ReceiptPath = rel
	}

	res, err := h.svc.Payments.SubmitPayment(c.Request.Context(), payment)
	if err != nil {
		if payment.ReceiptPath != "" {
			if rmErr := h.receipts.Remove(payment.ReceiptPath); rmErr != nil {
				h.logger.Warn().Err(rmErr).Str("path", payment.ReceiptPath).Msg("failed to remove orphaned receipt")
			}
		}
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// authorizePayment answers an unknown order and someone else's order alike,
// so order ids cannot be probed through payments.
func (h *Handler) authorizePayment(c *gin.Context, orderID uint64, email string) error {
	order, err := h.svc.Orders.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		return err
	}
	if !canViewOrder(c, order, email) {
		return &domain.NotFoundError{Resource: "order", ID: orderID}
	}
	return nil
}

// paymentFromForm reads the multipart fields. The receipt is only returned for
// methods that keep one.
func paymentFromForm(c *gin.Context) (*domain.Payment, *multipart.FileHeader, error) {
	orderID, err := strconv.ParseUint(c.PostForm("order_id"), 10, 64)
	if err != nil || orderID == 0 {
		return nil, nil, domain.NewValidationError("order_id", "must be a positive integer")
	}
	p := &domain.Payment{
		OrderID:       orderID,
		PaymentMethod: domain.PaymentMethod(c.PostForm("payment_method")),
		TransactionID: c.PostForm("transaction_id"),
		SenderName:    c.PostForm("sender_name"),
		PayerName:     c.PostForm("payer_name"),
		PayerCountry:  c.PostForm("payer_country"),
		PayerAddress:  c.PostForm("payer_address"),
		PayerPhone:    c.PostForm("payer_phone"),
		Status:        domain.PaymentStatus(c.PostForm("status")),
	}
	if raw := strings.TrimSpace(c.PostForm("amount")); raw != "" {
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, nil, domain.NewValidationError("amount", "must be a number")
		}
		p.Amount = amount
	}

	fh, err := c.FormFile("receipt")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		return p, nil, nil
	case err != nil:
		return nil, nil, domain.NewValidationError("receipt", err.Error())
	case p.PaymentMethod.Kind() != domain.KindQR:
		// other methods do not keep a receipt
		return p, nil, nil
	}
	return p, fh, nil
}

func (h *Handler) AdminListPayments(c *gin.Context) {
	var orderID uint64
	if raw := c.Query("order_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: "order_id must be a positive integer", Field: "order_id"})
			return
		}
		orderID = id
	}
	payments, err := h.svc.Payments.ListPayments(c.Request.Context(), orderID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

func (h *Handler) ConfirmPayment(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	res, err := h.svc.Payments.ConfirmPayment(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) PaymentReceipt(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	payment, err := h.svc.Payments.GetPayment(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if payment.ReceiptPath == "" || h.receipts == nil {
		h.writeError(c, &domain.NotFoundError{Resource: "receipt", ID: id})
		return
	}
	path, err := h.receipts.Path(payment.ReceiptPath)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.File(path)
}
