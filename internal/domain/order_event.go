package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventOrderCreated       = "order.created"
	EventPaymentSubmitted   = "payment.submitted"
	EventOrderStatusChanged = "order.status_changed"
)

type OrderCreatedEvent struct {
	OrderID       uint64          `json:"orderId"`
	CustomerName  string          `json:"customerName"`
	CustomerEmail string          `json:"customerEmail"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	ItemCount     int             `json:"itemCount"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type PaymentSubmittedEvent struct {
	PaymentID     uint64          `json:"paymentId"`
	OrderID       uint64          `json:"orderId"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Amount        decimal.Decimal `json:"amount"`
	Status        PaymentStatus   `json:"status"`
	OrderStatus   OrderStatus     `json:"orderStatus"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type OrderStatusChangedEvent struct {
	OrderID   uint64      `json:"orderId"`
	From      OrderStatus `json:"from"`
	To        OrderStatus `json:"to"`
	ChangedAt time.Time   `json:"changedAt"`
}
