package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
)

func (s PaymentStatus) Valid() bool {
	return s == PaymentPending || s == PaymentCompleted
}

// OrderStatusAfter maps a payment status onto the status the order moves to.
func OrderStatusAfter(s PaymentStatus) OrderStatus {
	if s == PaymentCompleted {
		return StatusPaid
	}
	return StatusPaymentPending
}

// NextStatusForPayment decides the order status once a payment is recorded
// against an order currently in status current. Settled orders are never
// moved back to payment_pending.
func NextStatusForPayment(current OrderStatus, s PaymentStatus) (OrderStatus, error) {
	if current == StatusCancelled {
		return current, &ConflictError{Message: "order is cancelled"}
	}
	if current.IsSettled() {
		return current, nil
	}
	return OrderStatusAfter(s), nil
}

type Payment struct {
	ID            uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID       uint64          `json:"order_id" gorm:"not null;index"`
	PaymentMethod PaymentMethod   `json:"payment_method" gorm:"type:varchar(32);not null"`
	TransactionID string          `json:"transaction_id,omitempty" gorm:"type:varchar(128)"`
	SenderName    string          `json:"sender_name,omitempty" gorm:"type:varchar(255)"`
	PayerName     string          `json:"payer_name,omitempty" gorm:"type:varchar(255)"`
	PayerCountry  string          `json:"payer_country,omitempty" gorm:"type:varchar(100)"`
	PayerAddress  string          `json:"payer_address,omitempty" gorm:"type:text"`
	PayerPhone    string          `json:"payer_phone,omitempty" gorm:"type:varchar(64)"`
	ReceiptPath   string          `json:"receipt_path,omitempty" gorm:"type:varchar(512)"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	Status        PaymentStatus   `json:"status" gorm:"type:varchar(32);not null"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Normalize trims input and drops fields that do not belong to the payment
// method, so the stored row only carries what that method collects.
func (p *Payment) Normalize() {
	p.TransactionID = strings.TrimSpace(p.TransactionID)
	p.SenderName = strings.TrimSpace(p.SenderName)
	p.PayerName = strings.TrimSpace(p.PayerName)
	p.PayerCountry = strings.TrimSpace(p.PayerCountry)
	p.PayerAddress = strings.TrimSpace(p.PayerAddress)
	p.PayerPhone = strings.TrimSpace(p.PayerPhone)

	switch p.PaymentMethod.Kind() {
	case KindWire:
		p.PayerName, p.PayerCountry, p.PayerAddress, p.PayerPhone = "", "", "", ""
		p.ReceiptPath = ""
	case KindMoneyTransfer:
		p.ReceiptPath = ""
	case KindQR:
		p.SenderName = ""
		p.PayerName, p.PayerCountry, p.PayerAddress, p.PayerPhone = "", "", "", ""
	}
	if p.Status == "" {
		p.Status = PaymentPending
	}
}

func (p *Payment) Validate() error {
	if p.OrderID == 0 {
		return NewValidationError("order_id", "is required")
	}
	if !p.PaymentMethod.Valid() {
		return NewValidationError("payment_method", "must be one of wise, western_union, promptpay")
	}
	if !p.Status.Valid() {
		return NewValidationError("status", "must be pending or completed")
	}
	if p.Amount.IsNegative() {
		return NewValidationError("amount", "must not be negative")
	}

	switch p.PaymentMethod.Kind() {
	case KindWire:
		if p.TransactionID == "" {
			return NewValidationError("transaction_id", "is required")
		}
		if p.SenderName == "" {
			return NewValidationError("sender_name", "is required")
		}
	case KindMoneyTransfer:
		if p.TransactionID == "" {
			return NewValidationError("transaction_id", "is required")
		}
		if p.SenderName == "" {
			return NewValidationError("sender_name", "is required")
		}
		if p.PayerName == "" {
			return NewValidationError("payer_name", "is required")
		}
		if p.PayerCountry == "" {
			return NewValidationError("payer_country", "is required")
		}
		if p.PayerAddress == "" {
			return NewValidationError("payer_address", "is required")
		}
	case KindQR:
		if p.ReceiptPath == "" {
			return NewValidationError("receipt", "a receipt image is required")
		}
	}
	return nil
}
