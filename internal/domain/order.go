package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusPaymentPending OrderStatus = "payment_pending"
	StatusPaid           OrderStatus = "paid"
	StatusCompleted      OrderStatus = "completed"
	StatusCancelled      OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPaymentPending, StatusPaid, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsSettled reports whether stock has already been taken for the order.
func (s OrderStatus) IsSettled() bool {
	return s == StatusPaid || s == StatusCompleted
}

type PaymentMethod string

const (
	MethodWise         PaymentMethod = "wise"
	MethodWesternUnion PaymentMethod = "western_union"
	MethodPromptPay    PaymentMethod = "promptpay"
)

type PaymentKind string

const (
	KindWire          PaymentKind = "wire"
	KindMoneyTransfer PaymentKind = "money_transfer"
	KindQR            PaymentKind = "qr"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodWise, MethodWesternUnion, MethodPromptPay:
		return true
	}
	return false
}

func (m PaymentMethod) Kind() PaymentKind {
	switch m {
	case MethodWesternUnion:
		return KindMoneyTransfer
	case MethodPromptPay:
		return KindQR
	default:
		return KindWire
	}
}

type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type Order struct {
	ID             uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID         *uint64         `json:"user_id,omitempty" gorm:"index"`
	CustomerName   string          `json:"customer_name" gorm:"type:varchar(255);not null"`
	CustomerEmail  string          `json:"customer_email" gorm:"type:varchar(255);not null;index"`
	CustomerPhone  string          `json:"customer_phone" gorm:"type:varchar(64)"`
	Subtotal       decimal.Decimal `json:"subtotal" gorm:"type:decimal(12,2);not null"`
	DiscountAmount decimal.Decimal `json:"discount_amount" gorm:"type:decimal(12,2);not null"`
	VATAmount      decimal.Decimal `json:"vat_amount" gorm:"column:vat_amount;type:decimal(12,2);not null"`
	Total          decimal.Decimal `json:"total" gorm:"type:decimal(12,2);not null"`
	RedeemCodeID   *uint64         `json:"-" gorm:"index"`
	RedeemCode     string          `json:"redeem_code,omitempty" gorm:"type:varchar(64)"`
	Status         OrderStatus     `json:"status" gorm:"type:varchar(32);not null;index"`
	PaymentMethod  PaymentMethod   `json:"payment_method" gorm:"type:varchar(32);not null"`
	Items          []OrderItem     `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (o *Order) Customer() Customer {
	return Customer{Name: o.CustomerName, Email: o.CustomerEmail, Phone: o.CustomerPhone}
}

func (o *Order) Contains(productID uint64) bool {
	for _, it := range o.Items {
		if it.ProductID == productID {
			return true
		}
	}
	return false
}

// OrderItem keeps the product name and unit price as they were when the order
// was placed.
type OrderItem struct {
	ID          uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID     uint64          `json:"order_id" gorm:"not null;index"`
	ProductID   uint64          `json:"product_id" gorm:"not null;index"`
	ProductName string          `json:"product_name" gorm:"type:varchar(255);not null"`
	ProductCode string          `json:"product_code,omitempty" gorm:"->;-:migration"`
	Quantity    int             `json:"quantity" gorm:"not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// NextStatusForAdmin checks a manual status change from the back office.
// Settled orders only move between paid and completed, cancelled is final.
func NextStatusForAdmin(current, next OrderStatus) (OrderStatus, error) {
	if !next.Valid() {
		return current, NewValidationError("status", "unknown order status")
	}
	if current == next {
		return current, nil
	}
	if current == StatusCancelled {
		return current, &ConflictError{Message: "order is cancelled"}
	}
	if current.IsSettled() && !next.IsSettled() {
		return current, &ConflictError{Message: "order is already " + string(current)}
	}
	return next, nil
}
