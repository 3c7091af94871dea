package http

import (
	"github.com/shopspring/decimal"

	"storefront/internal/domain"
	"storefront/internal/services"
)

type CreateOrderRequest struct {
	CustomerName  string               `json:"customer_name" binding:"required"`
	CustomerEmail string               `json:"customer_email" binding:"required"`
	CustomerPhone string               `json:"customer_phone"`
	Items         []services.CartItem  `json:"items" binding:"required,min=1,dive"`
	PaymentMethod domain.PaymentMethod `json:"payment_method" binding:"required"`
	RedeemCode    string               `json:"redeem_code"`
	Total         *decimal.Decimal     `json:"total"`
}

type CreateOrderResponse struct {
	ID       uint64             `json:"id"`
	Subtotal decimal.Decimal    `json:"subtotal"`
	Discount decimal.Decimal    `json:"discount_amount"`
	VAT      decimal.Decimal    `json:"vat_amount"`
	Total    decimal.Decimal    `json:"total"`
	Status   domain.OrderStatus `json:"status"`
}

type UpdateStatusRequest struct {
	Status domain.OrderStatus `json:"status" binding:"required"`
}

type PaymentRequest struct {
	OrderID       uint64               `json:"order_id" binding:"required"`
	PaymentMethod domain.PaymentMethod `json:"payment_method" binding:"required"`
	TransactionID string               `json:"transaction_id"`
	SenderName    string               `json:"sender_name"`
	PayerName     string               `json:"payer_name"`
	PayerCountry  string               `json:"payer_country"`
	PayerAddress  string               `json:"payer_address"`
	PayerPhone    string               `json:"payer_phone"`
	Amount        decimal.Decimal      `json:"amount"`
	Status        domain.PaymentStatus `json:"status"`
	Email         string               `json:"email"`
}

func (r PaymentRequest) toPayment() *domain.Payment {
	return &domain.Payment{
		OrderID:       r.OrderID,
		PaymentMethod: r.PaymentMethod,
		TransactionID: r.TransactionID,
		SenderName:    r.SenderName,
		PayerName:     r.PayerName,
		PayerCountry:  r.PayerCountry,
		PayerAddress:  r.PayerAddress,
		PayerPhone:    r.PayerPhone,
		Amount:        r.Amount,
		Status:        r.Status,
	}
}

type ValidateCodeRequest struct {
	Code  string              `json:"code" binding:"required"`
	Items []services.CartItem `json:"items" binding:"required,min=1,dive"`
}

type ProductRequest struct {
	ProductCode string          `json:"product_code" binding:"required"`
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"image_url"`
	FileURL     string          `json:"file_url"`
	Stock       int             `json:"stock" binding:"min=0"`
	IsActive    *bool           `json:"is_active"`
}

func (r ProductRequest) toProduct() *domain.Product {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return &domain.Product{
		ProductCode: r.ProductCode,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Category:    r.Category,
		ImageURL:    r.ImageURL,
		FileURL:     r.FileURL,
		Stock:       r.Stock,
		IsActive:    active,
	}
}

type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

type CredentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type PaymentSettingRequest struct {
	Enabled *bool          `json:"enabled" binding:"required"`
	Details map[string]any `json:"details"`
}

type AuthResponse struct {
	User *domain.User `json:"user"`
}
