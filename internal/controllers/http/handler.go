package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"storefront/internal/infra/storage"
	"storefront/internal/services"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Services struct {
	Catalog   *services.CatalogService
	Orders    *services.OrderService
	Payments  *services.PaymentService
	Redeem    *services.RedeemService
	Reviews   *services.ReviewService
	Auth      *services.AuthService
	Settings  *services.SettingsService
	Downloads *services.DownloadService
	Dashboard *services.DashboardService
}

type CookieOptions struct {
	Secure bool
}

type Handler struct {
	svc      Services
	receipts *storage.ReceiptStore
	db       Pinger
	cookies  CookieOptions
	logger   zerolog.Logger
}

func NewHandler(svc Services, receipts *storage.ReceiptStore, db Pinger, cookies CookieOptions, logger zerolog.Logger) *Handler {
	return &Handler{
		svc:      svc,
		receipts: receipts,
		db:       db,
		cookies:  cookies,
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", h.Health)

	api := r.Group("/api", h.loadSession)
	api.GET("/products", h.ListProducts)
	api.GET("/products/:id", h.GetProduct)
	api.GET("/products/:id/reviews", h.ListProductReviews)
	api.POST("/orders", h.CreateOrder)
	api.GET("/orders/:id", h.GetOrder)
	api.POST("/payments", h.SubmitPayment)
	api.POST("/redeem-codes/validate", h.ValidateRedeemCode)
	api.GET("/payment-settings", h.ListPaymentSettings)
	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)
	api.POST("/auth/logout", h.Logout)

	user := api.Group("", h.requireUser)
	user.GET("/auth/me", h.Me)
	user.GET("/me/orders", h.MyOrders)
	user.POST("/products/:id/reviews", h.SubmitReview)
	user.GET("/downloads/:productId", h.Download)

	admin := api.Group("/admin")
	admin.POST("/login", h.AdminLogin)
	admin.POST("/logout", h.AdminLogout)

	secured := admin.Group("", h.requireAdmin)
	secured.GET("/stats", h.Stats)
	secured.GET("/products", h.AdminListProducts)
	secured.POST("/products", h.CreateProduct)
	secured.PUT("/products/:id", h.UpdateProduct)
	secured.DELETE("/products/:id", h.DeleteProduct)
	secured.GET("/orders", h.AdminListOrders)
	secured.PATCH("/orders/:id/status", h.UpdateOrderStatus)
	secured.GET("/payments", h.AdminListPayments)
	secured.POST("/payments/:id/confirm", h.ConfirmPayment)
	secured.GET("/payments/:id/receipt", h.PaymentReceipt)
	secured.GET("/redeem-codes", h.ListRedeemCodes)
	secured.POST("/redeem-codes/generate", h.GenerateRedeemCodes)
	secured.DELETE("/redeem-codes/:id", h.DeleteRedeemCode)
	secured.GET("/reviews", h.AdminListReviews)
	secured.POST("/reviews/:id/approve", h.ApproveReview)
	secured.POST("/reviews/:id/reject", h.RejectReview)
	secured.DELETE("/reviews/:id", h.DeleteReview)
	secured.GET("/payment-settings", h.AdminListPaymentSettings)
	secured.PUT("/payment-settings/:method", h.UpdatePaymentSetting)
}

func (h *Handler) Health(c *gin.Context) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
