package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"storefront/internal/config"
	httpctl "storefront/internal/controllers/http"
	"storefront/internal/infra/cache"
	"storefront/internal/infra/database"
	"storefront/internal/infra/events"
	"storefront/internal/infra/kafka"
	"storefront/internal/infra/rabbitmq"
	"storefront/internal/infra/storage"
	"storefront/internal/infra/webhook"
	"storefront/internal/logger"
	"storefront/internal/repository"
	"storefront/internal/repository/gormdb"
	"storefront/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := zerolog.New(os.Stderr)
		boot.Fatal().Err(err).Msg("load config")
	}
	log := logger.New(cfg.LogLevel)

	db, err := database.Open(database.Options{
		Driver:       cfg.DbDriver,
		Host:         cfg.DbHost,
		Port:         cfg.DbPort,
		User:         cfg.DbUser,
		Password:     cfg.DbPassword,
		Name:         cfg.DbName,
		SSLMode:      cfg.DbSSLMode,
		MaxOpenConns: cfg.DbMaxOpenConns,
		MaxIdleConns: cfg.DbMaxIdleConns,
		Debug:        cfg.LogLevel == "debug",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("db: connect")
	}
	defer database.Close(db)

	if cfg.DbAutoMigrate {
		if err := gormdb.Migrate(db); err != nil {
			log.Fatal().Err(err).Msg("db: migrate")
		}
		log.Info().Msg("database schema migrated")
	}

	var products repository.ProductRepository = gormdb.NewProductRepository(db)
	var invalidator services.CacheInvalidator
	if cfg.RedisAddr != "" {
		rdb, err := cache.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, product cache disabled")
		} else {
			defer rdb.Close()
			cached := cache.NewCachedProductRepository(products, rdb, cfg.ProductCacheTTL, log)
			products = cached
			invalidator = cached
		}
	}

	publisher, closePublishers := buildPublisher(cfg, log)
	defer closePublishers()

	receipts, err := storage.NewReceiptStore(cfg.UploadDir, cfg.MaxUploadBytes)
	if err != nil {
		log.Fatal().Err(err).Msg("upload dir")
	}

	orders := gormdb.NewOrderRepository(db)
	vatRate := decimal.NewFromFloat(cfg.VATRate)

	stock := services.NewStockAdjuster(gormdb.NewStockRepository(db), invalidator, log)
	redeem := services.NewRedeemService(gormdb.NewRedeemCodeRepository(db), products, vatRate, log)
	auth := services.NewAuthService(gormdb.NewUserRepository(db), gormdb.NewSessionRepository(db), cfg.SessionTTL, log)

	if cfg.DbAutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := auth.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Error().Err(err).Msg("seed admin account")
		}
		cancel()
	}

	svc := httpctl.Services{
		Catalog:   services.NewCatalogService(products, log),
		Orders:    services.NewOrderService(orders, products, redeem, stock, publisher, vatRate, log),
		Payments:  services.NewPaymentService(gormdb.NewPaymentRepository(db), orders, stock, publisher, log),
		Redeem:    redeem,
		Reviews:   services.NewReviewService(gormdb.NewReviewRepository(db), products, log),
		Auth:      auth,
		Settings:  services.NewSettingsService(gormdb.NewPaymentSettingRepository(db), log),
		Downloads: services.NewDownloadService(products, orders, log),
		Dashboard: services.NewDashboardService(gormdb.NewStatsRepository(db)),
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("db: handle")
	}
	handler := httpctl.NewHandler(svc, receipts, sqlDB, httpctl.CookieOptions{
		Secure: cfg.CookieSecure,
	}, log)

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.MaxMultipartMemory = cfg.MaxUploadBytes
	r.Use(httpctl.RequestID(), httpctl.AccessLog(log), httpctl.Recovery(log))

	handler.RegisterRoutes(r)

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.ServerPort).Msg("starting storefront service")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server run")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down storefront service")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("storefront service stopped")
}

// buildPublisher assembles the event sinks named by the config. The webhook
// is an extra sink next to the broker.
func buildPublisher(cfg *config.Config, log zerolog.Logger) (events.Publisher, func()) {
	var (
		sinks   []events.Publisher
		closers []func()
	)

	switch cfg.EventBroker {
	case "rabbitmq":
		p, err := rabbitmq.NewPublisher(cfg.RabbitMQURL, cfg.RabbitMQExchange, log)
		if err != nil {
			log.Error().Err(err).Msg("rabbitmq unavailable, events will not be published there")
			break
		}
		sinks = append(sinks, p)
		closers = append(closers, p.Close)
	case "kafka":
		p := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		sinks = append(sinks, p)
		closers = append(closers, func() {
			if err := p.Close(); err != nil {
				log.Warn().Err(err).Msg("close kafka writer")
			}
		})
	}
	if cfg.WebhookURL != "" {
		sinks = append(sinks, webhook.NewClient(cfg.WebhookURL, cfg.WebhookTimeout))
	}

	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}
	if len(sinks) == 0 {
		return events.Nop{}, closeAll
	}
	return events.NewFanout(log, sinks...), closeAll
}
