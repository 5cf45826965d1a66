package main

import (
	"log"

	"fusiongear-backend/billing"
	"fusiongear-backend/config"
	"fusiongear-backend/controllers"
	"fusiongear-backend/document"
	"fusiongear-backend/printing"
	"fusiongear-backend/receipt"
	"fusiongear-backend/routes"
	"fusiongear-backend/services"
	"fusiongear-backend/store"
	"fusiongear-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, loadedEnv := config.Load()

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if !loadedEnv {
		logger.Info("No .env file found")
	}

	st, err := openStore(cfg, logger)
	if err != nil {
		logger.Fatal("failed to open store", zap.Error(err))
	}

	tokens, err := utils.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiryHours)
	if err != nil {
		logger.Fatal("failed to configure auth", zap.Error(err))
	}

	shop := receipt.Shop{Name: cfg.ShopName, Tagline: cfg.ShopTagline, Phone: cfg.ShopPhone}
	whatsapp := services.NewWhatsAppService(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioWhatsAppNumber, logger)
	if !whatsapp.Enabled() {
		logger.Info("twilio credentials not set, WhatsApp messaging disabled")
	}

	h := &controllers.Handler{
		Store:      st,
		Calculator: billing.NewCalculator(billing.DefaultPrices),
		Receipts:   receipt.NewRenderer(shop),
		Documents:  document.NewRenderer(shop, document.Options{LogoURL: cfg.ShopLogoURL}),
		Printer:    printing.NewSpoolOpener(cfg.PrintSpoolDir),
		Messenger:  whatsapp,
		Tokens:     tokens,
		Shop:       shop,
		Logger:     logger,
	}

	reporter := services.NewSalesReporter(st, whatsapp, shop, utils.WhatsAppNumber(cfg.OwnerWhatsAppNumber), logger)
	if err := reporter.Start(cfg.SalesReportCron); err != nil {
		logger.Fatal("failed to start sales reporter", zap.Error(err))
	}
	defer reporter.Stop()

	r := routes.SetupRouter(h, cfg.CORSOrigins, logger)
	printRoutes(r, logger)

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

// openStore connects to Postgres when DB_URL is set and falls back to an
// in-memory store otherwise.
func openStore(cfg config.Config, logger *zap.Logger) (store.Store, error) {
	if cfg.DatabaseURL == "" {
		logger.Warn("DB_URL not set, using in-memory store; data will not survive a restart")
		return store.NewMemoryStore(), nil
	}
	db, err := config.ConnectDB(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	gs := store.NewGormStore(db)
	if err := gs.AutoMigrate(); err != nil {
		return nil, err
	}
	return gs, nil
}

func printRoutes(r *gin.Engine, logger *zap.Logger) {
	for _, route := range r.Routes() {
		logger.Debug("route", zap.String("method", route.Method), zap.String("path", route.Path))
	}
}
