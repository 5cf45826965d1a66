package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config is the process configuration, read from the environment.
type Config struct {
	Port           string
	DatabaseURL    string
	JWTSecret      string
	JWTExpiryHours int
	LogLevel       string

	ShopName    string
	ShopTagline string
	ShopPhone   string
	ShopLogoURL string

	PrintSpoolDir string

	TwilioAccountSID     string
	TwilioAuthToken      string
	TwilioWhatsAppNumber string
	OwnerWhatsAppNumber  string
	SalesReportCron      string

	CORSOrigins []string
}

// Load reads .env when present and then the process environment.
func Load() (Config, bool) {
	// Load environment variables
	loadedEnv := godotenv.Load() == nil

	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    os.Getenv("DB_URL"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		JWTExpiryHours: getEnvInt("JWT_EXPIRY_HOURS", 24),
		LogLevel:       getEnv("LOG_LEVEL", "info"),

		ShopName:    getEnv("SHOP_NAME", "FUSION GEAR"),
		ShopTagline: getEnv("SHOP_TAGLINE", "Bike Service Center"),
		ShopPhone:   getEnv("SHOP_PHONE", "8073670402"),
		ShopLogoURL: os.Getenv("SHOP_LOGO_URL"),

		PrintSpoolDir: os.Getenv("PRINT_SPOOL_DIR"),

		TwilioAccountSID:     os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:      os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioWhatsAppNumber: os.Getenv("TWILIO_WHATSAPP_NUMBER"),
		OwnerWhatsAppNumber:  os.Getenv("OWNER_WHATSAPP_NUMBER"),
		SalesReportCron:      getEnv("SALES_REPORT_CRON", "0 21 * * *"),

		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
	}
	return cfg, loadedEnv
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
