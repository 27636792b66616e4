package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the service settings.
type Config struct {
	Port          int
	MongoURI      string
	MongoDB       string
	JWTKey        string
	AppPassword   string
	Debug         bool
	SnapshotTTL   time.Duration
	CORSOrigins   []string
	Thresholds    Thresholds
	envFileLoaded bool
}

// Thresholds holds the percentages used to flag yearly billing indicators.
type Thresholds struct {
	ReferralMin     float64
	InvoicingMin    float64
	PaymentMin      float64
	CancellationMax float64
}

// LoadConfig reads an optional .env file, then the process environment.
func LoadConfig() *Config {
	loaded := godotenv.Load() == nil

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		port = 8080
	}

	return &Config{
		Port:        port,
		MongoURI:    getEnv("MONGO_URI", "mongodb://127.0.0.1:27017"),
		MongoDB:     getEnv("MONGO_DB", "dossiers"),
		JWTKey:      getEnv("JWT_KEY", "change-me"),
		AppPassword: getEnv("APP_PASSWORD", ""),
		Debug:       getEnv("GIN_MODE", "debug") == "debug",
		SnapshotTTL: getDuration("SNAPSHOT_TTL", 30*time.Second),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:5173,http://localhost:3001")),
		Thresholds: Thresholds{
			ReferralMin:     getFloat("THRESHOLD_REFERRAL_MIN", 50),
			InvoicingMin:    getFloat("THRESHOLD_INVOICING_MIN", 90),
			PaymentMin:      getFloat("THRESHOLD_PAYMENT_MIN", 90),
			CancellationMax: getFloat("THRESHOLD_CANCELLATION_MAX", 15),
		},
		envFileLoaded: loaded,
	}
}

// EnvFileLoaded reports whether a .env file was found at startup.
func (c *Config) EnvFileLoaded() bool {
	return c.envFileLoaded
}

// getEnv returns the variable or defaultValue when unset.
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getFloat(key string, defaultValue float64) float64 {
	v, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return defaultValue
	}
	return v
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || d < 0 {
		return defaultValue
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
