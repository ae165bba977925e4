package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// CirculationPolicy holds the tunable business thresholds of the
// circulation engine. All monetary values are integer minor currency
// units. The services receive these through the Config struct and never
// hardcode them.
type CirculationPolicy struct {
	MaxOpenLoans          int
	MaxRenewals           int
	DailyLateFineMinor    int64
	DamageFineMinor       int64
	UnpaidFinesBlockMinor int64
}

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	LoginRateLimit    string // ulule/limiter formatted rate, e.g. "10-M"
	Policy            CirculationPolicy
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "8h")
	viper.SetDefault("JWT_ISSUER", "library-core")
	viper.SetDefault("LOGIN_RATE_LIMIT", "10-M")
	viper.SetDefault("MAX_OPEN_LOANS", 5)
	viper.SetDefault("MAX_RENEWALS", 2)
	viper.SetDefault("DAILY_LATE_FINE", 1000)
	viper.SetDefault("DAMAGE_FINE", 50000)
	viper.SetDefault("UNPAID_FINES_BLOCK", 10000)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = 8 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.LoginRateLimit = viper.GetString("LOGIN_RATE_LIMIT")

	cfg.Policy = CirculationPolicy{
		MaxOpenLoans:          viper.GetInt("MAX_OPEN_LOANS"),
		MaxRenewals:           viper.GetInt("MAX_RENEWALS"),
		DailyLateFineMinor:    viper.GetInt64("DAILY_LATE_FINE"),
		DamageFineMinor:       viper.GetInt64("DAMAGE_FINE"),
		UnpaidFinesBlockMinor: viper.GetInt64("UNPAID_FINES_BLOCK"),
	}
	if cfg.Policy.MaxOpenLoans <= 0 {
		log.Printf("Warning: MAX_OPEN_LOANS must be positive, got %d. Defaulting to 5.\n", cfg.Policy.MaxOpenLoans)
		cfg.Policy.MaxOpenLoans = 5
	}
	if cfg.Policy.DailyLateFineMinor < 0 || cfg.Policy.DamageFineMinor < 0 {
		log.Println("Warning: negative fine rates are not allowed. Defaulting to 0.")
		if cfg.Policy.DailyLateFineMinor < 0 {
			cfg.Policy.DailyLateFineMinor = 0
		}
		if cfg.Policy.DamageFineMinor < 0 {
			cfg.Policy.DamageFineMinor = 0
		}
	}

	return cfg, nil
}
