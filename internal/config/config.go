package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port     int
	LogLevel string
	LogDir   string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	DBMaxConns    int
	DBMaxIdleTime time.Duration
	DBMaxLifetime time.Duration

	// Event delivery
	EventMaxRetries     int
	EventRetryDelay     time.Duration
	EventDeadLetterPath string

	ItemsConfigPath  string
	BossesConfigPath string

	// Ledger
	StartingSoft    int
	StartingHard    int
	StartingUpgrade int

	// Combat tuning
	MaxBattleTurns    int
	CritChance        float64
	SpecialChance     float64
	SpecialMultiplier float64
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:            getEnv("LOG_LEVEL", "INFO"),
		LogDir:              getEnv("LOG_DIR", "logs"),
		DBUser:              getEnv("DB_USER", "postgres"),
		DBPassword:          getEnv("DB_PASSWORD", "postgres"),
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBPort:              getEnv("DB_PORT", "5432"),
		DBName:              getEnv("DB_NAME", "emberrealm"),
		ItemsConfigPath:     getEnv("ITEMS_CONFIG_PATH", "configs/items.json"),
		BossesConfigPath:    getEnv("BOSSES_CONFIG_PATH", "configs/bosses.json"),
		EventDeadLetterPath: getEnv("EVENT_DEADLETTER_PATH", "data/deadletter.jsonl"),
	}

	var err error
	if cfg.Port, err = getEnvInt("PORT", 8080); err != nil {
		return nil, err
	}
	if cfg.DBMaxConns, err = getEnvInt("DB_MAX_CONNS", 10); err != nil {
		return nil, err
	}
	if cfg.DBMaxIdleTime, err = getEnvDuration("DB_MAX_IDLE_TIME", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.DBMaxLifetime, err = getEnvDuration("DB_MAX_LIFETIME", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.EventMaxRetries, err = getEnvInt("EVENT_MAX_RETRIES", 0); err != nil {
		return nil, err
	}
	if cfg.EventRetryDelay, err = getEnvDuration("EVENT_RETRY_DELAY", 0); err != nil {
		return nil, err
	}
	if cfg.StartingSoft, err = getEnvInt("STARTING_SOFT", 100); err != nil {
		return nil, err
	}
	if cfg.StartingHard, err = getEnvInt("STARTING_HARD", 0); err != nil {
		return nil, err
	}
	if cfg.StartingUpgrade, err = getEnvInt("STARTING_UPGRADE", 0); err != nil {
		return nil, err
	}
	if cfg.MaxBattleTurns, err = getEnvInt("MAX_BATTLE_TURNS", 100); err != nil {
		return nil, err
	}
	if cfg.CritChance, err = getEnvFloat("CRIT_CHANCE", 0.10); err != nil {
		return nil, err
	}
	if cfg.SpecialChance, err = getEnvFloat("SPECIAL_CHANCE", 0.15); err != nil {
		return nil, err
	}
	if cfg.SpecialMultiplier, err = getEnvFloat("SPECIAL_MULTIPLIER", 1.5); err != nil {
		return nil, err
	}

	if cfg.StartingSoft < 0 || cfg.StartingHard < 0 || cfg.StartingUpgrade < 0 {
		return nil, fmt.Errorf("starting grants must not be negative")
	}
	if cfg.MaxBattleTurns <= 0 {
		return nil, fmt.Errorf("MAX_BATTLE_TURNS must be positive")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return d, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return f, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
