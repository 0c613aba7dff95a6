package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	App      AppConfig
	Payroll  PayrollConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port      int
	Env       string
	LogLevel  string
	UploadDir string
}

// PayrollConfig holds the company work-hour and pay-rate settings used by the
// payroll calculators. Loaded once at startup and passed by value into each
// computation; never mutated mid-batch.
type PayrollConfig struct {
	OvertimeRateMultiplier float64 // default 1.25
	NightDifferentialRate  float64 // default 0.10
	NightDifferentialStart string  // default "22:00"
	NightDifferentialEnd   string  // default "06:00"
	HolidayRateMultiplier  float64 // default 2.0
	RestDayRateMultiplier  float64 // default 1.3
	RegularWorkHoursPerDay float64 // default 8
	RegularWorkStartTime   string  // default "08:00"
	RegularWorkEndTime     string  // default "17:00"
}

// DefaultPayrollConfig returns the built-in work settings used when the
// environment does not override them.
func DefaultPayrollConfig() PayrollConfig {
	return PayrollConfig{
		OvertimeRateMultiplier: 1.25,
		NightDifferentialRate:  0.10,
		NightDifferentialStart: "22:00",
		NightDifferentialEnd:   "06:00",
		HolidayRateMultiplier:  2.0,
		RestDayRateMultiplier:  1.3,
		RegularWorkHoursPerDay: 8,
		RegularWorkStartTime:   "08:00",
		RegularWorkEndTime:     "17:00",
	}
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "proly-payroll"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:      appPort,
		Env:       getEnv("APP_ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		UploadDir: getEnv("UPLOAD_DIR", "uploads/compliance"),
	}

	// Payroll work settings
	payroll := DefaultPayrollConfig()
	payroll.OvertimeRateMultiplier, err = getEnvFloat("OVERTIME_RATE_MULTIPLIER", payroll.OvertimeRateMultiplier)
	if err != nil {
		return nil, err
	}
	payroll.NightDifferentialRate, err = getEnvFloat("NIGHT_DIFFERENTIAL_RATE", payroll.NightDifferentialRate)
	if err != nil {
		return nil, err
	}
	payroll.HolidayRateMultiplier, err = getEnvFloat("HOLIDAY_RATE_MULTIPLIER", payroll.HolidayRateMultiplier)
	if err != nil {
		return nil, err
	}
	payroll.RestDayRateMultiplier, err = getEnvFloat("REST_DAY_RATE_MULTIPLIER", payroll.RestDayRateMultiplier)
	if err != nil {
		return nil, err
	}
	payroll.RegularWorkHoursPerDay, err = getEnvFloat("REGULAR_WORK_HOURS_PER_DAY", payroll.RegularWorkHoursPerDay)
	if err != nil {
		return nil, err
	}
	payroll.NightDifferentialStart = getEnv("NIGHT_DIFFERENTIAL_START", payroll.NightDifferentialStart)
	payroll.NightDifferentialEnd = getEnv("NIGHT_DIFFERENTIAL_END", payroll.NightDifferentialEnd)
	payroll.RegularWorkStartTime = getEnv("REGULAR_WORK_START_TIME", payroll.RegularWorkStartTime)
	payroll.RegularWorkEndTime = getEnv("REGULAR_WORK_END_TIME", payroll.RegularWorkEndTime)
	config.Payroll = payroll

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Payroll.OvertimeRateMultiplier < 1 {
		return fmt.Errorf("OVERTIME_RATE_MULTIPLIER must be at least 1")
	}
	if c.Payroll.RegularWorkHoursPerDay <= 0 || c.Payroll.RegularWorkHoursPerDay > 24 {
		return fmt.Errorf("REGULAR_WORK_HOURS_PER_DAY must be between 0 and 24")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}
