package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/element-cleaning/paystatement-backend-go/internal/domain/statement"
	"github.com/joho/godotenv"
)

const (
	BackendLocal    = "local"
	BackendPostgres = "postgres"

	UploadLocal  = "local"
	UploadGDrive = "gdrive"

	dateLayout = "2006-01-02"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Auth     AuthConfig
	Company  CompanyConfig
	Calendar CalendarConfig
	Storage  StorageConfig
	Drive    DriveConfig
}

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	Name        string
	SSLMode     string
	ApplySchema bool
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Name           string
	Version        string
	Port           int
	Env            string
	LogLevel       string
	DataBackend    string
	LocalDataDir   string
	AllowedOrigins []string
}

// AuthConfig guards the API with a single admin account when Enabled.
type AuthConfig struct {
	Enabled           bool
	AdminUsername     string
	AdminPasswordHash string
}

type CompanyConfig struct {
	Name     string
	Street   string
	Suite    string
	City     string
	State    string
	ZipCode  string
	Phone    string
	LogoPath string
}

type CalendarConfig struct {
	Anchor   time.Time
	Horizon  time.Time
	TimeZone string
}

type StorageConfig struct {
	BasePath string
	BaseURL  string
}

type DriveConfig struct {
	UploadBackend       string
	ParentFolderID      string
	DriveID             string
	ServiceAccountEmail string
	PrivateKey          string
	KeyFilePath         string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file loaded, using environment only", "error", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	applySchema, err := getEnvBool("DB_APPLY_SCHEMA", false)
	if err != nil {
		return nil, err
	}

	config.Database = DatabaseConfig{
		Host:        getEnv("DB_HOST", "localhost"),
		Port:        dbPort,
		User:        getEnv("DB_USER", "postgres"),
		Password:    getEnv("DB_PASSWORD", ""),
		Name:        getEnv("DB_NAME", "paystatements"),
		SSLMode:     getEnv("DB_SSL_MODE", "disable"),
		ApplySchema: applySchema,
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Name:           getEnv("APP_NAME", "paystatement-backend"),
		Version:        getEnv("APP_VERSION", "v1.0.0"),
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		DataBackend:    getEnv("DATA_BACKEND", BackendLocal),
		LocalDataDir:   getEnv("LOCAL_DATA_DIR", "./data"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	authEnabled, err := getEnvBool("AUTH_ENABLED", false)
	if err != nil {
		return nil, err
	}
	config.Auth = AuthConfig{
		Enabled:           authEnabled,
		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
	}

	config.Company = CompanyConfig{
		Name:     getEnv("COMPANY_NAME", "ELEMENT CLEANING SYSTEMS LLC"),
		Street:   getEnv("COMPANY_STREET", "1400 112th Ave Se"),
		Suite:    getEnv("COMPANY_SUITE", "Suite 100"),
		City:     getEnv("COMPANY_CITY", "Bellevue"),
		State:    getEnv("COMPANY_STATE", "WA"),
		ZipCode:  getEnv("COMPANY_ZIP_CODE", "98004"),
		Phone:    getEnv("COMPANY_PHONE", "425-591-9427"),
		LogoPath: getEnv("COMPANY_LOGO_PATH", ""),
	}

	// Pay period calendar
	anchor, err := getEnvDate("PAY_PERIOD_ANCHOR", "2025-08-18")
	if err != nil {
		return nil, err
	}
	horizon, err := getEnvDate("PAY_PERIOD_HORIZON", "2026-08-30")
	if err != nil {
		return nil, err
	}
	config.Calendar = CalendarConfig{
		Anchor:   anchor,
		Horizon:  horizon,
		TimeZone: getEnv("PAY_PERIOD_TZ", "America/Los_Angeles"),
	}

	config.Storage = StorageConfig{
		BasePath: getEnv("STORAGE_BASE_PATH", "./uploads"),
		BaseURL:  getEnv("STORAGE_BASE_URL", "http://localhost:8080/files"),
	}

	config.Drive = DriveConfig{
		UploadBackend:       getEnv("UPLOAD_BACKEND", UploadLocal),
		ParentFolderID:      getEnv("DRIVE_PARENT_FOLDER_ID", ""),
		DriveID:             getEnv("DRIVE_DRIVE_ID", ""),
		ServiceAccountEmail: getEnv("GDRIVE_SERVICE_ACCOUNT_EMAIL", ""),
		PrivateKey:          getEnv("GDRIVE_PRIVATE_KEY", ""),
		KeyFilePath:         getEnv("GDRIVE_KEYFILE_PATH", ""),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.App.DataBackend {
	case BackendLocal:
		if c.App.LocalDataDir == "" {
			return errors.New("LOCAL_DATA_DIR is required for the local backend")
		}
	case BackendPostgres:
		if c.Database.Password == "" {
			return errors.New("DB_PASSWORD is required")
		}
	default:
		return fmt.Errorf("unsupported DATA_BACKEND %q", c.App.DataBackend)
	}

	if c.Auth.Enabled {
		if c.JWT.Secret == "" {
			return errors.New("JWT_SECRET_KEY is required when AUTH_ENABLED is set")
		}
		if c.Auth.AdminPasswordHash == "" {
			return errors.New("ADMIN_PASSWORD_HASH is required when AUTH_ENABLED is set")
		}
	}

	if c.Calendar.Horizon.Before(c.Calendar.Anchor) {
		return errors.New("PAY_PERIOD_HORIZON must not precede PAY_PERIOD_ANCHOR")
	}
	if _, err := c.Calendar.Location(); err != nil {
		return err
	}

	switch c.Drive.UploadBackend {
	case UploadLocal:
		if c.Storage.BasePath == "" {
			return errors.New("STORAGE_BASE_PATH is required for local uploads")
		}
	case UploadGDrive:
		if c.Drive.ParentFolderID == "" {
			return errors.New("DRIVE_PARENT_FOLDER_ID is required")
		}
	default:
		return fmt.Errorf("unsupported UPLOAD_BACKEND %q", c.Drive.UploadBackend)
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

// Location resolves the time zone that decides "today" for pay periods.
func (c CalendarConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid PAY_PERIOD_TZ %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

// Info is the letterhead printed on every statement.
func (c CompanyConfig) Info() statement.CompanyInfo {
	return statement.CompanyInfo{
		Name: c.Name,
		Address: statement.Address{
			Street:  c.Street,
			Suite:   c.Suite,
			City:    c.City,
			State:   c.State,
			ZipCode: c.ZipCode,
		},
		Phone: c.Phone,
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getEnvDate(key, fallback string) (time.Time, error) {
	t, err := time.Parse(dateLayout, getEnv(key, fallback))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: %w", key, err)
	}
	return t, nil
}

func getEnvSlice(key, fallback string) []string {
	value := getEnv(key, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
