package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode  string
	Port     string
	Database DatabaseConfig
	JWT      JWTConfig
	Cookie   CookieConfig
	SMTP     SMTPConfig
	Storage  StorageConfig
	Admin    AdminConfig
	Org      OrgConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	RefreshSecret    string
	AccessTokenMins  int
	RefreshTokenDays int
}

// CookieConfig holds cookie configuration
type CookieConfig struct {
	Secure   bool
	SameSite string
	Domain   string
}

// SMTPConfig holds outbound mail configuration
type SMTPConfig struct {
	Host      string
	Port      string
	User      string
	Password  string
	FromName  string
	FromEmail string
}

// Enabled reports whether mail dispatch is configured
func (s SMTPConfig) Enabled() bool {
	return s.Host != ""
}

// StorageConfig holds photo storage configuration
type StorageConfig struct {
	Driver    string // "local" or "s3"
	LocalDir  string
	PublicURL string // base URL the local driver prefixes to stored files
	S3Bucket  string
	S3Region  string
}

// AdminConfig holds the seeded back-office account
type AdminConfig struct {
	Username string
	Email    string
	Password string
}

// OrgConfig holds organization identity used on generated documents
type OrgConfig struct {
	Name     string
	FullName string
	Address  string
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	config := &Config{
		AppMode:  appMode,
		Port:     getEnv("PORT", "3000"),
		Database: loadDatabaseConfig(appMode),
		JWT:      loadJWTConfig(appMode),
		Cookie:   loadCookieConfig(appMode),
		SMTP:     loadSMTPConfig(),
		Storage:  loadStorageConfig(),
		Admin:    loadAdminConfig(),
		Org:      loadOrgConfig(),
	}

	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	return DatabaseConfig{
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "anpere_portal"),
	}
}

// loadJWTConfig loads JWT config based on mode
func loadJWTConfig(mode string) JWTConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	accessMins, _ := strconv.Atoi(getEnv("ACCESS_TOKEN_MINUTES", "15"))
	refreshDays, _ := strconv.Atoi(getEnv("REFRESH_TOKEN_DAYS", "7"))

	return JWTConfig{
		Secret:           getEnv(prefix+"JWT_SECRET", "default_secret"),
		RefreshSecret:    getEnv(prefix+"JWT_REFRESH_SECRET", "default_refresh_secret"),
		AccessTokenMins:  accessMins,
		RefreshTokenDays: refreshDays,
	}
}

// loadCookieConfig loads cookie config based on mode
func loadCookieConfig(mode string) CookieConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	secure, _ := strconv.ParseBool(getEnv(prefix+"COOKIE_SECURE", "false"))

	return CookieConfig{
		Secure:   secure,
		SameSite: getEnv("COOKIE_SAMESITE", "lax"),
		Domain:   getEnv("COOKIE_DOMAIN", ""),
	}
}

// loadSMTPConfig loads outbound mail config
func loadSMTPConfig() SMTPConfig {
	return SMTPConfig{
		Host:      getEnv("SMTP_HOST", ""),
		Port:      getEnv("SMTP_PORT", "587"),
		User:      getEnv("SMTP_USER", ""),
		Password:  getEnv("SMTP_PASS", ""),
		FromName:  getEnv("SMTP_FROM_NAME", "ANPERE"),
		FromEmail: getEnv("SMTP_FROM_EMAIL", "no-reply@anpere.ao"),
	}
}

// loadStorageConfig loads photo storage config
func loadStorageConfig() StorageConfig {
	return StorageConfig{
		Driver:    getEnv("STORAGE_DRIVER", "local"),
		LocalDir:  getEnv("UPLOAD_DIR", "./uploads"),
		PublicURL: getEnv("UPLOAD_PUBLIC_URL", "/uploads"),
		S3Bucket:  getEnv("S3_BUCKET_NAME", ""),
		S3Region:  getEnv("S3_REGION", "us-east-1"),
	}
}

// loadAdminConfig loads the seeded admin account
func loadAdminConfig() AdminConfig {
	return AdminConfig{
		Username: getEnv("ADMIN_USERNAME", "admin"),
		Email:    getEnv("ADMIN_EMAIL", "admin@anpere.ao"),
		Password: getEnv("ADMIN_PASSWORD", ""),
	}
}

// loadOrgConfig loads organization identity
func loadOrgConfig() OrgConfig {
	return OrgConfig{
		Name:     getEnv("ORG_NAME", "ANPERE"),
		FullName: getEnv("ORG_FULL_NAME", "Associação Nacional dos Professores Eméritos e Reformados"),
		Address:  getEnv("ORG_ADDRESS", "Luanda, Angola"),
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "https://www.anpere.ao"
	}
	return origins
}
