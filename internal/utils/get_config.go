package utils

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// Application
	AppPort     string `yaml:"APP_PORT"`
	AppURL      string `yaml:"APP_URL"`
	CORSOrigins string `yaml:"CORS_ORIGINS"`

	// Database configuration
	DBDriver     string `yaml:"DB_DRIVER"`
	DBUser       string `yaml:"DB_USER"`
	DBName       string `yaml:"DB_NAME"`
	DBPassword   string `yaml:"DB_PASSWORD"`
	DBPort       string `yaml:"DB_PORT"`
	DBHost       string `yaml:"DB_HOST"`
	DBSqlitePath string `yaml:"DB_SQLITE_PATH"`

	// JWT
	JWTSecret         string `yaml:"JWT_SECRET"`
	JWTExpiresInHours string `yaml:"JWT_EXPIRES_IN_HOURS"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`

	// Seeding
	AdminEmail    string `yaml:"ADMIN_EMAIL"`
	AdminPassword string `yaml:"ADMIN_PASSWORD"`
}

var (
	config   Config
	configMu sync.RWMutex
)

var defaults = map[string]string{
	"APP_PORT":             "6000",
	"APP_URL":              "http://localhost:3000",
	"CORS_ORIGINS":         "http://localhost:3000",
	"DB_DRIVER":            "postgres",
	"DB_SQLITE_PATH":       "meal-preorder.db",
	"JWT_EXPIRES_IN_HOURS": "168",
	"SMTP_SENDER_NAME":     "Meal Preorder",
	"ADMIN_EMAIL":          "admin@example.com",
	"ADMIN_PASSWORD":       "admin123",
}

// fields maps every config key to its backing field.
func (c *Config) fields() map[string]*string {
	return map[string]*string{
		"APP_PORT":             &c.AppPort,
		"APP_URL":              &c.AppURL,
		"CORS_ORIGINS":         &c.CORSOrigins,
		"DB_DRIVER":            &c.DBDriver,
		"DB_USER":              &c.DBUser,
		"DB_NAME":              &c.DBName,
		"DB_PASSWORD":          &c.DBPassword,
		"DB_PORT":              &c.DBPort,
		"DB_HOST":              &c.DBHost,
		"DB_SQLITE_PATH":       &c.DBSqlitePath,
		"JWT_SECRET":           &c.JWTSecret,
		"JWT_EXPIRES_IN_HOURS": &c.JWTExpiresInHours,
		"SMTP_HOST":            &c.SMTPHost,
		"SMTP_PORT":            &c.SMTPPort,
		"SMTP_SENDER_NAME":     &c.SMTPSenderName,
		"SMTP_AUTH_EMAIL":      &c.SMTPAuthEmail,
		"SMTP_AUTH_PASSWORD":   &c.SMTPAuthPassword,
		"AWS_S3_BUCKET":        &c.AWSS3Bucket,
		"AWS_S3_REGION":        &c.AWSS3Region,
		"AWS_ACCESS_KEY":       &c.AWSAccessKey,
		"AWS_SECRET_KEY":       &c.AWSSecretKey,
		"ADMIN_EMAIL":          &c.AdminEmail,
		"ADMIN_PASSWORD":       &c.AdminPassword,
	}
}

// LoadConfig reads config.yaml (or CONFIG_PATH), then lets .env and the process
// environment override individual keys.
func LoadConfig() {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}

	var loaded Config
	file, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
	} else if err := yaml.Unmarshal(file, &loaded); err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Error loading .env file: %s\n", err)
	}

	for key, field := range loaded.fields() {
		if v, ok := os.LookupEnv(key); ok {
			*field = v
		}
		if *field == "" {
			*field = defaults[key]
		}
	}

	configMu.Lock()
	config = loaded
	configMu.Unlock()
}

func GetConfig(key string) string {
	configMu.RLock()
	defer configMu.RUnlock()

	field, ok := config.fields()[key]
	if !ok {
		return ""
	}
	if *field == "" {
		return defaults[key]
	}
	return *field
}
