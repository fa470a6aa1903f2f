package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL    string        `env:"DATABASE_URL,required"`
	ServerPort     string        `env:"SERVER_PORT" envDefault:"8080"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat      string        `env:"LOG_FORMAT" envDefault:"json"`

	// Общий пул соединений sqlx и GORM
	DB struct {
		MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
		MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"10"`
		ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"5m"`
		ConnectTimeout  time.Duration `env:"DB_CONNECT_TIMEOUT" envDefault:"10s"`
	}

	// Таймаут фоновой записи событий аналитики
	AnalyticsWriteTimeout time.Duration `env:"ANALYTICS_WRITE_TIMEOUT" envDefault:"5s"`

	// Бренд используется в schema.org разметке и в письмах
	BrandName string `env:"BRAND_NAME" envDefault:"Fashion Affiliate"`

	// Единственный администратор сайта
	Admin struct {
		Email        string        `env:"ADMIN_EMAIL,required"`
		Password     string        `env:"ADMIN_PASSWORD"`
		PasswordHash string        `env:"ADMIN_PASSWORD_HASH"`
		JWTSecret    string        `env:"JWT_SECRET,required"`
		SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"24h"`
		CookieSecure bool          `env:"SESSION_COOKIE_SECURE"`
	}

	// Настройки для MinIO / S3
	MinioEndpoint        string `env:"MINIO_ENDPOINT,required"`
	MinioAccessKeyID     string `env:"MINIO_ACCESS_KEY_ID,required"`
	MinioSecretAccessKey string `env:"MINIO_SECRET_ACCESS_KEY,required"`
	MinioUseSSL          bool   `env:"MINIO_USE_SSL"`
	MinioBucketName      string `env:"MINIO_BUCKET_NAME,required"`
	MinioRegion          string `env:"MINIO_REGION,required"`
	// Публичный адрес, с которого отдаются изображения (по нему же узнаём «свои» URL)
	MinioPublicBaseURL string `env:"MINIO_PUBLIC_BASE_URL"`

	Media struct {
		UploadFolder   string        `env:"UPLOAD_FOLDER" envDefault:"styleinspo"`
		UploadMaxBytes int64         `env:"UPLOAD_MAX_BYTES" envDefault:"10485760"`
		DeleteTimeout  time.Duration `env:"MEDIA_DELETE_TIMEOUT" envDefault:"10s"`
	}

	Vision struct {
		ReplicateAPIToken     string        `env:"REPLICATE_API_TOKEN"`
		ReplicateModelVersion string        `env:"REPLICATE_MODEL_VERSION" envDefault:"e5caf557dd9e5dcee46442e1315291ef1867f027991ede8ff95e304d4f734200"`
		GeminiAPIKey          string        `env:"GEMINI_API_KEY"`
		GeminiModel           string        `env:"GEMINI_MODEL" envDefault:"gemini-1.5-flash"`
		Timeout               time.Duration `env:"VISION_TIMEOUT" envDefault:"60s"`
	}

	Mail struct {
		SendGridAPIKey string `env:"SENDGRID_API_KEY"`
		FromAddress    string `env:"MAIL_FROM_ADDRESS" envDefault:"no-reply@styleinspo.com"`
		FromName       string `env:"MAIL_FROM_NAME" envDefault:"StyleInspo Contact Form"`
	}

	// Очередь задач генерации SEO. Пустой URL отключает асинхронный режим.
	RabbitMQ struct {
		RabbitMQURL       string `env:"RABBITMQ_URL"`
		RabbitMQQueueName string `env:"RABBITMQ_QUEUE_NAME" envDefault:"seo_generation_queue"`
	}
}

// LoadConfig загружает конфигурацию из переменных окружения.
// В режиме разработки пытается загрузить .env файл.
func LoadConfig() (*Config, error) {
	if _, err := os.Stat(".env"); !os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("load .env file: %w", err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse config from environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.MinioPublicBaseURL == "" {
		cfg.MinioPublicBaseURL = cfg.defaultPublicBaseURL()
	}
	cfg.MinioPublicBaseURL = strings.TrimRight(cfg.MinioPublicBaseURL, "/")

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Admin.Password == "" && c.Admin.PasswordHash == "" {
		return errors.New("either ADMIN_PASSWORD or ADMIN_PASSWORD_HASH must be set")
	}
	if c.DB.MaxOpenConns > 0 && c.DB.MaxIdleConns > c.DB.MaxOpenConns {
		return fmt.Errorf("DB_MAX_IDLE_CONNS (%d) must not exceed DB_MAX_OPEN_CONNS (%d)", c.DB.MaxIdleConns, c.DB.MaxOpenConns)
	}
	if c.Media.UploadMaxBytes <= 0 {
		return fmt.Errorf("UPLOAD_MAX_BYTES must be positive, got %d", c.Media.UploadMaxBytes)
	}
	return nil
}

// defaultPublicBaseURL строит path-style адрес бакета: <scheme>://<endpoint>/<bucket>
func (c *Config) defaultPublicBaseURL() string {
	scheme := "http"
	if c.MinioUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s", scheme, c.MinioEndpoint, c.MinioBucketName)
}
