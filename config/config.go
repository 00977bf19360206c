package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Storage  StorageConfig
	Gemini   GeminiConfig
	RabbitMQ RabbitMQConfig
	Upload   UploadConfig
	Worker   WorkerConfig
}

type AppConfig struct {
	Port           string
	Env            string
	LogLevel       string
	AllowedOrigins []string
	LoginRateLimit int
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	TimeZone string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// StorageConfig selects the object store for uploaded lab reports.
// Driver is "minio" (default) or "s3".
type StorageConfig struct {
	Driver    string
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

type RabbitMQConfig struct {
	URL        string
	AlertQueue string
}

type UploadConfig struct {
	MaxBytes          int64
	AllowedExtensions []string
	PendingTTL        time.Duration
}

type WorkerConfig struct {
	SweepCronSpec string
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// env-only deployments have no .env file
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	config := &Config{
		App: AppConfig{
			Port:           viper.GetString("APP_PORT"),
			Env:            viper.GetString("APP_ENV"),
			LogLevel:       viper.GetString("LOG_LEVEL"),
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			LoginRateLimit: viper.GetInt("LOGIN_RATE_LIMIT"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
			TimeZone: viper.GetString("DB_TIMEZONE"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  durationOr("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshExpiry: durationOr("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
		},
		Storage: StorageConfig{
			Driver:    viper.GetString("STORAGE_DRIVER"),
			Endpoint:  viper.GetString("STORAGE_ENDPOINT"),
			AccessKey: viper.GetString("STORAGE_ACCESS_KEY"),
			SecretKey: viper.GetString("STORAGE_SECRET_KEY"),
			Bucket:    viper.GetString("STORAGE_BUCKET"),
			Region:    viper.GetString("STORAGE_REGION"),
			UseSSL:    viper.GetBool("STORAGE_USE_SSL"),
		},
		Gemini: GeminiConfig{
			APIKey:  viper.GetString("GEMINI_API_KEY"),
			Model:   viper.GetString("GEMINI_MODEL"),
			BaseURL: viper.GetString("GEMINI_BASE_URL"),
			Timeout: durationOr("GEMINI_TIMEOUT", 60*time.Second),
		},
		RabbitMQ: RabbitMQConfig{
			URL:        viper.GetString("RABBITMQ_URL"),
			AlertQueue: viper.GetString("RABBITMQ_ALERT_QUEUE"),
		},
		Upload: UploadConfig{
			MaxBytes:          viper.GetInt64("UPLOAD_MAX_BYTES"),
			AllowedExtensions: viper.GetStringSlice("UPLOAD_ALLOWED_EXTENSIONS"),
			PendingTTL:        durationOr("UPLOAD_PENDING_TTL", time.Hour),
		},
		Worker: WorkerConfig{
			SweepCronSpec: viper.GetString("UPLOAD_SWEEP_CRON"),
		},
	}

	return config, nil
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", []string{"*"})
	viper.SetDefault("LOGIN_RATE_LIMIT", 5)
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "UTC")
	viper.SetDefault("STORAGE_DRIVER", "minio")
	viper.SetDefault("STORAGE_BUCKET", "lab-reports")
	viper.SetDefault("STORAGE_REGION", "us-east-1")
	viper.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	viper.SetDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta")
	viper.SetDefault("RABBITMQ_ALERT_QUEUE", "phms.critical_alerts")
	viper.SetDefault("UPLOAD_MAX_BYTES", 16*1024*1024)
	viper.SetDefault("UPLOAD_ALLOWED_EXTENSIONS", []string{"pdf", "png", "jpg", "jpeg"})
	viper.SetDefault("UPLOAD_SWEEP_CRON", "@every 10m")
}

func durationOr(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(viper.GetString(key))
	if err != nil {
		return fallback
	}
	return d
}
