package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	ServerAddr string
	GinMode    string

	DBDriver   string
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string
	DBPath     string
	DBTimeout  time.Duration

	RedisAddr     string
	RedisPort     string
	RedisPassword string

	JWTSecret string
	TokenTTL  time.Duration

	// Text generation
	LLMProvider   string
	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
	LLMTimeout    time.Duration
	RetryDelay    time.Duration

	// Object storage
	StorageDriver        string
	StorageBucket        string
	StorageLocalPath     string
	StoragePublicBaseURL string
	StorageTimeout       time.Duration
	UploadMaxSizeMB      int64

	OSSEndpoint        string
	OSSRegion          string
	OSSAccessKeyID     string
	OSSAccessKeySecret string
	OSSRoleArn         string

	// Log configuration
	LogLevel      string
	LogFilename   string
	LogMaxSize    int
	LogMaxBackups int
	LogMaxAge     int
	LogCompress   bool
}

func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

func (c *Config) RedisFullAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisAddr, c.RedisPort)
}

// RedisEnabled reports whether a redis host was configured. Without redis the
// token denylist and user cache are disabled.
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

func (c *Config) UploadMaxBytes() int64 {
	return c.UploadMaxSizeMB * 1024 * 1024
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_ADDR", ":8080")
	v.SetDefault("GIN_MODE", "release")

	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "promptcraft")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_PATH", "data/promptcraft.db")
	v.SetDefault("DB_TIMEOUT", "10s")

	v.SetDefault("REDIS_PORT", "6379")

	v.SetDefault("TOKEN_TTL", "72h")

	v.SetDefault("LLM_PROVIDER", "gemini")
	v.SetDefault("GEMINI_MODEL", "gemini-1.5-flash-latest")
	v.SetDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com")
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("LLM_TIMEOUT", "60s")
	v.SetDefault("RETRY_DELAY", "500ms")

	v.SetDefault("STORAGE_DRIVER", "local")
	v.SetDefault("STORAGE_BUCKET", "prompt_outputs")
	v.SetDefault("STORAGE_LOCAL_PATH", "data/storage")
	v.SetDefault("STORAGE_PUBLIC_BASE_URL", "http://localhost:8080/storage")
	v.SetDefault("STORAGE_TIMEOUT", "120s")
	v.SetDefault("UPLOAD_MAX_SIZE_MB", 50)

	v.SetDefault("LOG_LEVEL", "INFO")
	v.SetDefault("LOG_FILENAME", "logs/app.log")
	v.SetDefault("LOG_MAX_SIZE", 100)
	v.SetDefault("LOG_MAX_BACKUPS", 3)
	v.SetDefault("LOG_MAX_AGE", 28)
	v.SetDefault("LOG_COMPRESS", true)
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		// Ignore error if .env file is not found
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return &Config{
		ServerAddr: v.GetString("SERVER_ADDR"),
		GinMode:    v.GetString("GIN_MODE"),

		DBDriver:   v.GetString("DB_DRIVER"),
		DBHost:     v.GetString("DB_HOST"),
		DBUser:     v.GetString("DB_USER"),
		DBPassword: v.GetString("DB_PASSWORD"),
		DBName:     v.GetString("DB_NAME"),
		DBPort:     v.GetString("DB_PORT"),
		DBSSLMode:  v.GetString("DB_SSLMODE"),
		DBPath:     v.GetString("DB_PATH"),
		DBTimeout:  v.GetDuration("DB_TIMEOUT"),

		RedisAddr:     v.GetString("REDIS_HOST"),
		RedisPort:     v.GetString("REDIS_PORT"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),

		JWTSecret: v.GetString("JWT_SECRET"),
		TokenTTL:  v.GetDuration("TOKEN_TTL"),

		LLMProvider:   v.GetString("LLM_PROVIDER"),
		GeminiAPIKey:  v.GetString("GEMINI_API_KEY"),
		GeminiModel:   v.GetString("GEMINI_MODEL"),
		GeminiBaseURL: v.GetString("GEMINI_BASE_URL"),
		OpenAIAPIKey:  v.GetString("OPENAI_API_KEY"),
		OpenAIModel:   v.GetString("OPENAI_MODEL"),
		OpenAIBaseURL: v.GetString("OPENAI_BASE_URL"),
		LLMTimeout:    v.GetDuration("LLM_TIMEOUT"),
		RetryDelay:    v.GetDuration("RETRY_DELAY"),

		StorageDriver:        v.GetString("STORAGE_DRIVER"),
		StorageBucket:        v.GetString("STORAGE_BUCKET"),
		StorageLocalPath:     v.GetString("STORAGE_LOCAL_PATH"),
		StoragePublicBaseURL: v.GetString("STORAGE_PUBLIC_BASE_URL"),
		StorageTimeout:       v.GetDuration("STORAGE_TIMEOUT"),
		UploadMaxSizeMB:      v.GetInt64("UPLOAD_MAX_SIZE_MB"),

		OSSEndpoint:        v.GetString("OSS_ENDPOINT"),
		OSSRegion:          v.GetString("OSS_REGION"),
		OSSAccessKeyID:     v.GetString("OSS_ACCESS_KEY_ID"),
		OSSAccessKeySecret: v.GetString("OSS_ACCESS_KEY_SECRET"),
		OSSRoleArn:         v.GetString("OSS_ROLE_ARN"),

		LogLevel:      v.GetString("LOG_LEVEL"),
		LogFilename:   v.GetString("LOG_FILENAME"),
		LogMaxSize:    v.GetInt("LOG_MAX_SIZE"),
		LogMaxBackups: v.GetInt("LOG_MAX_BACKUPS"),
		LogMaxAge:     v.GetInt("LOG_MAX_AGE"),
		LogCompress:   v.GetBool("LOG_COMPRESS"),
	}, nil
}
