package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the full application configuration.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Upload    UploadConfig    `mapstructure:"upload"`
	Vision    VisionConfig    `mapstructure:"vision"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	LogLevel  string          `mapstructure:"log_level"`
}

// AppConfig application identity settings.
type AppConfig struct {
	Env     string `mapstructure:"env"`
	Debug   bool   `mapstructure:"debug"`
	Version string `mapstructure:"version"`
	Name    string `mapstructure:"name"`
}

// ServerConfig HTTP server settings.
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// UploadConfig image upload settings.
type UploadConfig struct {
	Dir               string `mapstructure:"dir"`
	MaxSizeBytes      int64  `mapstructure:"max_size_bytes"`
	AllowedExtensions string `mapstructure:"allowed_extensions"`
}

// AllowedExtensionSet returns the allowed extensions as a lookup set.
// Extensions are stored as a comma-separated string so the list can be
// overridden from the environment.
func (u UploadConfig) AllowedExtensionSet() map[string]bool {
	set := make(map[string]bool)
	for _, ext := range strings.Split(u.AllowedExtensions, ",") {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = true
	}
	return set
}

// VisionConfig external inference service settings shared by both model adapters.
type VisionConfig struct {
	BaseURL       string        `mapstructure:"base_url"`
	APIKey        string        `mapstructure:"api_key"`
	CaptionModel  string        `mapstructure:"caption_model"`
	RecipeModel   string        `mapstructure:"recipe_model"`
	Timeout       time.Duration `mapstructure:"timeout"`
	UseGPU        bool          `mapstructure:"use_gpu"`
	ModelCacheDir string        `mapstructure:"model_cache_dir"`
}

// CacheConfig analysis-result cache settings.
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Backend         string        `mapstructure:"backend"`
	RedisAddr       string        `mapstructure:"redis_addr"`
	MaxSize         int           `mapstructure:"max_size"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// RateLimitConfig request rate limiting settings.
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// LoadConfig reads configuration from .env and the environment.
func LoadConfig() (*Config, error) {
	// .env is optional; environment variables alone are enough.
	_ = godotenv.Load()

	setDefaults()

	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.BindEnv("vision.base_url", "VISION_BASE_URL")
	viper.BindEnv("vision.api_key", "VISION_API_KEY")
	viper.BindEnv("vision.caption_model", "CAPTION_MODEL")
	viper.BindEnv("vision.recipe_model", "RECIPE_MODEL")
	viper.BindEnv("vision.use_gpu", "USE_GPU")
	viper.BindEnv("vision.model_cache_dir", "MODEL_CACHE_DIR")
	viper.BindEnv("upload.dir", "UPLOAD_DIR")
	viper.BindEnv("upload.max_size_bytes", "MAX_UPLOAD_SIZE")
	viper.BindEnv("cache.enabled", "CACHE_ENABLED")
	viper.BindEnv("cache.backend", "CACHE_BACKEND")
	viper.BindEnv("cache.redis_addr", "REDIS_ADDR")
	viper.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	viper.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	viper.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
	viper.BindEnv("log_level", "LOG_LEVEL")

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.name", "RecipeSnap API")

	viper.SetDefault("server.port", 8000)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")

	viper.SetDefault("upload.dir", "uploads")
	viper.SetDefault("upload.max_size_bytes", 10*1024*1024) // 10MB
	viper.SetDefault("upload.allowed_extensions", ".jpg,.jpeg,.png,.webp")

	viper.SetDefault("vision.base_url", "http://localhost:8501/v1")
	viper.SetDefault("vision.caption_model", "nlpconnect/vit-gpt2-image-captioning")
	viper.SetDefault("vision.recipe_model", "microsoft/DialoGPT-medium")
	viper.SetDefault("vision.timeout", "60s")
	viper.SetDefault("vision.use_gpu", true)
	viper.SetDefault("vision.model_cache_dir", "")

	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.backend", "memory")
	viper.SetDefault("cache.redis_addr", "localhost:6379")
	viper.SetDefault("cache.max_size", 1000)
	viper.SetDefault("cache.ttl", "24h")
	viper.SetDefault("cache.cleanup_interval", "10m")

	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests", 100)
	viper.SetDefault("rate_limit.window", "1m")

	viper.SetDefault("log_level", "info")
}

func validateConfig(config *Config) error {
	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}

	if config.Upload.Dir == "" {
		return fmt.Errorf("upload dir is required")
	}
	if config.Upload.MaxSizeBytes <= 0 {
		return fmt.Errorf("invalid upload max size")
	}
	if len(config.Upload.AllowedExtensionSet()) == 0 {
		return fmt.Errorf("at least one allowed extension is required")
	}

	if config.Cache.Enabled {
		if config.Cache.Backend != "memory" && config.Cache.Backend != "redis" {
			return fmt.Errorf("invalid cache backend: %s", config.Cache.Backend)
		}
		if config.Cache.MaxSize <= 0 {
			return fmt.Errorf("invalid cache max size")
		}
		if config.Cache.TTL <= 0 {
			return fmt.Errorf("invalid cache ttl")
		}
		if config.Cache.CleanupInterval <= 0 {
			return fmt.Errorf("invalid cache cleanup interval")
		}
	}

	if config.RateLimit.Enabled {
		if config.RateLimit.Requests <= 0 {
			return fmt.Errorf("invalid rate limit requests")
		}
		if config.RateLimit.Window <= 0 {
			return fmt.Errorf("invalid rate limit window")
		}
	}

	return nil
}
