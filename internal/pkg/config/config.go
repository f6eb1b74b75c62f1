package config

import (
	"errors"
	"log"
	"os"

	"github.com/spf13/viper"
)

// Config is the root configuration, loaded once at start-up and passed
// explicitly into every module. No package-level instance exists.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	App      AppConfig      `mapstructure:"app"`
	Mpesa    MpesaConfig    `mapstructure:"mpesa"`
	Email    EmailConfig    `mapstructure:"email"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	Port     string `mapstructure:"port"`
	SSLMode  string `mapstructure:"sslmode"`
	TimeZone string `mapstructure:"timezone"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Expire int64  `mapstructure:"expire"` // hours
}

type AppConfig struct {
	Env     string `mapstructure:"env"`
	Debug   bool   `mapstructure:"debug"`
	BaseURL string `mapstructure:"base_url"` // public URL, used to build the payment callback URL
}

// MpesaConfig holds the Daraja credentials. When ConsumerKey is empty
// the payment module runs against the simulated gateway.
type MpesaConfig struct {
	ConsumerKey    string `mapstructure:"consumer_key"`
	ConsumerSecret string `mapstructure:"consumer_secret"`
	Shortcode      string `mapstructure:"shortcode"`
	Passkey        string `mapstructure:"passkey"`
	Environment    string `mapstructure:"environment"` // sandbox or production
}

// EmailConfig holds the Resend credentials. When APIKey is empty the
// notification module runs against the simulated mailer.
type EmailConfig struct {
	APIKey     string `mapstructure:"api_key"`
	FromEmail  string `mapstructure:"from_email"`
	FromName   string `mapstructure:"from_name"`
	AdminEmail string `mapstructure:"admin_email"` // internal new-order notifications
}

// Validate checks the parts that must be present for any environment.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("jwt secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return errors.New("jwt secret should be at least 32 characters")
	}

	if c.Database.Host == "" || c.Database.User == "" || c.Database.DBName == "" {
		return errors.New("database configuration is incomplete")
	}

	if c.Redis.Addr == "" {
		return errors.New("redis address is required")
	}

	if c.Mpesa.Environment != "" && c.Mpesa.Environment != "sandbox" && c.Mpesa.Environment != "production" {
		return errors.New("mpesa environment must be sandbox or production")
	}

	return nil
}

// LoadConfig reads configs/config.yaml (or config.<env>.yaml) plus
// environment overrides and returns the resulting Config.
func LoadConfig() (*Config, error) {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}

	configName := "config"
	if env != "" && env != "dev" {
		configName = "config." + env
	}

	viper.SetConfigName(configName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("jwt.expire", 24)
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("app.env", "dev")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("app.base_url", "http://localhost:8080")
	viper.SetDefault("mpesa.environment", "sandbox")
	viper.SetDefault("mpesa.shortcode", "174379")
	viper.SetDefault("email.from_email", "noreply@bttshoes.com")
	viper.SetDefault("email.from_name", "BTT Shoes")
	viper.SetDefault("email.admin_email", "orders@bttshoes.com")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Config file not found, using defaults or env vars: %v", err)
	}

	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Manual overrides for the values most commonly injected in deployment.
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.Database.Host = host
	}
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		cfg.Redis.Addr = redisAddr
	}
	if jwtSecret := os.Getenv("JWT_SECRET"); jwtSecret != "" {
		cfg.JWT.Secret = jwtSecret
	}
	if key := os.Getenv("MPESA_CONSUMER_KEY"); key != "" {
		cfg.Mpesa.ConsumerKey = key
	}
	if secret := os.Getenv("MPESA_CONSUMER_SECRET"); secret != "" {
		cfg.Mpesa.ConsumerSecret = secret
	}
	if passkey := os.Getenv("MPESA_PASSKEY"); passkey != "" {
		cfg.Mpesa.Passkey = passkey
	}
	if apiKey := os.Getenv("RESEND_API_KEY"); apiKey != "" {
		cfg.Email.APIKey = apiKey
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Printf("Configuration loaded and validated successfully. Environment: %s", cfg.App.Env)
	return &cfg, nil
}
