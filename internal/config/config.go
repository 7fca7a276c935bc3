package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config is the runtime configuration of the cash card server
type Config struct {
	App    AppConfig    `mapstructure:"app" validate:"required"`
	Server ServerConfig `mapstructure:"server" validate:"required"`
	Log    LogConfig    `mapstructure:"log"`
	Store  StoreConfig  `mapstructure:"store" validate:"required"`
	Auth   AuthConfig   `mapstructure:"auth" validate:"required"`
	JWT    JWTConfig    `mapstructure:"jwt" validate:"required"`
}

type AppConfig struct {
	Env string `mapstructure:"env" validate:"required,oneof=development test production"`
}

type ServerConfig struct {
	Port               string        `mapstructure:"port" validate:"required"`
	ReadTimeout        time.Duration `mapstructure:"read_timeout" validate:"required"`
	WriteTimeout       time.Duration `mapstructure:"write_timeout" validate:"required"`
	IdleTimeout        time.Duration `mapstructure:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string      `mapstructure:"cors_allowed_origins"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
}

// StoreConfig selects the record store. The memory backend is for
// development and tests only.
type StoreConfig struct {
	Backend string `mapstructure:"backend" validate:"required,oneof=postgres memory"`
}

type AuthConfig struct {
	Provider      string     `mapstructure:"provider" validate:"required,oneof=postgres memory"`
	BcryptCost    int        `mapstructure:"bcrypt_cost" validate:"min=4,max=31"`
	Realm         string     `mapstructure:"realm" validate:"required"`
	CardOwnerRole string     `mapstructure:"card_owner_role" validate:"required"`
	SeedUsers     []SeedUser `mapstructure:"seed_users" validate:"dive"`
}

// SeedUser is a login created at startup. Passwords are hashed before they
// are stored anywhere.
type SeedUser struct {
	Username string   `mapstructure:"username" validate:"required"`
	Password string   `mapstructure:"password" validate:"required"`
	Roles    []string `mapstructure:"roles"`
}

type JWTConfig struct {
	SecretKey     string `mapstructure:"secret_key" validate:"required,min=16"`
	ExpiryMinutes int    `mapstructure:"expiry_minutes" validate:"required,gt=0"`
}

// TokenTTL is the lifetime of issued bearer tokens.
func (j JWTConfig) TokenTTL() time.Duration {
	return time.Duration(j.ExpiryMinutes) * time.Minute
}

// DevelopmentUsers are the logins used by local runs and tests.
func DevelopmentUsers() []SeedUser {
	return []SeedUser{
		{Username: "sarah1", Password: "abc123", Roles: []string{"CARD-OWNER"}},
		{Username: "kumar2", Password: "xyz789", Roles: []string{"CARD-OWNER"}},
		{Username: "hank_owns_no_cards", Password: "abc123", Roles: []string{"NON-OWNER"}},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.cors_allowed_origins", []string{"https://*", "http://*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("store.backend", "postgres")
	v.SetDefault("auth.provider", "memory")
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("auth.realm", "cashcard")
	v.SetDefault("auth.card_owner_role", "CARD-OWNER")
	v.SetDefault("jwt.expiry_minutes", 60)
}

// Load reads .env (if present) and the environment into a validated Config.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper(), ".env")
}

// LoadFrom reads configuration into v from envFile and the environment.
// An empty envFile skips the file.
func LoadFrom(v *viper.Viper, envFile string) (*Config, error) {
	setDefaults(v)

	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		// A missing .env file is fine; the environment still applies.
		_ = v.ReadInConfig()
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("app.env", "APP_ENV")
	v.BindEnv("server.port", "PORT")
	v.BindEnv("log.level", "LOG_LEVEL")
	v.BindEnv("store.backend", "STORE_BACKEND")
	v.BindEnv("auth.provider", "AUTH_PROVIDER")
	v.BindEnv("auth.bcrypt_cost", "AUTH_BCRYPT_COST")
	v.BindEnv("auth.realm", "AUTH_REALM")
	v.BindEnv("jwt.secret_key", "JWT_SECRET_KEY")
	v.BindEnv("jwt.expiry_minutes", "JWT_EXPIRY_MINUTES")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if len(cfg.Auth.SeedUsers) == 0 && cfg.App.Env != "production" {
		cfg.Auth.SeedUsers = DevelopmentUsers()
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
