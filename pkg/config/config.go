package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "EMMERCE"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "EMMERCE_DB_DSN"
	EnvDBHost = "EMMERCE_DB_HOST"
	EnvDBUser = "EMMERCE_DB_USER"
	EnvDBName = "EMMERCE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Gateway      GatewayConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"EMMERCE_APP_ENV" required:"true"`
	Port         string `envconfig:"EMMERCE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"EMMERCE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"EMMERCE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"EMMERCE_DB_DSN"`
	Driver string `envconfig:"EMMERCE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"EMMERCE_DB_HOST"`
	LegacyPort     int    `envconfig:"EMMERCE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"EMMERCE_DB_USER"`
	LegacyPassword string `envconfig:"EMMERCE_DB_PASSWORD"`
	LegacyName     string `envconfig:"EMMERCE_DB_NAME"`
	LegacySSLMode  string `envconfig:"EMMERCE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"EMMERCE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"EMMERCE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"EMMERCE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"EMMERCE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"EMMERCE_REDIS_URL"`
	Address      string        `envconfig:"EMMERCE_REDIS_ADDR"`
	Password     string        `envconfig:"EMMERCE_REDIS_PASSWORD"`
	DB           int           `envconfig:"EMMERCE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"EMMERCE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"EMMERCE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"EMMERCE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"EMMERCE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"EMMERCE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"EMMERCE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"EMMERCE_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"EMMERCE_JWT_EXPIRATION_MINUTES" default:"60"`
}

// GatewayConfig carries the payment provider credentials and the landing
// pages the provider redirects the buyer to after the ready step.
type GatewayConfig struct {
	BaseURL     string        `envconfig:"EMMERCE_GATEWAY_BASE_URL" default:"https://kapi.kakao.com"`
	AdminKey    string        `envconfig:"EMMERCE_GATEWAY_ADMIN_KEY" required:"true"`
	CID         string        `envconfig:"EMMERCE_GATEWAY_CID" default:"TC0ONETIME"`
	ApprovalURL string        `envconfig:"EMMERCE_GATEWAY_APPROVAL_URL" required:"true"`
	CancelURL   string        `envconfig:"EMMERCE_GATEWAY_CANCEL_URL" required:"true"`
	FailURL     string        `envconfig:"EMMERCE_GATEWAY_FAIL_URL" required:"true"`
	CallTimeout time.Duration `envconfig:"EMMERCE_GATEWAY_CALL_TIMEOUT" default:"10s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"EMMERCE_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
