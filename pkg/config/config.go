package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	Coupons   CouponConfig
	Referrals ReferralConfig
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
	Env          string `envconfig:"MENUMAKER_APP_ENV" required:"true"`
	Port         string `envconfig:"MENUMAKER_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"MENUMAKER_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MENUMAKER_LOG_WARN_STACK" default:"false"`
	AutoMigrate  bool   `envconfig:"MENUMAKER_AUTO_MIGRATE" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"MENUMAKER_DB_DSN"`

	Host     string `envconfig:"MENUMAKER_DB_HOST"`
	Port     int    `envconfig:"MENUMAKER_DB_PORT" default:"5432"`
	User     string `envconfig:"MENUMAKER_DB_USER"`
	Password string `envconfig:"MENUMAKER_DB_PASSWORD"`
	Name     string `envconfig:"MENUMAKER_DB_NAME"`
	SSLMode  string `envconfig:"MENUMAKER_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MENUMAKER_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MENUMAKER_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MENUMAKER_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MENUMAKER_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("either MENUMAKER_DB_DSN or host/user/name parts are required")
	}
	d.DSN = fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"MENUMAKER_REDIS_URL"`
	Address      string        `envconfig:"MENUMAKER_REDIS_ADDR"`
	Password     string        `envconfig:"MENUMAKER_REDIS_PASSWORD"`
	DB           int           `envconfig:"MENUMAKER_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MENUMAKER_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MENUMAKER_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MENUMAKER_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MENUMAKER_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MENUMAKER_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CouponConfig struct {
	// UsageCounterTTL bounds how long a redis usage counter outlives its coupon.
	UsageCounterTTL time.Duration `envconfig:"MENUMAKER_COUPON_USAGE_COUNTER_TTL" default:"720h"`
}

type ReferralConfig struct {
	// RewardCents is the credit granted to a referrer per applied code.
	RewardCents int `envconfig:"MENUMAKER_REFERRAL_REWARD_CENTS" default:"500"`
}
