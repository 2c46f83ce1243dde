package config

import (
	"fmt"
	"time"

	env "github.com/caarlos0/env/v11"
)

type Config struct {
	WebhookSecret     string `env:"RAZORPAY_WEBHOOK_SECRET,required,notEmpty"`
	RazorpayKeyID     string `env:"RAZORPAY_KEY_ID"`
	RazorpayKeySecret string `env:"RAZORPAY_KEY_SECRET"`

	KafkaBrokers       []string      `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`
	KafkaTopic         string        `env:"KAFKA_TOPIC" envDefault:"payment_success"`
	KafkaClientID      string        `env:"KAFKA_CLIENT_ID" envDefault:"razorpay-kafka-relay"`
	KafkaDialTimeout   time.Duration `env:"KAFKA_DIAL_TIMEOUT" envDefault:"5s"`
	PublishMaxAttempts int           `env:"PUBLISH_MAX_ATTEMPTS" envDefault:"3"`
	PublishRetryDelay  time.Duration `env:"PUBLISH_RETRY_DELAY" envDefault:"1s"`

	DatabaseURL string `env:"DATABASE_URL"`
	Port        int    `env:"PORT" envDefault:"3000"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	AppEnv      string `env:"APP_ENV" envDefault:"production"`
	TraceStdout bool   `env:"TRACE_STDOUT" envDefault:"false"`

	DBMaxOpenConns     int `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	DBMaxIdleConns     int `env:"DB_MAX_IDLE_CONNS" envDefault:"10"`
	DBConnMaxLifetimeS int `env:"DB_CONN_MAX_LIFETIME_S" envDefault:"300"`
	DBConnMaxIdleTimeS int `env:"DB_CONN_MAX_IDLE_TIME_S" envDefault:"60"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	if cfg.PublishMaxAttempts < 1 {
		return nil, fmt.Errorf("config.Load: PUBLISH_MAX_ATTEMPTS must be at least 1, got %d", cfg.PublishMaxAttempts)
	}
	if len(cfg.KafkaBrokers) == 0 {
		return nil, fmt.Errorf("config.Load: KAFKA_BROKERS must not be empty")
	}
	return &cfg, nil
}

// UsePostgres reports whether user records live in Postgres rather than in memory.
func (c *Config) UsePostgres() bool {
	return c.DatabaseURL != ""
}
