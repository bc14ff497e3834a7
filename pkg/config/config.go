package config

import (
	"errors"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTP      HTTP
	Logger    Logger
	Postgres  Postgres
	Backend   Backend
	Lookup    Lookup
	Assistant Assistant
	Kafka     Kafka
	Session   Session
}

type HTTP struct {
	Port int `env:"HTTP_PORT" envDefault:"8080"`
}

type Logger struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type Postgres struct {
	DSN     string `env:"POSTGRES_DSN"`
	MaxConn int32  `env:"POSTGRES_MAX_CONNS" envDefault:"10"`
}

type Backend struct {
	BaseURL string        `env:"BACKEND_BASE_URL"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"10s"`
}

type Lookup struct {
	ViaCEPBaseURL string        `env:"VIACEP_BASE_URL" envDefault:"https://viacep.com.br"`
	CNPJBaseURL   string        `env:"CNPJ_LOOKUP_BASE_URL" envDefault:"https://publica.cnpj.ws"`
	Timeout       time.Duration `env:"LOOKUP_TIMEOUT" envDefault:"5s"`
	RetryAttempts int           `env:"LOOKUP_RETRY_ATTEMPTS" envDefault:"2"`
}

type Assistant struct {
	BaseURL string        `env:"ASSISTANT_BASE_URL"`
	APIKey  string        `env:"ASSISTANT_API_KEY" envDefault:""`
	Model   string        `env:"ASSISTANT_MODEL" envDefault:""`
	Timeout time.Duration `env:"ASSISTANT_TIMEOUT" envDefault:"30s"`
}

type Kafka struct {
	Brokers    []string `env:"KAFKA_BROKERS"`
	AuditTopic string   `env:"KAFKA_AUDIT_TOPIC" envDefault:"admin.audit"`
}

type Session struct {
	// PEM-encoded RSA public key of the backend token issuer, base64
	// wrapped for transport through env. When empty the gateway trusts
	// the token's claims without verifying the signature.
	TokenPublicKey string        `env:"SESSION_TOKEN_PUBLIC_KEY" envDefault:""`
	PurgeInterval  time.Duration `env:"SESSION_PURGE_INTERVAL" envDefault:"1h"`
}

func New(envPath string) (Config, error) {
	err := godotenv.Load(envPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}

	c, err := env.ParseAsWithOptions[Config](env.Options{
		RequiredIfNoDef: true,
	})
	if err != nil {
		return Config{}, err
	}

	return c, nil
}
