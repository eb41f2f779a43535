package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTP     HTTP
	Auth     Auth
	Bot      Bot
	Engine   Engine
	Monitor  Monitor
	Postgres Postgres
	Redis    Redis
}

type HTTP struct {
	ListenAddress        string        `env:"HTTP_LISTEN_ADDRESS" envDefault:":8080"`
	MetricsListenAddress string        `env:"METRICS_LISTEN_ADDRESS" envDefault:":9090"`
	ProbeListenAddress   string        `env:"PROBE_LISTEN_ADDRESS" envDefault:":8081"`
	ShutdownTimeout      time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type Auth struct {
	URL           string        `env:"AUTH_URL,notEmpty"`
	AnonKey       string        `env:"AUTH_ANON_KEY,notEmpty" json:"-"`
	ServiceKey    string        `env:"AUTH_SERVICE_KEY,notEmpty" json:"-"`
	TokenCacheTTL time.Duration `env:"AUTH_TOKEN_CACHE_TTL" envDefault:"5m"`
}

type Bot struct {
	Token  string `env:"BOT_TOKEN,required" json:"-"`
	ChatID int64  `env:"BOT_CHAT_ID,required"`
}

type Engine struct {
	VATRate float64 `env:"ENGINE_VAT_RATE" envDefault:"0.10"`
}

type Monitor struct {
	Interval time.Duration `env:"MONITOR_INTERVAL" envDefault:"1m"`
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	return config, nil
}
