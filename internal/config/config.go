package config

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_ADDR" env-default:":8080"`
}

// Backend locates the commerce backend that owns the tenant catalog,
// voucher rules and checkout processing.
type Backend struct {
	BaseURL string        `yaml:"BACKEND_BASE_URL" env:"BACKEND_BASE_URL" env-required:"true"`
	Timeout time.Duration `yaml:"BACKEND_TIMEOUT" env:"BACKEND_TIMEOUT" env-default:"10s"`
}

// Redis is optional; an empty Addr selects the in-memory session store.
type Redis struct {
	Addr     string `yaml:"REDIS_ADDR" env:"REDIS_ADDR" env-default:""`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER" env-default:""`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type SessionConfig struct {
	TTL time.Duration `yaml:"SESSION_TTL" env:"SESSION_TTL" env-default:"30m"`
}

// RateConfig bounds voucher validation attempts per client IP.
type RateConfig struct {
	VoucherRPS   int `yaml:"VOUCHER_RPS" env:"VOUCHER_RPS" env-default:"2"`
	VoucherBurst int `yaml:"VOUCHER_BURST" env:"VOUCHER_BURST" env-default:"5"`
}

type Telemetry struct {
	OTLPEndpoint string `yaml:"OTLP_ENDPOINT" env:"OTLP_ENDPOINT" env-default:""`
}

type Config struct {
	Env        string `yaml:"env" env:"ENV" env-required:"true"`
	HTTPServer `yaml:"http_server"`
	Backend    Backend       `yaml:"backend"`
	Redis      Redis         `yaml:"redis"`
	Session    SessionConfig `yaml:"session"`
	RateConfig RateConfig    `yaml:"rateConfig"`
	Telemetry  Telemetry     `yaml:"telemetry"`
}

func MustLoad() *Config {

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "gets the config flag value")

		flag.Parse()

		configPath = *flags

		if configPath == "" {
			log.Fatal("Config path is not set")
		}

	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	var cfg Config

	err := cleanenv.ReadConfig(configPath, &cfg)

	if err != nil {
		log.Fatalf("can not read config file: %s", err.Error())
	}

	return &cfg
}

func (r *Redis) GetDSN() string {
	dsn := "redis://"
	if r.Username != "" || r.Password != "" {
		dsn += r.Username + ":" + r.Password + "@"
	}

	return dsn + r.Addr
}
