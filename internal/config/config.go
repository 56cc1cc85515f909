package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every setting of the console service and the event subscriber.
type Config struct {
	Server   ServerConfig
	RabbitMQ RabbitMQConfig
	LogLevel string
}

type ServerConfig struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// RabbitMQConfig is optional: with Enabled false the console runs without a
// broker and committed changes are only logged.
type RabbitMQConfig struct {
	Enabled  bool
	Host     string
	Port     int
	User     string
	Password string
	VHost    string
	UseTLS   bool
	Exchange string // fanout exchange for change events
	Queue    string // queue the event subscriber consumes
	Prefetch int
}

// Load reads the environment after merging the given .env files into it.
// Without arguments an optional ./.env is loaded; variables already set in
// the environment always win.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		_ = godotenv.Load()
	} else if err := godotenv.Load(envFiles...); err != nil {
		return nil, fmt.Errorf("couldn't load env file: %w", err)
	}

	var errs []error
	cfg := &Config{
		Server: ServerConfig{
			Port:            getInt("HTTP_PORT", 3000, &errs),
			ReadTimeout:     getDuration("HTTP_READ_TIMEOUT", 5*time.Second, &errs),
			WriteTimeout:    getDuration("HTTP_WRITE_TIMEOUT", 30*time.Second, &errs),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 5*time.Second, &errs),
		},
		RabbitMQ: RabbitMQConfig{
			Enabled:  getBool("RABBITMQ_ENABLED", false, &errs),
			Host:     getEnv("RABBITMQ_HOST", "localhost"),
			Port:     getInt("RABBITMQ_PORT", 5672, &errs),
			User:     getEnv("RABBITMQ_USER", "guest"),
			Password: getEnv("RABBITMQ_PASSWORD", "guest"),
			VHost:    getEnv("RABBITMQ_VHOST", "/"),
			UseTLS:   getBool("RABBITMQ_TLS", false, &errs),
			Exchange: getEnv("RABBITMQ_EXCHANGE", "admin_events"),
			Queue:    getEnv("RABBITMQ_QUEUE", "admin_events.log"),
			Prefetch: getInt("RABBITMQ_PREFETCH", 10, &errs),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid http port %d", c.Server.Port)
	}
	if c.RabbitMQ.Enabled {
		if c.RabbitMQ.Host == "" || c.RabbitMQ.User == "" {
			return errors.New("rabbitmq config incomplete")
		}
		if c.RabbitMQ.Exchange == "" {
			return errors.New("rabbitmq exchange is required")
		}
	}
	return nil
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int, errs *[]error) int {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return n
}

func getBool(key string, def bool, errs *[]error) bool {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return b
}

func getDuration(key string, def time.Duration, errs *[]error) time.Duration {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return d
}
