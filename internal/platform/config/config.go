package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// RedisConfig controls the optional Redis event sink.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig controls the optional Kafka event sink.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Server captures process-level configuration. The administrator principal is
// deployment configuration, not data: it is the single identity allowed to
// verify patients and providers.
type Server struct {
	Addr           string
	AdminPrincipal string
	PostgresURL    string
	EventStream    string
	EventBuffer    int
	TickInterval   time.Duration
	Redis          RedisConfig
	Kafka          KafkaConfig
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("MEDLEDGER_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	admin := os.Getenv("MEDLEDGER_ADMIN_PRINCIPAL")
	if admin == "" {
		// Development default - must be overridden in production.
		admin = "admin"
	}

	stream := os.Getenv("MEDLEDGER_EVENT_STREAM")
	if stream == "" {
		stream = "medledger.events"
	}

	tickInterval := 10 * time.Minute
	if v := os.Getenv("MEDLEDGER_TICK_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			tickInterval = d
		}
	}

	var brokers []string
	if v := os.Getenv("MEDLEDGER_KAFKA_BROKERS"); v != "" {
		for _, b := range strings.Split(v, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}

	return Server{
		Addr:           addr,
		AdminPrincipal: admin,
		PostgresURL:    os.Getenv("MEDLEDGER_POSTGRES_URL"),
		EventStream:    stream,
		EventBuffer:    envInt("MEDLEDGER_EVENT_BUFFER", 256),
		TickInterval:   tickInterval,
		Redis: RedisConfig{
			URL:          os.Getenv("MEDLEDGER_REDIS_URL"),
			PoolSize:     envInt("MEDLEDGER_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("MEDLEDGER_REDIS_MIN_IDLE", 2),
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers: brokers,
			Topic:   stream,
		},
	}
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
