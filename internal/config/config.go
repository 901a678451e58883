package config

import (
	"errors"
	"os"
	"strings"
	"time"
)

type Config struct {
	MongoURI        string
	MongoDatabase   string
	LogLevel        string
	Debug           bool
	ServiceName     string
	Environment     string
	Hostname        string
	Port            string
	AllowedOrigins  []string
	ConnectTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func LoadConfig() (*Config, error) {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		return nil, errors.New("MONGO_URI is required")
	}

	mongoDatabase := os.Getenv("MONGO_DATABASE")
	if mongoDatabase == "" {
		mongoDatabase = "pulseboard"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	debug := os.Getenv("DEBUG")
	if debug == "" {
		debug = "false"
	}

	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "data-ingestor"
	}

	hostname := os.Getenv("HOSTNAME")
	if hostname == "" {
		hostname = "data-ingestor"
	}

	environment := os.Getenv("ENVIRONMENT")
	if environment == "" {
		environment = "development"
	}

	allowedOrigins := []string{"*"}
	if ao := os.Getenv("ALLOWED_ORIGINS"); ao != "" {
		allowedOrigins = []string{}
		for _, origin := range strings.Split(ao, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				allowedOrigins = append(allowedOrigins, origin)
			}
		}
	}

	connectTimeout := 10 * time.Second
	if ct := os.Getenv("MONGO_CONNECT_TIMEOUT"); ct != "" {
		if parsed, err := time.ParseDuration(ct); err == nil {
			connectTimeout = parsed
		}
	}

	shutdownTimeout := 15 * time.Second
	if st := os.Getenv("SHUTDOWN_TIMEOUT"); st != "" {
		if parsed, err := time.ParseDuration(st); err == nil {
			shutdownTimeout = parsed
		}
	}

	return &Config{
		MongoURI:        mongoURI,
		MongoDatabase:   mongoDatabase,
		LogLevel:        logLevel,
		Debug:           debug == "true",
		ServiceName:     serviceName,
		Environment:     environment,
		Hostname:        hostname,
		Port:            port,
		AllowedOrigins:  allowedOrigins,
		ConnectTimeout:  connectTimeout,
		ShutdownTimeout: shutdownTimeout,
	}, nil
}
