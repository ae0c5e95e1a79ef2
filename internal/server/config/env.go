package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/lifeboard/internal/flagx"
	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// EnvConfig lists the environment variables the server understands.
type EnvConfig struct {
	EndpointAddrHTTP    string        `env:"HTTP_ADDRESS"`
	EndpointAddrGRPC    string        `env:"GRPC_ADDRESS"`
	DatabaseDSN         string        `env:"DATABASE_DSN"`
	LogLevel            string        `env:"LOG_LEVEL"`
	ShutdownTimeout     time.Duration `env:"SHUTDOWN_TIMEOUT"`
	HealthCheckInterval time.Duration `env:"HEALTH_CHECK_INTERVAL"`
	RateLimitRPS        int           `env:"RATE_LIMIT_RPS"`
	RateLimitBurst      int           `env:"RATE_LIMIT_BURST"`
	CORSAllowedOrigins  string        `env:"CORS_ALLOWED_ORIGINS"`
	S3RootUser          string        `env:"S3_ROOT_USER"`
	S3RootPassword      string        `env:"S3_ROOT_PASSWORD"`
	S3Bucket            string        `env:"S3_BUCKET"`
	S3Region            string        `env:"S3_REGION"`
	S3BaseEndpoint      string        `env:"S3_BASE_ENDPOINT"`
	VideoEmbedBaseURL   string        `env:"VIDEO_EMBED_BASE_URL"`
}

const defaultEnvFile = ".env"

// parseEnv overlays environment variables onto config. A dotenv file named by
// -env, or ./.env when present, is loaded first; variables already set in the
// process environment take precedence over the file.
func parseEnv(config *Config) {
	loadDotEnv()

	e := &EnvConfig{
		EndpointAddrHTTP:    config.EndpointAddrHTTP,
		EndpointAddrGRPC:    config.EndpointAddrGRPC,
		DatabaseDSN:         config.DatabaseDSN,
		LogLevel:            config.LogLevel,
		ShutdownTimeout:     config.ShutdownTimeout,
		HealthCheckInterval: config.HealthCheckInterval,
		RateLimitRPS:        config.RateLimitRPS,
		RateLimitBurst:      config.RateLimitBurst,
		CORSAllowedOrigins:  strings.Join(config.CORSAllowedOrigins, ","),
		S3RootUser:          config.S3RootUser,
		S3RootPassword:      config.S3RootPassword,
		S3Bucket:            config.S3Bucket,
		S3Region:            config.S3Region,
		S3BaseEndpoint:      config.S3BaseEndpoint,
		VideoEmbedBaseURL:   config.VideoEmbedBaseURL,
	}

	if err := envdecode.Decode(e); err != nil {
		if errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
			return
		}
		panic(err)
	}

	config.EndpointAddrHTTP = e.EndpointAddrHTTP
	config.EndpointAddrGRPC = e.EndpointAddrGRPC
	config.DatabaseDSN = e.DatabaseDSN
	config.LogLevel = e.LogLevel
	config.ShutdownTimeout = e.ShutdownTimeout
	config.HealthCheckInterval = e.HealthCheckInterval
	config.RateLimitRPS = e.RateLimitRPS
	config.RateLimitBurst = e.RateLimitBurst
	config.CORSAllowedOrigins = splitList(e.CORSAllowedOrigins)
	config.S3RootUser = e.S3RootUser
	config.S3RootPassword = e.S3RootPassword
	config.S3Bucket = e.S3Bucket
	config.S3Region = e.S3Region
	config.S3BaseEndpoint = e.S3BaseEndpoint
	config.VideoEmbedBaseURL = e.VideoEmbedBaseURL
}

func loadDotEnv() {
	if path := flagx.EnvFileFlags(); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
		return
	}
	if _, err := os.Stat(defaultEnvFile); err == nil {
		_ = godotenv.Load(defaultEnvFile)
	}
}
