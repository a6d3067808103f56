package main

import (
	"log"

	"commission-backend/internal/shared/utils"
)

// Config holds worker-specific configuration
type Config struct {
	RedisAddr     string
	RedisPassword string
}

// loadConfig loads configuration from environment variables
func loadConfig() *Config {
	cfg := &Config{
		RedisAddr:     utils.GetEnvVariable("REDIS_HOST", "localhost:6379"),
		RedisPassword: utils.GetEnvVariable("REDIS_PASSWORD", ""),
	}

	log.Printf("[Config] Redis: %s", cfg.RedisAddr)

	return cfg
}
