package config

import (
	"os"
	"strconv"
	"strings"
)

type Env struct {
	AppAddr string
	GinMode string

	// Price source endpoint; empty disables remote lookup (all quotes
	// degrade to zero, useful in dev without the upstream).
	PriceSourceURL     string
	PriceSourceRetries int
	LookupConcurrency  int

	JWTSecret string
}

func LoadEnv() Env {
	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	retries := getenvInt("PRICE_SOURCE_RETRIES", 2)
	conc := getenvInt("PRICE_LOOKUP_CONCURRENCY", 4)
	if conc < 1 {
		conc = 1
	}

	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		secret = "super-secret-key-change-me"
	}

	return Env{
		AppAddr:            appAddr,
		GinMode:            strings.TrimSpace(os.Getenv("GIN_MODE")),
		PriceSourceURL:     strings.TrimSpace(os.Getenv("PRICE_SOURCE_URL")),
		PriceSourceRetries: retries,
		LookupConcurrency:  conc,
		JWTSecret:          secret,
	}
}

func getenvInt(key string, def int) int {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
