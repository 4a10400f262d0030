package config

import (
	"os"
	"strconv"
	"time"
)

// EngineConfig holds the execution engine endpoint and the poll loop bounds.
// The poll loop is capped: MaxPollAttempts * PollInterval is the longest an
// evaluation will wait for the engine before giving up.
type EngineConfig struct {
	BaseUrl         string
	AuthToken       string
	RequestTimeout  time.Duration
	PollInterval    time.Duration
	MaxPollAttempts int
	CatalogTTL      time.Duration
}

func NewEngineConfig() *EngineConfig {
	baseUrl := os.Getenv("ENGINE_BASE_URL")
	if baseUrl == "" {
		baseUrl = "http://localhost:2358"
	}

	pollIntervalMs, err := strconv.Atoi(os.Getenv("ENGINE_POLL_INTERVAL_MS"))
	if err != nil || pollIntervalMs <= 0 {
		pollIntervalMs = 1000
	}
	maxAttempts, err := strconv.Atoi(os.Getenv("ENGINE_MAX_POLL_ATTEMPTS"))
	if err != nil || maxAttempts <= 0 {
		maxAttempts = 30
	}
	requestTimeoutSec, err := strconv.Atoi(os.Getenv("ENGINE_REQUEST_TIMEOUT_SEC"))
	if err != nil || requestTimeoutSec <= 0 {
		requestTimeoutSec = 15
	}
	catalogTTLSec, err := strconv.Atoi(os.Getenv("ENGINE_CATALOG_TTL_SEC"))
	if err != nil || catalogTTLSec <= 0 {
		catalogTTLSec = 3600
	}

	return &EngineConfig{
		BaseUrl:         baseUrl,
		AuthToken:       os.Getenv("ENGINE_AUTH_TOKEN"),
		RequestTimeout:  time.Duration(requestTimeoutSec) * time.Second,
		PollInterval:    time.Duration(pollIntervalMs) * time.Millisecond,
		MaxPollAttempts: maxAttempts,
		CatalogTTL:      time.Duration(catalogTTLSec) * time.Second,
	}
}
