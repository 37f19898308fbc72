package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidBaseURL 表示后端地址不是合法的 http(s) URL。
var ErrInvalidBaseURL = errors.New("invalid backend base url")

const (
	defaultBackendURL  = "http://localhost:3000"
	defaultFrontendURL = "http://localhost:5174/"
	defaultPreviewLen  = 100
	defaultCacheTTL    = 5 * time.Minute
)

// Config 聚合冒烟测试工具与本地桩服务的配置项。
type Config struct {
	Smoke  SmokeConfig
	Server ServerConfig
	Stub   StubConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	smoke, err := loadSmokeConfig()
	if err != nil {
		return nil, err
	}

	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	stub, err := loadStubConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Smoke: smoke, Server: server, Stub: stub}, nil
}

// LoadSmoke 只加载冒烟测试运行器需要的配置，桩服务的变量写错不会影响运行器。
func LoadSmoke() (SmokeConfig, error) {
	return loadSmokeConfig()
}

// SmokeConfig 描述冒烟测试运行器的配置。Timeout 为 0 时不设置客户端超时，请求会一直等待。
type SmokeConfig struct {
	BaseURL     string
	FrontendURL string
	Timeout     time.Duration
	PreviewLen  int
}

func loadSmokeConfig() (SmokeConfig, error) {
	baseURL, err := NormalizeBaseURL(getEnvOrDefault("AVATAR_BACKEND_URL", defaultBackendURL))
	if err != nil {
		return SmokeConfig{}, err
	}

	timeout, err := parseOptionalDurationEnv("SMOKE_TIMEOUT")
	if err != nil {
		return SmokeConfig{}, err
	}
	var clientTimeout time.Duration
	if timeout != nil {
		if *timeout < 0 {
			return SmokeConfig{}, fmt.Errorf("invalid SMOKE_TIMEOUT value %q: must not be negative", timeout.String())
		}
		clientTimeout = *timeout
	}

	previewLen := defaultPreviewLen
	if override, err := parseOptionalIntEnv("SMOKE_TEXT_PREVIEW"); err != nil {
		return SmokeConfig{}, err
	} else if override != nil && *override > 0 {
		previewLen = *override
	}

	return SmokeConfig{
		BaseURL:     baseURL,
		FrontendURL: getEnvOrDefault("AVATAR_FRONTEND_URL", defaultFrontendURL),
		Timeout:     clientTimeout,
		PreviewLen:  previewLen,
	}, nil
}

// NormalizeBaseURL validates raw as an http(s) URL with a host and strips trailing slashes.
func NormalizeBaseURL(raw string) (string, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(raw), "/")
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("%w %q: %v", ErrInvalidBaseURL, raw, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("%w %q: scheme must be http or https", ErrInvalidBaseURL, raw)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("%w %q: missing host", ErrInvalidBaseURL, raw)
	}
	return trimmed, nil
}

// ServerConfig 描述桩服务的 HTTP 监听配置。
type ServerConfig struct {
	Addr string
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "3000"
	}

	if strings.Contains(port, ":") {
		// 允许直接传入 ":3000" 或 "127.0.0.1:3000"。
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// StubConfig 描述本地桩后端的行为。
type StubConfig struct {
	CacheTTL       time.Duration
	APIKey         string
	APIKeyRequired bool
}

// HasAPIKey reports whether the stub should answer like a fully configured backend.
func (c StubConfig) HasAPIKey() bool {
	return !c.APIKeyRequired || c.APIKey != ""
}

func loadStubConfig() (StubConfig, error) {
	ttl, err := parseOptionalDurationEnv("AVATAR_CACHE_TTL")
	if err != nil {
		return StubConfig{}, err
	}
	cacheTTL := defaultCacheTTL
	if ttl != nil {
		cacheTTL = *ttl
	}

	required, err := parseBoolEnv("AVATAR_STUB_API_KEY_REQUIRED", false)
	if err != nil {
		return StubConfig{}, err
	}

	return StubConfig{
		CacheTTL:       cacheTTL,
		APIKey:         strings.TrimSpace(os.Getenv("AVATAR_STUB_API_KEY")),
		APIKeyRequired: required,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

// parseOptionalDurationEnv 接受 Go duration 写法，纯数字按秒处理。
func parseOptionalDurationEnv(key string) (*time.Duration, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	if seconds, err := strconv.Atoi(value); err == nil {
		d := time.Duration(seconds) * time.Second
		return &d, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &d, nil
}
