package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server  ServerConfig
	AI      AIConfig
	Session SessionConfig
	Catalog CatalogConfig
	Log     LogConfig
}

// Load 从环境变量加载配置。调用方负责事先加载 .env。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	var ai AIConfig
	if err := envconfig.Process("", &ai); err != nil {
		return nil, fmt.Errorf("load AI config: %w", err)
	}
	if err := ai.Validate(); err != nil {
		return nil, err
	}

	var session SessionConfig
	if err := envconfig.Process("", &session); err != nil {
		return nil, fmt.Errorf("load session config: %w", err)
	}
	if err := session.Validate(); err != nil {
		return nil, err
	}

	var catalog CatalogConfig
	if err := envconfig.Process("", &catalog); err != nil {
		return nil, fmt.Errorf("load catalog config: %w", err)
	}

	var logCfg LogConfig
	if err := envconfig.Process("", &logCfg); err != nil {
		return nil, fmt.Errorf("load log config: %w", err)
	}

	return &Config{Server: server, AI: ai, Session: session, Catalog: catalog, Log: logCfg}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr string
}

type rawServerConfig struct {
	Port string `envconfig:"PORT" default:"8080"`
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	var raw rawServerConfig
	if err := envconfig.Process("", &raw); err != nil {
		return ServerConfig{}, fmt.Errorf("load server config: %w", err)
	}

	port := strings.TrimSpace(raw.Port)
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// Provider 标识大模型的接入方式。
type Provider string

const (
	ProviderArk    Provider = "ark"
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
)

// AIConfig 描述大模型相关配置。
type AIConfig struct {
	Provider    Provider      `envconfig:"AI_PROVIDER" default:"gemini"`
	APIKey      string        `envconfig:"AI_API_KEY"`
	AccessKey   string        `envconfig:"AI_ACCESS_KEY"`
	SecretKey   string        `envconfig:"AI_SECRET_KEY"`
	Model       string        `envconfig:"AI_MODEL"`
	BaseURL     string        `envconfig:"AI_BASE_URL"`
	Region      string        `envconfig:"AI_REGION" default:"cn-beijing"`
	Temperature float32       `envconfig:"AI_TEMPERATURE" default:"0.7"`
	TopP        float32       `envconfig:"AI_TOP_P" default:"0.95"`
	TopK        int           `envconfig:"AI_TOP_K" default:"40"`
	MaxTokens   int           `envconfig:"AI_MAX_TOKENS" default:"2048"`
	Timeout     time.Duration `envconfig:"AI_TIMEOUT" default:"60s"`
}

// Enabled 表示是否提供了必需的密钥。
func (c AIConfig) Enabled() bool {
	if strings.TrimSpace(c.Model) == "" {
		return false
	}
	if c.Provider == ProviderArk {
		return c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != "")
	}
	return c.APIKey != ""
}

// Validate 检查取值范围，缺失凭证不算错误（服务会降级为不可用）。
func (c AIConfig) Validate() error {
	switch c.Provider {
	case ProviderArk, ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("invalid AI_PROVIDER value %q", c.Provider)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("invalid AI_TEMPERATURE value %v", c.Temperature)
	}
	if c.TopP < 0 || c.TopP > 1 {
		return fmt.Errorf("invalid AI_TOP_P value %v", c.TopP)
	}
	if c.MaxTokens < 0 {
		return fmt.Errorf("invalid AI_MAX_TOKENS value %d", c.MaxTokens)
	}
	return nil
}

// SessionDriver 选择会话存储实现。
type SessionDriver string

const (
	SessionDriverMemory SessionDriver = "memory"
	SessionDriverSQLite SessionDriver = "sqlite"
)

// SessionConfig 描述会话存储配置。
type SessionConfig struct {
	Driver SessionDriver `envconfig:"SESSION_DRIVER" default:"memory"`
	Path   string        `envconfig:"SESSION_PATH" default:"data/sessions.db"`
}

// Validate 检查存储驱动。
func (c SessionConfig) Validate() error {
	switch c.Driver {
	case SessionDriverMemory:
		return nil
	case SessionDriverSQLite:
		if strings.TrimSpace(c.Path) == "" {
			return fmt.Errorf("SESSION_PATH is required for the sqlite driver")
		}
		return nil
	default:
		return fmt.Errorf("invalid SESSION_DRIVER value %q", c.Driver)
	}
}

// CatalogConfig 指向外部目录文件，留空时使用内置数据。
type CatalogConfig struct {
	FacilitiesFile string `envconfig:"CATALOG_FACILITIES_FILE"`
	PersonasFile   string `envconfig:"CATALOG_PERSONAS_FILE"`
}

// LogConfig 控制日志级别与格式。
type LogConfig struct {
	Debug  bool `envconfig:"LOG_DEBUG" default:"false"`
	Pretty bool `envconfig:"LOG_PRETTY" default:"false"`
}
