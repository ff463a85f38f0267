package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"

	"github.com/gabble-labs/gabble/backend/internal/clients/perplexity"
)

// Supported inference providers.
const (
	ProviderPerplexity = "perplexity"
	ProviderArk        = "ark"
)

// Config aggregates every setting the service reads.
type Config struct {
	Server ServerConfig
	Chat   ChatConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	chat, err := loadChatConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, Chat: chat}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Allow passing ":8080" or "127.0.0.1:8080" directly.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// ChatConfig describes the inference endpoint for turn processing.
type ChatConfig struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	Temperature *float64
	TopP        *float64
	MaxTokens   *int
	Ark         ArkConfig
}

// ArkConfig carries the credentials for the alternate Ark provider.
type ArkConfig struct {
	APIKey    string
	AccessKey string
	SecretKey string
	Model     string
	BaseURL   string
	Region    string
}

// NewChatModel builds the configured chat model. The default Perplexity
// provider always constructs; a missing credential is reported per request
// so the server still boots. The Ark provider fails here when its
// credentials are absent.
func (c ChatConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	switch c.Provider {
	case "", ProviderPerplexity:
		return perplexity.NewChatModel(perplexity.Config{
			APIKey:      c.APIKey,
			Model:       c.Model,
			BaseURL:     c.BaseURL,
			Temperature: c.Temperature,
			TopP:        c.TopP,
			MaxTokens:   c.MaxTokens,
		}), nil
	case ProviderArk:
		return c.newArkChatModel(ctx)
	default:
		return nil, fmt.Errorf("unknown CHAT_PROVIDER %q", c.Provider)
	}
}

func (c ChatConfig) newArkChatModel(ctx context.Context) (model.ChatModel, error) {
	a := c.Ark
	if a.Model == "" || (a.APIKey == "" && (a.AccessKey == "" || a.SecretKey == "")) {
		return nil, fmt.Errorf("ark credentials incomplete: provide ARK_API_KEY or ARK_ACCESS_KEY/ARK_SECRET_KEY plus ARK_MODEL")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	var topP *float32
	if c.TopP != nil {
		val := float32(*c.TopP)
		topP = &val
	}

	return ark.NewChatModel(ctx, &ark.ChatModelConfig{
		BaseURL:     a.BaseURL,
		Region:      a.Region,
		APIKey:      a.APIKey,
		AccessKey:   a.AccessKey,
		SecretKey:   a.SecretKey,
		Model:       a.Model,
		MaxTokens:   c.MaxTokens,
		Temperature: temperature,
		TopP:        topP,
	})
}

func loadChatConfig() (ChatConfig, error) {
	temperature, err := parseOptionalFloatEnv("CHAT_TEMPERATURE")
	if err != nil {
		return ChatConfig{}, err
	}

	topP, err := parseOptionalFloatEnv("CHAT_TOP_P")
	if err != nil {
		return ChatConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("CHAT_MAX_TOKENS")
	if err != nil {
		return ChatConfig{}, err
	}

	return ChatConfig{
		Provider:    strings.ToLower(getEnvOrDefault("CHAT_PROVIDER", ProviderPerplexity)),
		APIKey:      strings.TrimSpace(os.Getenv("PERPLEXITY_API_KEY")),
		Model:       getEnvOrDefault("CHAT_MODEL", "sonar"),
		BaseURL:     getEnvOrDefault("CHAT_BASE_URL", "https://api.perplexity.ai"),
		Temperature: temperature,
		TopP:        topP,
		MaxTokens:   maxTokens,
		Ark: ArkConfig{
			APIKey:    strings.TrimSpace(os.Getenv("ARK_API_KEY")),
			AccessKey: strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
			SecretKey: strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
			Model:     strings.TrimSpace(os.Getenv("ARK_MODEL")),
			BaseURL:   getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
			Region:    getEnvOrDefault("ARK_REGION", "cn-beijing"),
		},
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
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
