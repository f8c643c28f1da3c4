package api_test

import (
	"testing"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/JaimeStill/triage/internal/api"
	"github.com/JaimeStill/triage/internal/config"
	"github.com/JaimeStill/triage/internal/infrastructure"
	"github.com/JaimeStill/triage/pkg/middleware"
)

func validConfig() *config.Config {
	return &config.Config{
		Agent: gaconfig.AgentConfig{
			Name: "test-agent",
			Provider: &gaconfig.ProviderConfig{
				Name:    "ollama",
				BaseURL: "http://localhost:11434",
				Options: make(map[string]any),
			},
			Model: &gaconfig.ModelConfig{
				Name: "llama3.1:8b",
			},
		},
		Server: config.ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     "1m",
			WriteTimeout:    "5m",
			ShutdownTimeout: "30s",
		},
		API: config.APIConfig{
			BasePath:         "/api",
			MaxUploadSize:    "25MB",
			BatchConcurrency: 4,
			CORS: middleware.CORSConfig{
				Enabled: false,
			},
		},
		ShutdownTimeout: "30s",
		Version:         "0.1.0",
	}
}

func TestNewModule(t *testing.T) {
	cfg := validConfig()
	infra := infrastructure.New(cfg)

	m, err := api.NewModule(cfg, infra)
	if err != nil {
		t.Fatalf("NewModule() error = %v", err)
	}

	if m.Prefix() != "/api" {
		t.Errorf("prefix = %s, want /api", m.Prefix())
	}
}

func TestNewRuntime(t *testing.T) {
	cfg := validConfig()
	infra := infrastructure.New(cfg)

	runtime := api.NewRuntime(cfg, infra)

	if runtime.MaxUploadSize != 25*1024*1024 {
		t.Errorf("max upload size = %d, want 25MB", runtime.MaxUploadSize)
	}
	if runtime.BatchConcurrency != 4 {
		t.Errorf("batch concurrency = %d, want 4", runtime.BatchConcurrency)
	}
	if runtime.Logger == nil {
		t.Error("runtime logger is nil")
	}
	if runtime.Lifecycle == nil {
		t.Error("runtime lifecycle is nil")
	}
}

func TestNewDomain(t *testing.T) {
	cfg := validConfig()
	infra := infrastructure.New(cfg)

	domain, err := api.NewDomain(api.NewRuntime(cfg, infra))
	if err != nil {
		t.Fatalf("NewDomain() error = %v", err)
	}

	if domain.Triage == nil {
		t.Error("triage system is nil")
	}
}
