// Package infrastructure provides core service initialization for
// application startup. It assembles the common dependencies (lifecycle,
// logging, agent configuration) that domain systems require.
package infrastructure

import (
	"log/slog"
	"os"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/JaimeStill/triage/internal/config"
	"github.com/JaimeStill/triage/pkg/lifecycle"
)

// Infrastructure holds the core systems required by all domain modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Agent     gaconfig.AgentConfig
}

// New creates an Infrastructure from the application configuration.
func New(cfg *config.Config) *Infrastructure {
	return &Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    slog.New(slog.NewTextHandler(os.Stderr, nil)),
		Agent:     cfg.Agent,
	}
}
