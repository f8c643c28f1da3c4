package invoker

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

// Agent is the hosted-model boundary: a prompt in, raw response content out.
type Agent interface {
	Chat(ctx context.Context, prompt string) (string, error)
}

// chatAgent adapts a go-agents agent configuration to the Agent boundary.
// A fresh agent is created per call, matching go-agents' cheap-construction
// usage model.
type chatAgent struct {
	cfg gaconfig.AgentConfig
}

// NewAgent creates an Agent backed by a go-agents chat agent.
func NewAgent(cfg gaconfig.AgentConfig) Agent {
	return &chatAgent{cfg: cfg}
}

func (c *chatAgent) Chat(ctx context.Context, prompt string) (string, error) {
	a, err := agent.New(&c.cfg)
	if err != nil {
		return "", fmt.Errorf("create agent: %w", err)
	}

	resp, err := a.Chat(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("chat call: %w", err)
	}

	return resp.Content(), nil
}
