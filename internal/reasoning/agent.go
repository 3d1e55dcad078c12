package reasoning

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/skyhook-labs/talon/pkg/formatting"
)

type judgeResponse struct {
	Results []Judgment `json:"results"`
}

type agentProvider struct {
	cfg    gaconfig.AgentConfig
	logger *slog.Logger
}

// NewAgentProvider creates a Provider backed by a go-agents chat agent.
func NewAgentProvider(cfg gaconfig.AgentConfig, logger *slog.Logger) Provider {
	return &agentProvider{
		cfg:    cfg,
		logger: logger.With("system", "reasoning"),
	}
}

func (p *agentProvider) Judge(ctx context.Context, req *Request) (*Response, error) {
	a, err := agent.New(&p.cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: create agent: %w", ErrProviderUnreachable, err)
	}

	prompt := ComposePrompt(req)

	resp, err := a.Chat(ctx, prompt)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", ErrProviderUnreachable, ctx.Err())
		}
		return nil, fmt.Errorf("%w: chat call: %w", classifyTransportError(err), err)
	}

	parsed, err := formatting.Parse[judgeResponse](resp.Content())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	p.logger.DebugContext(
		ctx, "narrative judged",
		"categories", len(req.Categories),
		"results", len(parsed.Results),
	)

	return &Response{Results: parsed.Results}, nil
}

func (p *agentProvider) Model() string {
	if p.cfg.Model != nil {
		return p.cfg.Model.Name
	}
	return ""
}

func (p *agentProvider) Name() string {
	if p.cfg.Provider != nil {
		return p.cfg.Provider.Name
	}
	return ""
}
