// Package anthropic implements provider.Provider on top of the official
// Anthropic Go SDK.
package anthropic

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/korulabs/koru/core"
	"github.com/korulabs/koru/kernel/provider"
)

const defaultMaxTokens = 1024

// Provider calls the Claude Messages API.
type Provider struct {
	client *anthropic.Client
	model  string
}

// New creates a provider using an existing Anthropic client.
func New(client *anthropic.Client, model string) *Provider {
	return &Provider{client: client, model: model}
}

var _ provider.Provider = (*Provider)(nil)

// Generate converts the message sequence into Messages API form. System
// messages are lifted into the System field (the API has no system role);
// the relative order of user/assistant/tool messages is preserved, with
// tool output carried as user text.
func (p *Provider) Generate(ctx context.Context, messages []core.ChatMessage, opts core.GenerateOptions) (*core.GenerateResult, error) {
	maxTokens := int64(opts.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: maxTokens,
	}
	if opts.Temperature > 0 {
		params.Temperature = anthropic.Float(opts.Temperature)
	}

	for _, msg := range messages {
		switch msg.Role {
		case core.RoleSystem:
			params.System = append(params.System, anthropic.TextBlockParam{Text: msg.Content})
		case core.RoleAssistant:
			params.Messages = append(params.Messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		default:
			params.Messages = append(params.Messages, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		}
	}

	resp, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return nil, err
	}

	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}

	return &core.GenerateResult{Text: text, Raw: resp}, nil
}
