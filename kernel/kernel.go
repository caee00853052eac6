// Package kernel is the orchestration layer: it assembles prompt context,
// optionally injects retrieved memory, calls the active language model and
// records the exchange back into memory.
package kernel

import (
	"context"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/korulabs/koru/core"
	"github.com/korulabs/koru/memory"
)

const defaultTopK = 3

// Request describes one orchestration turn.
type Request struct {
	// Text is the user's input.
	Text string

	// SystemPrompt is an optional system instruction, placed first.
	SystemPrompt string

	// Context holds optional prior messages, placed after the system
	// prompt and before any memory block.
	Context []core.ChatMessage

	// Options are passed through to the model call.
	Options core.GenerateOptions
}

// Kernel hides provider-specific details behind a clean prompting surface.
// Memory is optional; when configured with an embedder, each turn is
// augmented with retrieved snippets and persisted back, both best-effort.
type Kernel struct {
	llm    *LLMManager
	memory *memory.Memory
	topK   int
	logger *logrus.Logger
}

// Option configures the kernel.
type Option func(*Kernel)

// WithMemory attaches a retrieval memory.
func WithMemory(m *memory.Memory) Option {
	return func(k *Kernel) {
		k.memory = m
	}
}

// WithTopK sets how many memory records are injected per turn (default 3).
func WithTopK(topK int) Option {
	return func(k *Kernel) {
		if topK > 0 {
			k.topK = topK
		}
	}
}

// WithLogger sets a structured logger.
func WithLogger(l *logrus.Logger) Option {
	return func(k *Kernel) {
		if l != nil {
			k.logger = l
		}
	}
}

// New creates a kernel over the given model manager.
func New(llm *LLMManager, opts ...Option) *Kernel {
	k := &Kernel{
		llm:    llm,
		topK:   defaultTopK,
		logger: logrus.New(),
	}
	k.logger.SetOutput(io.Discard)
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// LLM returns the kernel's model manager.
func (k *Kernel) LLM() *LLMManager {
	return k.llm
}

// ProcessInput builds the message sequence for one turn, generates a
// response and returns the model's text output.
//
// Sequence: [system prompt] + [prior context] + [memory block] + user
// message. Memory injection and the post-turn stores are best-effort:
// failures are logged and never abort the turn. A model-call failure is
// fatal for the turn and surfaced unmodified.
func (k *Kernel) ProcessInput(ctx context.Context, req *Request) (string, error) {
	var messages []core.ChatMessage
	if req.SystemPrompt != "" {
		messages = append(messages, core.SystemMessage(req.SystemPrompt))
	}
	messages = append(messages, req.Context...)

	if k.memoryReady() {
		if block := k.retrieveBlock(ctx, req.Text); block != "" {
			messages = append(messages, core.SystemMessage(block))
		}
	}

	messages = append(messages, core.UserMessage(req.Text))

	result, err := k.llm.Generate(ctx, messages, req.Options)
	if err != nil {
		return "", err
	}
	output := result.Text

	if k.memoryReady() {
		k.recordExchange(ctx, req.Text, output)
	}
	return output, nil
}

// GenerateResponse passes chat messages directly to the model, bypassing
// memory augmentation.
func (k *Kernel) GenerateResponse(ctx context.Context, messages []core.ChatMessage, opts core.GenerateOptions) (*core.GenerateResult, error) {
	return k.llm.Generate(ctx, messages, opts)
}

func (k *Kernel) memoryReady() bool {
	return k.memory != nil && k.memory.HasEmbedder()
}

// retrieveBlock fetches the topK most similar memories and formats them as
// a single system message. Any retrieval failure means no block.
func (k *Kernel) retrieveBlock(ctx context.Context, query string) string {
	results, err := k.memory.Retrieve(ctx, query, k.topK)
	if err != nil {
		k.logger.WithError(err).Warn("memory retrieval failed, continuing without it")
		return ""
	}

	var snippets []string
	for _, r := range results {
		if r.Text != "" {
			snippets = append(snippets, "- "+r.Text)
		}
	}
	if len(snippets) == 0 {
		return ""
	}

	k.logger.WithField("count", len(snippets)).Debug("injecting memory block")
	return "Relevant memory items (most similar first):\n" + strings.Join(snippets, "\n")
}

// recordExchange stores the user text and the model output as new memory
// entries. Fire-and-forget semantics: failures are logged, never returned.
func (k *Kernel) recordExchange(ctx context.Context, input, output string) {
	if _, err := k.memory.StoreText(ctx, input, nil); err != nil {
		k.logger.WithError(err).Debug("memory store of user text failed")
	}
	if output == "" {
		return
	}
	if _, err := k.memory.StoreText(ctx, output, nil); err != nil {
		k.logger.WithError(err).Debug("memory store of model output failed")
	}
}
