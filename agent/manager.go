// Package agent turns free-text model output into typed actions and
// dispatches them to registered tools.
package agent

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/korulabs/koru/core"
	"github.com/korulabs/koru/kernel"
)

// InterpreterSystemPrompt instructs the model to emit a strict-JSON action
// plan.
const InterpreterSystemPrompt = "You are a tool-using agent. Given a user's input, decide whether to use a tool " +
	"and respond in strict JSON ONLY with keys: thought (string), action (string), args (object). " +
	"Use 'respond' as action when a direct answer is sufficient."

const (
	interpreterTemperature = 0.2
	interpreterMaxTokens   = 256
)

// Processor is the slice of the kernel the manager depends on.
type Processor interface {
	ProcessInput(ctx context.Context, req *kernel.Request) (string, error)
}

// Manager mediates between the kernel and registered tools. Each turn is a
// two-state machine, INTERPRET then DISPATCH, terminal either way: a
// malformed or failing turn always yields a user-visible text message.
type Manager struct {
	kernel   Processor
	registry *Registry
	logger   *logrus.Logger
}

// Option configures the manager.
type Option func(*Manager)

// WithRegistry uses an existing tool registry instead of a fresh one.
func WithRegistry(r *Registry) Option {
	return func(m *Manager) {
		if r != nil {
			m.registry = r
		}
	}
}

// WithLogger sets a structured logger.
func WithLogger(l *logrus.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager creates a manager over the given kernel.
func NewManager(k Processor, opts ...Option) *Manager {
	m := &Manager{
		kernel:   k,
		registry: NewRegistry(),
		logger:   logrus.New(),
	}
	m.logger.SetOutput(io.Discard)
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Registry returns the manager's tool registry.
func (m *Manager) Registry() *Registry {
	return m.registry
}

// RegisterTool adds or replaces a tool under name.
func (m *Manager) RegisterTool(name string, t Tool) {
	m.registry.Register(name, t)
}

// UnregisterTool removes a tool by name.
func (m *Manager) UnregisterTool(name string) {
	m.registry.Unregister(name)
}

// Execute interprets user input via the kernel and executes the chosen
// action. Only a model-call failure returns an error; every dispatch
// problem (no parsable action, unknown tool, bad arguments, tool failure)
// degrades to a text result.
func (m *Manager) Execute(ctx context.Context, userInput string) (string, error) {
	log := m.logger.WithField("turn_id", uuid.New().String())

	modelText, err := m.kernel.ProcessInput(ctx, &kernel.Request{
		Text:         userInput,
		SystemPrompt: InterpreterSystemPrompt,
		Options: core.GenerateOptions{
			Temperature: interpreterTemperature,
			MaxTokens:   interpreterMaxTokens,
		},
	})
	if err != nil {
		return "", err
	}

	plan := ParseAction(modelText)
	if plan == nil {
		// No action found: pass the raw model text through.
		log.Debug("model output had no action plan")
		return modelText, nil
	}
	log = log.WithField("action", plan.Action)

	if plan.Action == ActionRespond {
		msg, ok := plan.Args["message"]
		if !ok {
			return "", nil
		}
		return DisplayText(msg), nil
	}

	tool, ok := m.registry.Get(plan.Action)
	if !ok {
		log.Warn("unknown tool requested")
		return fmt.Sprintf("Unknown tool: %s", plan.Action), nil
	}

	result, err := tool.Call(ctx, plan.Args)
	if err != nil {
		var argErr *ArgumentError
		if errors.As(err, &argErr) {
			log.WithError(err).Warn("tool argument mismatch")
			return fmt.Sprintf("Tool '%s' argument error: %s", plan.Action, argErr.Reason), nil
		}
		log.WithError(err).Warn("tool execution failed")
		return fmt.Sprintf("Tool '%s' failed: %s", plan.Action, err), nil
	}

	return DisplayText(result), nil
}
