package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// Tool is a named operation invokable with keyword arguments. Args decode
// into the tool's own parameter shape; a shape mismatch must surface as an
// *ArgumentError so the dispatcher can report it separately from runtime
// failures.
type Tool interface {
	Call(ctx context.Context, args map[string]any) (any, error)
}

// ArgumentError reports a keyword-argument mismatch: a missing required
// key, an unknown key, or a value of the wrong type.
type ArgumentError struct {
	Reason string
}

func (e *ArgumentError) Error() string {
	return e.Reason
}

// Func adapts a function with a typed argument struct into a Tool. The
// args map is decoded strictly into T (unknown keys rejected); required
// lists the JSON keys that must be present. Binding failures come back as
// *ArgumentError, everything the function itself returns passes through.
func Func[T any](required []string, fn func(ctx context.Context, in T) (any, error)) Tool {
	return &funcTool[T]{required: required, fn: fn}
}

type funcTool[T any] struct {
	required []string
	fn       func(ctx context.Context, in T) (any, error)
}

func (t *funcTool[T]) Call(ctx context.Context, args map[string]any) (any, error) {
	for _, key := range t.required {
		if _, ok := args[key]; !ok {
			return nil, &ArgumentError{Reason: fmt.Sprintf("missing required argument %q", key)}
		}
	}

	encoded, err := json.Marshal(args)
	if err != nil {
		return nil, &ArgumentError{Reason: err.Error()}
	}

	dec := json.NewDecoder(bytes.NewReader(encoded))
	dec.DisallowUnknownFields()

	var in T
	if err := dec.Decode(&in); err != nil {
		return nil, &ArgumentError{Reason: err.Error()}
	}
	return t.fn(ctx, in)
}

// DisplayText converts a tool result (or respond-message value) to the
// text shown to the user.
func DisplayText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	case map[string]any, []any:
		encoded, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(encoded)
	default:
		return fmt.Sprintf("%v", val)
	}
}
