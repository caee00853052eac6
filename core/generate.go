package core

// GenerateOptions carries per-call generation parameters.
type GenerateOptions struct {
	// Temperature controls sampling randomness. Zero means provider default.
	Temperature float64

	// MaxTokens bounds the response length. Zero means provider default.
	MaxTokens int

	// Extra holds provider-specific parameters passed through verbatim
	// (e.g. "top_p" or "stop" for OpenAI-compatible endpoints).
	Extra map[string]any
}

// GenerateResult is the outcome of one model call.
type GenerateResult struct {
	// Text is the model's text output.
	Text string

	// Raw is the provider's full response payload, kept for callers that
	// need usage counts or other provider-specific fields.
	Raw any
}
