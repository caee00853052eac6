package agent

import (
	"encoding/json"
	"strings"
)

// ActionRespond is the reserved action name meaning "answer directly, no
// tool call".
const ActionRespond = "respond"

// ActionPlan is the structured decision produced by interpreting model
// output: respond directly, or invoke a named tool with keyword arguments.
// It is consumed exactly once per user turn.
type ActionPlan struct {
	// Thought is the model's reasoning, diagnostic only.
	Thought string `json:"thought"`

	// Action is a tool name or ActionRespond.
	Action string `json:"action"`

	// Args maps 1:1 to the target tool's keyword parameters.
	Args map[string]any `json:"args"`
}

// ParseAction attempts to extract an action plan from model text.
//
// Two-stage strategy: first the entire trimmed text is parsed as JSON and
// accepted if it decodes to an object with an "action" key. Failing that,
// the substring between the first '{' and the last '}' gets the same
// parse. This tolerates models that wrap JSON in prose or code fences;
// nested or multiple objects are not disambiguated (at most one action per
// turn). Returns nil when no action is found, in which case callers must
// treat the original text as a direct, unstructured response.
func ParseAction(text string) *ActionPlan {
	trimmed := strings.TrimSpace(text)

	if plan := decodeAction(trimmed); plan != nil {
		return plan
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start != -1 && end != -1 && end > start {
		if plan := decodeAction(trimmed[start : end+1]); plan != nil {
			return plan
		}
	}
	return nil
}

// decodeAction parses s as a JSON object containing an "action" key.
func decodeAction(s string) *ActionPlan {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return nil
	}
	if _, ok := raw["action"]; !ok {
		return nil
	}

	var plan ActionPlan
	if err := json.Unmarshal([]byte(s), &plan); err != nil {
		return nil
	}
	if plan.Args == nil {
		plan.Args = map[string]any{}
	}
	return &plan
}
