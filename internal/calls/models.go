package calls

// CallData is the completed-call payload delivered by the voice platform.
//
// It is immutable once received: extractors and analytics read it, nothing
// in this codebase writes to it after binding.
//
// NOTE: This is a domain model only. Platform-specific envelope fields
// (delivery ids, signatures) stay in the webhook layer.

type CallData struct {
	CallID string `json:"call_id"`

	// Duration is the call duration in seconds.
	Duration int `json:"duration"`

	// Transcript may be empty; every consumer must tolerate that.
	Transcript string `json:"transcript"`

	CustomerPhone string `json:"customer_phone"`
	CustomerName  string `json:"customer_name,omitempty"`

	// Intent is the platform's detected intent, passed through untouched.
	Intent string `json:"intent,omitempty"`

	// ToolsTriggered lists the tool names the agent invoked during the call.
	ToolsTriggered []string `json:"tools_triggered"`

	// ToolParameters holds per-tool invocation parameters keyed by tool name.
	ToolParameters map[string]ToolParams `json:"tool_parameters,omitempty"`

	// Resolution reports whether the agent considered the request resolved.
	Resolution bool `json:"resolution"`

	RecordingURL string `json:"recording_url,omitempty"`
}

// ToolParams is the loosely-typed parameter bag a tool invocation carried.
// Values arrive as JSON strings/numbers; accessors normalize them.
type ToolParams map[string]any

// String returns the string value for key, or "" when absent or not a string.
func (p ToolParams) String(key string) string {
	if p == nil {
		return ""
	}
	if s, ok := p[key].(string); ok {
		return s
	}
	return ""
}

// Int returns the integer value for key, tolerating JSON float64 decoding.
func (p ToolParams) Int(key string) int {
	if p == nil {
		return 0
	}
	switch v := p[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

// Tool names the voice agent can invoke. These are contract values shared
// with the agent configuration; changing them breaks deployed agents.
const (
	ToolInventorySearch = "inventory_search"
	ToolScheduleService = "schedule_service"
	ToolCheckTradeValue = "check_trade_value"
	ToolTransferToHuman = "transfer_to_human"
	ToolFinancing       = "financing"
)

// HasTool reports whether the call triggered the named tool.
func (c CallData) HasTool(name string) bool {
	for _, t := range c.ToolsTriggered {
		if t == name {
			return true
		}
	}
	return false
}

// Params returns the parameter bag for a tool, or nil.
func (c CallData) Params(tool string) ToolParams {
	if c.ToolParameters == nil {
		return nil
	}
	return c.ToolParameters[tool]
}
