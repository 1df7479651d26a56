package webhook

import "strconv"

// ToolResponse is the envelope the voice platform expects from a tool
// webhook. Message is read aloud to the caller, so it must be a full
// sentence, not a status code.
//
// Tool handlers return HTTP 200 even on internal failure; Success false
// plus TransferToHuman tells the agent to degrade gracefully instead of
// going silent mid-call.
type ToolResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`

	Action          string `json:"action,omitempty"`
	TransferToHuman bool   `json:"transfer_to_human,omitempty"`
	TransferNumber  string `json:"transfer_number,omitempty"`
	Department      string `json:"department,omitempty"`
}

// toolRequest is the common tool invocation envelope. Parameters stay
// raw here; each handler binds them to its own struct.
type toolRequest[P any] struct {
	ConversationID string `json:"conversation_id"`
	Parameters     P      `json:"parameters"`
}

// spokenNumber renders an integer with thousands separators the way a
// TTS voice reads prices and mileage naturally ("35,000").
func spokenNumber(n int) string {
	s := strconv.Itoa(n)
	neg := false
	if n < 0 {
		neg = true
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		return "-" + s
	}
	return s
}
