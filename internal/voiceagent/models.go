package voiceagent

// AgentDefinition is the payload used to create or update the
// conversational agent.
type AgentDefinition struct {
	Name         string        `json:"name"`
	SystemPrompt string        `json:"system_prompt"`
	Voice        VoiceSettings `json:"voice_settings"`
	Tools        []Tool        `json:"tools"`
	Webhooks     Webhooks      `json:"webhooks"`
}

// VoiceSettings tunes the synthesized voice.
type VoiceSettings struct {
	VoiceID         string  `json:"voice_id"`
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// Tool is a webhook-backed action the agent can trigger mid-call.
type Tool struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Type        string               `json:"type"`
	WebhookURL  string               `json:"webhook_url"`
	Parameters  map[string]ToolParam `json:"parameters"`
}

// ToolParam describes a single tool argument.
type ToolParam struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// Webhooks are the post-call delivery endpoints.
type Webhooks struct {
	PostCallTranscription string `json:"post_call_transcription"`
	PostCallAudio         string `json:"post_call_audio"`
}

// Agent is the platform's view of a registered agent.
type Agent struct {
	AgentID string `json:"agent_id"`
	Name    string `json:"name"`
}

// Conversation is a live or finished call session.
type Conversation struct {
	ConversationID string `json:"conversation_id"`
	AgentID        string `json:"agent_id"`
	Status         string `json:"status"`
	SessionURL     string `json:"session_url,omitempty"`
}
