package domain

// ToolCall trace d'un appel d'outil pendant une réponse
type ToolCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
	Output    string `json:"output"`
}

// Answer réponse de l'agent à une question
type Answer struct {
	SessionID string     `json:"session_id"`
	Text      string     `json:"text"`
	Steps     int        `json:"steps"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}
