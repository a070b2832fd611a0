package gateway

import (
	"encoding/json"

	"agentgate/internal/domain/agent"
)

// Request is the parsed body of POST /gateway.
type Request struct {
	Action  string
	Payload json.RawMessage
}

// Response is the action-specific result. UpdatedBalance is present only
// when the request was metered.
type Response struct {
	Result         json.RawMessage `json:"result"`
	UpdatedBalance *int64          `json:"updatedBalance,omitempty"`
}

// envelope holds the payload fields shared across actions; the
// action-specific remainder is decoded by the template's builder.
type envelope struct {
	AgentMode   string         `json:"agentMode"`
	UserProfile *agent.Profile `json:"userProfile"`
	History     []agent.Turn   `json:"history"`
	Image       string         `json:"image"`
	MimeType    string         `json:"mimeType"`
}

type textResult struct {
	Content string `json:"content"`
}

type chatResult struct {
	Text string `json:"text"`
}

type imageResult struct {
	ImageBase64 string `json:"imageBase64"`
}
