package ports

import (
	"context"

	"agentgate/internal/domain/agent"
)

// ModelRequest is one fully assembled call to the generative provider.
type ModelRequest struct {
	System     string
	Prompt     string
	History    []agent.Turn
	Attachment *agent.Attachment
	Schema     *agent.Schema
	SchemaName string
	Image      bool
}

// ModelResult carries either text (possibly JSON to be validated by the
// caller) or generated image bytes, base64 encoded.
type ModelResult struct {
	Text        string
	ImageBase64 string
}

// ModelProvider is the opaque generative model capability. Transport,
// quota and timeout failures surface as plain errors; no retries happen
// at this layer.
type ModelProvider interface {
	Generate(ctx context.Context, req ModelRequest) (ModelResult, error)
}
