package invoker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"agentgate/internal/app/ports"
	"agentgate/internal/domain/agent"
)

var ErrModelFailure = errors.New("model invocation failed")

// ModelError wraps any failure between sending the prompt and accepting
// the output: transport/timeout, undecodable JSON, or schema violation.
type ModelError struct {
	Stage string
	Cause error
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("model %s: %v", e.Stage, e.Cause)
}

func (e *ModelError) Unwrap() error {
	return ErrModelFailure
}

// DefaultMaxHistoryTurns bounds the conversation context forwarded to
// the provider. Older turns are dropped first; order is never changed.
const DefaultMaxHistoryTurns = 32

// Result is a validated model output: exactly one of JSON, Text or
// ImageBase64 is set, depending on the template.
type Result struct {
	JSON        json.RawMessage
	Text        string
	ImageBase64 string
}

// Invoker sends built prompts to the provider and validates what comes
// back. It never substitutes defaults for missing schema fields.
type Invoker struct {
	Provider        ports.ModelProvider
	MaxHistoryTurns int
}

func (i Invoker) Invoke(ctx context.Context, tpl agent.Template, prompt agent.Prompt, attachment *agent.Attachment, history []agent.Turn) (Result, error) {
	maxTurns := i.MaxHistoryTurns
	if maxTurns <= 0 {
		maxTurns = DefaultMaxHistoryTurns
	}

	res, err := i.Provider.Generate(ctx, ports.ModelRequest{
		System:     prompt.System,
		Prompt:     prompt.Text,
		History:    capHistory(history, maxTurns),
		Attachment: attachment,
		Schema:     tpl.Schema,
		SchemaName: string(tpl.Action),
		Image:      tpl.ImageOutput,
	})
	if err != nil {
		return Result{}, &ModelError{Stage: "call", Cause: err}
	}

	if tpl.ImageOutput {
		if res.ImageBase64 == "" {
			return Result{}, &ModelError{Stage: "decode", Cause: errors.New("provider returned no image data")}
		}
		return Result{ImageBase64: res.ImageBase64}, nil
	}

	if tpl.Schema == nil {
		return Result{Text: res.Text}, nil
	}

	doc := strings.TrimSpace(res.Text)
	var v any
	if err := json.Unmarshal([]byte(doc), &v); err != nil {
		return Result{}, &ModelError{Stage: "decode", Cause: err}
	}
	if err := tpl.Schema.Validate(v); err != nil {
		return Result{}, &ModelError{Stage: "validate", Cause: err}
	}
	return Result{JSON: json.RawMessage(doc)}, nil
}

// capHistory keeps the most recent turns, dropping only from the oldest
// end.
func capHistory(history []agent.Turn, max int) []agent.Turn {
	if len(history) <= max {
		return history
	}
	return history[len(history)-max:]
}
