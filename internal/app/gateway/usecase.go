package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"agentgate/internal/app/invoker"
	"agentgate/internal/app/ledger"
	"agentgate/internal/app/ports"
	"agentgate/internal/domain/agent"
	"agentgate/internal/domain/billing"

	"github.com/rs/zerolog/log"
)

var (
	ErrInvalidRequest = errors.New("invalid gateway request")
)

// maxAttachmentLen bounds the base64 payload of an attachment at 8 MiB
// encoded. Checked before any reservation.
const maxAttachmentLen = 8 << 20

const DefaultSignupBonus int64 = 50

// UseCase runs the request pipeline: resolve identity, look up the
// template, reserve credits, invoke the model, then commit or refund.
// Instances are stateless; all cross-request coordination happens in the
// account store.
type UseCase struct {
	Registry    agent.Registry
	Accounts    ports.AccountRepository
	Ledger      ledger.Service
	Invoker     invoker.Invoker
	SignupBonus int64
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.Action) == "" {
		return Response{}, fmt.Errorf("%w: action is required", ErrInvalidRequest)
	}

	env, err := parseEnvelope(req.Payload)
	if err != nil {
		return Response{}, err
	}

	// Identity resolution. Absent externalId means the request runs
	// unmetered: no account, no reservation, no balance in the response.
	metered := env.UserProfile != nil && strings.TrimSpace(env.UserProfile.ExternalID) != ""
	var account billing.Account
	if metered {
		bonus := u.SignupBonus
		if bonus <= 0 {
			bonus = DefaultSignupBonus
		}
		account, err = u.Accounts.GetOrCreate(ctx, env.UserProfile.ExternalID, env.UserProfile.Name, bonus)
		if err != nil {
			return Response{}, errors.Join(ledger.ErrLedgerFailure, err)
		}
	}

	tpl, err := u.Registry.Lookup(agent.Action(req.Action), agent.AgentMode(env.AgentMode))
	if err != nil {
		return Response{}, err
	}

	// Build the prompt before any reservation so validation failures
	// can never touch the balance.
	prompt, err := tpl.Build(req.Payload, env.UserProfile)
	if err != nil {
		return Response{}, err
	}
	attachment, err := extractAttachment(env, tpl)
	if err != nil {
		return Response{}, err
	}

	var (
		hold            *billing.Hold
		reservedBalance int64
	)
	if metered {
		hold, reservedBalance, err = u.Ledger.Reserve(ctx, account.ExternalID, tpl.Cost)
		if err != nil {
			return Response{}, err
		}
	}

	result, err := u.Invoker.Invoke(ctx, tpl, prompt, attachment, env.History)
	if err != nil {
		if metered {
			if _, refundErr := u.Ledger.Refund(ctx, hold); refundErr != nil {
				// Double fault: the model call failed and the refund
				// could not be applied. Leave the hold RESERVED for
				// reconciliation and surface the model error.
				log.Error().
					Err(refundErr).
					Str("hold_id", hold.ID).
					Str("external_id", hold.ExternalID).
					Int64("amount", hold.Amount).
					Msg("refund failed after model error")
			}
		}
		return Response{}, err
	}

	resp := Response{Result: marshalResult(tpl, result)}
	if metered {
		u.Ledger.Commit(ctx, hold)
		balance := reservedBalance
		resp.UpdatedBalance = &balance
	}
	return resp, nil
}

func parseEnvelope(payload json.RawMessage) (envelope, error) {
	var env envelope
	if len(payload) == 0 {
		return env, nil
	}
	if err := json.Unmarshal(payload, &env); err != nil {
		return env, fmt.Errorf("%w: %v", agent.ErrMalformedPayload, err)
	}
	return env, nil
}

func extractAttachment(env envelope, tpl agent.Template) (*agent.Attachment, error) {
	if env.Image == "" {
		if tpl.NeedsAttachment {
			return nil, fmt.Errorf("%w: image is required", agent.ErrMalformedPayload)
		}
		return nil, nil
	}
	if len(env.Image) > maxAttachmentLen {
		return nil, fmt.Errorf("%w: attachment too large", agent.ErrMalformedPayload)
	}
	mime := env.MimeType
	if mime == "" {
		mime = "image/jpeg"
	}
	return &agent.Attachment{Data: env.Image, MimeType: mime}, nil
}

func marshalResult(tpl agent.Template, result invoker.Result) json.RawMessage {
	switch {
	case tpl.ImageOutput:
		return mustMarshal(imageResult{ImageBase64: result.ImageBase64})
	case tpl.Schema != nil:
		return result.JSON
	case tpl.Conversational:
		return mustMarshal(chatResult{Text: result.Text})
	default:
		return mustMarshal(textResult{Content: result.Text})
	}
}

func mustMarshal(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
