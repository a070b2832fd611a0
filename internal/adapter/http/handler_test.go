package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"agentgate/internal/adapter/repo/memory"
	"agentgate/internal/app/gateway"
	"agentgate/internal/app/invoker"
	"agentgate/internal/app/ledger"
	"agentgate/internal/app/ports"
	"agentgate/internal/domain/agent"
	"agentgate/internal/domain/billing"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type fakeProvider struct {
	result ports.ModelResult
	err    error
}

func (f fakeProvider) Generate(_ context.Context, _ ports.ModelRequest) (ports.ModelResult, error) {
	if f.err != nil {
		return ports.ModelResult{}, f.err
	}
	return f.result, nil
}

func newHandler(provider ports.ModelProvider, store *memory.Store) Handler {
	repo := memory.NewAccountRepo(store)
	return Handler{
		Gateway: gateway.UseCase{
			Registry:    agent.NewRegistry(),
			Accounts:    repo,
			Ledger:      ledger.Service{Accounts: repo},
			Invoker:     invoker.Invoker{Provider: provider},
			SignupBonus: 50,
		},
	}
}

func TestGateway_ChatOK(t *testing.T) {
	h := newHandler(fakeProvider{result: ports.ModelResult{Text: "hello!"}}, memory.NewStore())
	ctx := &app.RequestContext{}
	ctx.Request.SetBody([]byte(`{
		"action": "chat",
		"payload": {
			"message": "hi",
			"userProfile": {"externalId": "tg-1", "name": "Ira"}
		}
	}`))

	h.gateway(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusOK; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	var body struct {
		Result         map[string]string `json:"result"`
		UpdatedBalance *int64            `json:"updatedBalance"`
	}
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if body.Result["text"] != "hello!" {
		t.Fatalf("result mismatch: %#v", body.Result)
	}
	if body.UpdatedBalance == nil || *body.UpdatedBalance != 49 {
		t.Fatalf("updatedBalance mismatch: %v", body.UpdatedBalance)
	}
}

func TestGateway_UnmeteredOmitsBalance(t *testing.T) {
	h := newHandler(fakeProvider{result: ports.ModelResult{Text: "hello!"}}, memory.NewStore())
	ctx := &app.RequestContext{}
	ctx.Request.SetBody([]byte(`{"action": "chat", "payload": {"message": "hi"}}`))

	h.gateway(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusOK; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	var body map[string]json.RawMessage
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if _, ok := body["updatedBalance"]; ok {
		t.Fatal("unmetered response must omit updatedBalance")
	}
}

func TestGateway_InvalidJSONBody(t *testing.T) {
	h := newHandler(fakeProvider{}, memory.NewStore())
	ctx := &app.RequestContext{}
	ctx.Request.SetBody([]byte(`{"action": `))

	h.gateway(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusBadRequest; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	var body map[string]string
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got, want := body["error"], "MALFORMED_PAYLOAD"; got != want {
		t.Fatalf("error code mismatch: got=%q want=%q", got, want)
	}
}

func TestGateway_InsufficientFundsBody(t *testing.T) {
	store := memory.NewStore()
	store.Seed(billing.Account{ExternalID: "tg-2", Balance: 3})
	h := newHandler(fakeProvider{result: ports.ModelResult{Text: "ok"}}, store)
	ctx := &app.RequestContext{}
	ctx.Request.SetBody([]byte(`{
		"action": "plan",
		"payload": {
			"goal": "bulk",
			"userProfile": {"externalId": "tg-2", "name": "Ira"}
		}
	}`))

	h.gateway(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusPaymentRequired; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	var body struct {
		Error    string `json:"error"`
		Message  string `json:"message"`
		Required int64  `json:"required"`
		Balance  int64  `json:"balance"`
	}
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if body.Error != "INSUFFICIENT_FUNDS" {
		t.Fatalf("error code mismatch: got=%q", body.Error)
	}
	if body.Required != 5 || body.Balance != 3 {
		t.Fatalf("detail mismatch: required=%d balance=%d", body.Required, body.Balance)
	}
	if body.Message == "" {
		t.Fatal("message must be populated")
	}
}

func TestWriteError_UnknownAction(t *testing.T) {
	ctx := &app.RequestContext{}
	writeError(ctx, fmt.Errorf("%w: %q", agent.ErrUnknownAction, "foo"))

	if got, want := ctx.Response.StatusCode(), consts.StatusBadRequest; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	var body map[string]string
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got, want := body["error"], "UNKNOWN_ACTION"; got != want {
		t.Fatalf("error code mismatch: got=%q want=%q", got, want)
	}
}

func TestWriteError_MalformedPayload(t *testing.T) {
	ctx := &app.RequestContext{}
	writeError(ctx, fmt.Errorf("%w: goal is required", agent.ErrMalformedPayload))

	if got, want := ctx.Response.StatusCode(), consts.StatusBadRequest; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	var body map[string]string
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got, want := body["error"], "MALFORMED_PAYLOAD"; got != want {
		t.Fatalf("error code mismatch: got=%q want=%q", got, want)
	}
}

func TestWriteError_ModelFailure(t *testing.T) {
	ctx := &app.RequestContext{}
	writeError(ctx, &invoker.ModelError{Stage: "call", Cause: errors.New("timeout")})

	if got, want := ctx.Response.StatusCode(), consts.StatusInternalServerError; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	var body map[string]string
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got, want := body["error"], "MODEL_ERROR"; got != want {
		t.Fatalf("error code mismatch: got=%q want=%q", got, want)
	}
}

func TestWriteError_LedgerFailure(t *testing.T) {
	ctx := &app.RequestContext{}
	writeError(ctx, errors.Join(ledger.ErrLedgerFailure, errors.New("connection refused")))

	if got, want := ctx.Response.StatusCode(), consts.StatusInternalServerError; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	var body map[string]string
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got, want := body["error"], "LEDGER_ERROR"; got != want {
		t.Fatalf("error code mismatch: got=%q want=%q", got, want)
	}
}

func TestWriteError_Unhandled(t *testing.T) {
	ctx := &app.RequestContext{}
	writeError(ctx, errors.New("surprise"))

	if got, want := ctx.Response.StatusCode(), consts.StatusInternalServerError; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	var body map[string]string
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got, want := body["error"], "INTERNAL_ERROR"; got != want {
		t.Fatalf("error code mismatch: got=%q want=%q", got, want)
	}
}

func TestHealthz(t *testing.T) {
	h := Handler{}
	ctx := &app.RequestContext{}

	h.healthz(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusOK; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
}
