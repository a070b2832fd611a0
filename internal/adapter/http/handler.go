package httpadapter

import (
	"context"
	"encoding/json"
	"errors"

	"agentgate/internal/app/gateway"
	"agentgate/internal/app/invoker"
	"agentgate/internal/app/ledger"
	"agentgate/internal/domain/agent"
	"agentgate/internal/domain/billing"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	Gateway gateway.UseCase
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())
	s.POST("/gateway", h.gateway)
	s.GET("/healthz", h.healthz)
}

type gatewayRequest struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload"`
}

func (h Handler) gateway(c context.Context, ctx *app.RequestContext) {
	var body gatewayRequest
	if err := json.Unmarshal(ctx.Request.Body(), &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "MALFORMED_PAYLOAD", "invalid json body")
		return
	}

	resp, err := h.Gateway.Execute(c, gateway.Request{
		Action:  body.Action,
		Payload: body.Payload,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) healthz(_ context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, map[string]string{"status": "ok"})
}

func writeError(ctx *app.RequestContext, err error) {
	var insufficient *billing.InsufficientFundsError
	switch {
	case errors.As(err, &insufficient):
		ctx.JSON(consts.StatusPaymentRequired, map[string]any{
			"error":    "INSUFFICIENT_FUNDS",
			"message":  insufficient.Error(),
			"required": insufficient.Required,
			"balance":  insufficient.Balance,
		})
	case errors.Is(err, agent.ErrUnknownAction):
		writeErrorBody(ctx, consts.StatusBadRequest, "UNKNOWN_ACTION", err.Error())
	case errors.Is(err, agent.ErrMalformedPayload),
		errors.Is(err, gateway.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "MALFORMED_PAYLOAD", err.Error())
	case errors.Is(err, invoker.ErrModelFailure):
		writeErrorBody(ctx, consts.StatusInternalServerError, "MODEL_ERROR", err.Error())
	case errors.Is(err, ledger.ErrLedgerFailure):
		log.Error().Err(err).Msg("ledger failure")
		writeErrorBody(ctx, consts.StatusInternalServerError, "LEDGER_ERROR", "ledger unavailable")
	default:
		log.Error().Err(err).Msg("unhandled gateway error")
		writeErrorBody(ctx, consts.StatusInternalServerError, "INTERNAL_ERROR", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]string{
		"error":   code,
		"message": message,
	})
}
