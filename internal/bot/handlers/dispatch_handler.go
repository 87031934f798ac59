package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewDispatchHandler returns the catch-all handler that feeds updates into
// the conversation flow. It expects LocationGate in front of it.
func NewDispatchHandler(deps HandlerDeps) bot.HandlerFunc {
	return dispatchHandler{deps}.Handle
}

type dispatchHandler struct {
	deps HandlerDeps
}

func (h dispatchHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "dispatch")

	ev, ok := EventFromUpdate(update)
	if !ok {
		log.DebugContext(ctx, "Ignoring unsupported update", "update_id", update.ID)
		return
	}

	if err := h.deps.Flow.Dispatch(ctx, ev); err != nil {
		h.deps.Flow.ReportError(ctx, ev.ChatID, err)
	}
}

// NewDefaultHandler is the dispatch handler behind the location gate.
func NewDefaultHandler(deps HandlerDeps) bot.HandlerFunc {
	return LocationGate(deps)(NewDispatchHandler(deps))
}
