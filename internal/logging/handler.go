package logging

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// swapHandler forwards to a handler that Upgrade can replace while loggers are in use.
// Derived handlers (WithAttrs, WithGroup) share the slot so they follow later swaps.
type swapHandler struct {
	slot   *atomic.Pointer[slog.Handler]
	derive func(slog.Handler) slog.Handler
}

func newSwapHandler(initial slog.Handler) *swapHandler {
	slot := new(atomic.Pointer[slog.Handler])
	slot.Store(&initial)
	return &swapHandler{slot: slot, derive: func(h slog.Handler) slog.Handler { return h }}
}

func (h *swapHandler) swap(next slog.Handler) {
	h.slot.Store(&next)
}

func (h *swapHandler) current() slog.Handler {
	return h.derive(*h.slot.Load())
}

func (h *swapHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.current().Enabled(ctx, level)
}

func (h *swapHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.current().Handle(ctx, r)
}

func (h *swapHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	parent := h.derive
	return &swapHandler{slot: h.slot, derive: func(base slog.Handler) slog.Handler {
		return parent(base).WithAttrs(attrs)
	}}
}

func (h *swapHandler) WithGroup(name string) slog.Handler {
	parent := h.derive
	return &swapHandler{slot: h.slot, derive: func(base slog.Handler) slog.Handler {
		return parent(base).WithGroup(name)
	}}
}
