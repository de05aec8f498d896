// Package signal turns SIGINT/SIGTERM into context cancellation for a gitauto run.
//
// A canceled context never kills a git process that already started; workflow
// steps only check it before starting the next step.
//
// Import rules:
//   - CAN import: std lib only
//   - MUST NOT import: internal packages
package signal

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Handler cancels its context when the process receives an interrupt.
type Handler struct {
	ctx         context.Context //nolint:containedctx // handler owns the run context
	cancel      context.CancelCauseFunc
	cause       error
	interrupted chan struct{}
	done        chan struct{}
	once        sync.Once
	stopOnce    sync.Once
	sigChan     chan os.Signal

	mu       sync.Mutex
	received os.Signal
}

// NewHandler derives a context from parent that is canceled with cause when
// SIGINT or SIGTERM arrives.
//
//	h := signal.NewHandler(ctx, errors.ErrInterrupted)
//	defer h.Stop()
//	report, err := engine.RunTask(h.Context(), cfg, opts)
func NewHandler(parent context.Context, cause error) *Handler {
	ctx, cancel := context.WithCancelCause(parent)
	h := &Handler{
		ctx:         ctx,
		cancel:      cancel,
		cause:       cause,
		interrupted: make(chan struct{}),
		done:        make(chan struct{}),
		sigChan:     make(chan os.Signal, 1),
	}

	signal.Notify(h.sigChan, syscall.SIGINT, syscall.SIGTERM)
	go h.listen()

	return h
}

// Context returns the run context.
func (h *Handler) Context() context.Context {
	return h.ctx
}

// Interrupted closes when the first signal is received.
func (h *Handler) Interrupted() <-chan struct{} {
	return h.interrupted
}

// Signal returns the signal that interrupted the run, or nil.
func (h *Handler) Signal() os.Signal {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.received
}

// Stop stops listening and releases the context.
func (h *Handler) Stop() {
	h.stopOnce.Do(func() {
		signal.Stop(h.sigChan)
		close(h.done)
		h.cancel(context.Canceled)
	})
}

func (h *Handler) handleSignal(sig os.Signal) {
	h.once.Do(func() {
		h.mu.Lock()
		h.received = sig
		h.mu.Unlock()
		h.cancel(h.cause)
		close(h.interrupted)
	})
}

func (h *Handler) listen() {
	for {
		select {
		case <-h.ctx.Done():
			return
		case <-h.done:
			return
		case sig := <-h.sigChan:
			// only the first signal counts; keep draining so delivery never blocks
			h.handleSignal(sig)
		}
	}
}
