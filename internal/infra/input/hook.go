// Package input provides the global keyboard capture source feeding the
// hotkey matcher. Capture runs in its own goroutine and pushes logical
// events onto a channel, decoupling capture cadence from matching.
package input

import (
	"context"

	hook "github.com/robotn/gohook"
	zlog "github.com/rs/zerolog/log"

	"github.com/dkrasnov/melodeon/internal/domain/key"
)

// Hook captures global keyboard events and translates them to key
// events. Events are delivered in occurrence order; auto-repeat
// (key-hold) events are dropped so held combinations do not re-fire.
type Hook struct {
	events chan key.Event
}

// NewHook creates an unstarted capture hook.
func NewHook() *Hook {
	return &Hook{events: make(chan key.Event, 64)}
}

// Events returns the channel carrying translated press/release events.
// It is closed when capture ends.
func (h *Hook) Events() <-chan key.Event {
	return h.events
}

// Run consumes the capture stream until ctx is cancelled or the capture
// subsystem fails. A capture failure disables hotkey control; the rest
// of the process keeps running.
func (h *Hook) Run(ctx context.Context) {
	defer close(h.events)

	raw := hook.Start()
	defer hook.End()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-raw:
			if !ok {
				zlog.Warn().Msg("input: capture stream closed, hotkey control disabled")
				return
			}

			var press bool
			switch ev.Kind {
			case hook.KeyDown:
				press = true
			case hook.KeyUp:
				press = false
			default:
				continue
			}

			code, ok := translate(ev)
			if !ok {
				continue
			}

			select {
			case h.events <- key.Event{Code: code, Press: press}:
			default:
				zlog.Debug().Msg("input: event buffer full, dropping")
			}
		}
	}
}
