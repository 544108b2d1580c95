package player

import (
	"context"
	"time"

	zlog "github.com/rs/zerolog/log"
)

// DefaultPollInterval is the supervisor's polling quantum.
const DefaultPollInterval = 100 * time.Millisecond

// Supervisor detects natural end-of-track by polling the sink and
// advances the playlist without an explicit command. It takes the same
// lock as the dispatcher for every check, and never holds it across a
// blocking wait.
type Supervisor struct {
	dispatcher *Dispatcher
	interval   time.Duration
}

// NewSupervisor creates a supervisor polling at the given interval.
func NewSupervisor(d *Dispatcher, interval time.Duration) *Supervisor {
	return &Supervisor{dispatcher: d, interval: interval}
}

// Run polls until ctx is cancelled or the dispatcher shuts down.
func (s *Supervisor) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.dispatcher.Done():
			return
		case <-ticker.C:
			s.poll()
		}
	}
}

// poll advances to the next track if the sink has drained. A track that
// fails to load stays drained, so the next tick advances past it.
func (s *Supervisor) poll() {
	d := s.dispatcher

	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.sink.Empty() {
		return
	}

	d.list.Advance()
	if err := d.loadCurrentLocked(); err != nil {
		zlog.Warn().Err(err).Msgf("supervisor: skipping %s", d.list.CurrentName())
	}
}
