package player

import (
	"math"
	"sync"

	zlog "github.com/rs/zerolog/log"

	"github.com/dkrasnov/melodeon/internal/domain/playlist"
)

// volumeStep is the gain change applied per volume command.
const volumeStep = 0.1

// Sink is the audio output capability the dispatcher mutates. Load stops
// whatever is playing, decodes the file at path and starts playback;
// Empty reports a drained sink.
type Sink interface {
	Load(path string) error
	Stop()
	Play()
	Pause()
	Paused() bool
	Empty() bool
	Volume() float64
	SetVolume(v float64)
}

// Dispatcher is the single serialization point for playback mutations.
// The playlist cursor and the sink form one logical playback state; every
// read-modify-write of it, from any goroutine, runs under d.mu.
type Dispatcher struct {
	mu   sync.Mutex
	list *playlist.Playlist
	sink Sink

	done     chan struct{}
	stopOnce sync.Once
}

// NewDispatcher creates a dispatcher over the scanned playlist and sink.
func NewDispatcher(list *playlist.Playlist, sink Sink) *Dispatcher {
	return &Dispatcher{
		list: list,
		sink: sink,
		done: make(chan struct{}),
	}
}

// Start begins playback of the track under the cursor.
func (d *Dispatcher) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loadCurrentLocked()
}

// Done is closed when a Stop command has been applied. The main loop
// waits on it and performs orderly teardown.
func (d *Dispatcher) Done() <-chan struct{} {
	return d.done
}

// Shutdown requests process teardown, as if a Stop command were applied.
func (d *Dispatcher) Shutdown() {
	d.stopOnce.Do(func() { close(d.done) })
}

// Apply executes one command against the shared playback state, holding
// exclusive access for the duration of the operation. A failure to load
// the new current track is returned; the cursor stays advanced.
func (d *Dispatcher) Apply(cmd Command) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch cmd {
	case Next:
		d.list.Advance()
		return d.loadCurrentLocked()
	case Prev:
		d.list.Retreat()
		return d.loadCurrentLocked()
	case TogglePause:
		if d.sink.Paused() {
			d.sink.Play()
		} else {
			d.sink.Pause()
		}
	case Stop:
		d.stopOnce.Do(func() { close(d.done) })
	case VolumeUp:
		d.sink.SetVolume(math.Min(d.sink.Volume()+volumeStep, 1.0))
	case VolumeDown:
		d.sink.SetVolume(math.Max(d.sink.Volume()-volumeStep, 0.0))
	}
	return nil
}

// loadCurrentLocked loads and plays the track under the cursor.
// Must be called with d.mu held.
func (d *Dispatcher) loadCurrentLocked() error {
	if err := d.sink.Load(d.list.Current()); err != nil {
		return err
	}
	zlog.Info().Msgf("now playing: %s (%d/%d)",
		d.list.CurrentName(), d.list.Position()+1, d.list.Len())
	return nil
}
