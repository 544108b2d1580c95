package player

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkrasnov/melodeon/internal/domain/playlist"
)

// fakeSink records playback mutations. Load mirrors the real sink:
// it drains first, then either starts the new source or fails.
type fakeSink struct {
	loads  []string // base names of loaded files, in order
	broken map[string]bool

	paused bool
	empty  bool
	volume float64
}

func newFakeSink() *fakeSink {
	return &fakeSink{broken: make(map[string]bool), empty: true}
}

func (f *fakeSink) Load(path string) error {
	f.Stop()
	name := filepath.Base(path)
	f.loads = append(f.loads, name)
	if f.broken[name] {
		return errors.Newf("decoding %s: corrupt stream", name)
	}
	f.empty = false
	return nil
}

func (f *fakeSink) Stop() {
	f.empty = true
	f.paused = false
}

func (f *fakeSink) Play()               { f.paused = false }
func (f *fakeSink) Pause()              { f.paused = true }
func (f *fakeSink) Paused() bool        { return f.paused }
func (f *fakeSink) Empty() bool         { return f.empty }
func (f *fakeSink) Volume() float64     { return f.volume }
func (f *fakeSink) SetVolume(v float64) { f.volume = v }

// scanned builds a playlist over real empty files.
func scanned(t *testing.T, names ...string) *playlist.Playlist {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}
	p, err := playlist.Scan(dir)
	require.NoError(t, err)
	return p
}

func TestDispatcher_NextPrev(t *testing.T) {
	sink := newFakeSink()
	d := NewDispatcher(scanned(t, "a.mp3", "b.wav", "c.flac"), sink)

	require.NoError(t, d.Start())
	require.NoError(t, d.Apply(Next))
	require.NoError(t, d.Apply(Next))
	require.NoError(t, d.Apply(Next)) // wraps
	require.NoError(t, d.Apply(Prev)) // wraps back

	assert.Equal(t, []string{"a.mp3", "b.wav", "c.flac", "a.mp3", "c.flac"}, sink.loads)
}

func TestDispatcher_TogglePause(t *testing.T) {
	sink := newFakeSink()
	d := NewDispatcher(scanned(t, "a.mp3"), sink)
	require.NoError(t, d.Start())

	require.NoError(t, d.Apply(TogglePause))
	assert.True(t, sink.paused)

	require.NoError(t, d.Apply(TogglePause))
	assert.False(t, sink.paused)
}

func TestDispatcher_VolumeClamped(t *testing.T) {
	tests := []struct {
		name  string
		start float64
		cmds  []Command
		want  float64
	}{
		{"two steps up", 0.5, []Command{VolumeUp, VolumeUp}, 0.7},
		{"clamped at one", 0.95, []Command{VolumeUp, VolumeUp}, 1.0},
		{"clamped at zero", 0.05, []Command{VolumeDown, VolumeDown}, 0.0},
		{"down then up", 0.5, []Command{VolumeDown, VolumeUp}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := newFakeSink()
			sink.volume = tt.start
			d := NewDispatcher(scanned(t, "a.mp3"), sink)

			for _, cmd := range tt.cmds {
				require.NoError(t, d.Apply(cmd))
			}
			assert.InDelta(t, tt.want, sink.volume, 1e-9)
		})
	}
}

func TestDispatcher_Stop(t *testing.T) {
	d := NewDispatcher(scanned(t, "a.mp3"), newFakeSink())

	select {
	case <-d.Done():
		t.Fatal("done before stop")
	default:
	}

	require.NoError(t, d.Apply(Stop))
	select {
	case <-d.Done():
	default:
		t.Fatal("done not closed after stop")
	}

	// Idempotent; a second stop must not panic.
	require.NoError(t, d.Apply(Stop))
	d.Shutdown()
}

func TestDispatcher_LoadFailureKeepsCursorAdvanced(t *testing.T) {
	sink := newFakeSink()
	sink.broken["b.wav"] = true
	d := NewDispatcher(scanned(t, "a.mp3", "b.wav", "c.flac"), sink)

	require.NoError(t, d.Start())

	// Advancing onto the broken track reports the failure but the
	// cursor stays on it; no automatic skip happens here.
	err := d.Apply(Next)
	require.Error(t, err)
	assert.True(t, sink.Empty())

	// The next explicit advance continues from the broken position.
	require.NoError(t, d.Apply(Next))
	assert.Equal(t, []string{"a.mp3", "b.wav", "c.flac"}, sink.loads)
}
