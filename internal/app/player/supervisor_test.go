package player

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupervisor_AdvancesWhenDrained(t *testing.T) {
	sink := newFakeSink()
	d := NewDispatcher(scanned(t, "a.mp3", "b.mp3"), sink)
	s := NewSupervisor(d, time.Millisecond)

	require.NoError(t, d.Start())
	assert.Equal(t, []string{"a.mp3"}, sink.loads)

	// Still playing: a poll is a no-op.
	s.poll()
	assert.Equal(t, []string{"a.mp3"}, sink.loads)

	// Track drains naturally: the next poll advances.
	sink.empty = true
	s.poll()
	assert.Equal(t, []string{"a.mp3", "b.mp3"}, sink.loads)
	assert.False(t, sink.Empty())
}

func TestSupervisor_SkipsPastBrokenTracks(t *testing.T) {
	sink := newFakeSink()
	sink.broken["b.mp3"] = true
	d := NewDispatcher(scanned(t, "a.mp3", "b.mp3", "c.mp3"), sink)
	s := NewSupervisor(d, time.Millisecond)

	require.NoError(t, d.Start())

	// a.mp3 ends; the poll lands on the broken b.mp3, which fails to
	// load and leaves the sink drained.
	sink.empty = true
	s.poll()
	assert.True(t, sink.Empty())

	// The following poll moves on to c.mp3.
	s.poll()
	assert.Equal(t, []string{"a.mp3", "b.mp3", "c.mp3"}, sink.loads)
	assert.False(t, sink.Empty())
}

func TestSupervisor_RunStopsWithDispatcher(t *testing.T) {
	sink := newFakeSink()
	sink.empty = false // keep polls inert
	d := NewDispatcher(scanned(t, "a.mp3"), sink)
	s := NewSupervisor(d, time.Millisecond)

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Run(context.Background())
	}()

	require.NoError(t, d.Apply(Stop))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("supervisor did not stop after Stop command")
	}
}

func TestSupervisor_RunHonorsContext(t *testing.T) {
	sink := newFakeSink()
	sink.empty = false
	d := NewDispatcher(scanned(t, "a.mp3"), sink)
	s := NewSupervisor(d, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Run(ctx)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("supervisor did not stop on context cancel")
	}
}
