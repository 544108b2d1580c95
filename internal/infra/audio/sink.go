// Package audio provides the playback sink backed by the system speaker,
// with per-extension decoding of local audio files.
package audio

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// ErrUnsupported marks files whose extension is scanned but for which no
// decoder is available (currently .aac and .m4a).
var ErrUnsupported = errors.New("no decoder for file type")

// Options configure the speaker output. They arrive as a free-form
// settings map in the config document.
type Options struct {
	SampleRate int `mapstructure:"sample_rate" default:"48000" validate:"gt=0"`
	BufferMs   int `mapstructure:"buffer_ms" default:"100" validate:"gt=0"`
}

// SpeakerSink plays decoded streams through the system speaker. Sources
// are resampled to the fixed output rate chosen at construction.
//
// SpeakerSink performs no locking of its own: the dispatcher and the
// supervisor already serialize every call through one mutex. Mutation of
// live streamer fields additionally holds the speaker lock, as beep
// requires.
type SpeakerSink struct {
	rate beep.SampleRate

	ctrl    *beep.Ctrl
	vol     *effects.Volume
	current beep.StreamSeekCloser
	file    *os.File

	level float64 // linear volume in [0, 1]
	empty atomic.Bool
}

// NewSpeakerSink initializes the speaker output. Failure here means no
// output device is available, which is fatal at startup.
func NewSpeakerSink(opts Options) (*SpeakerSink, error) {
	rate := beep.SampleRate(opts.SampleRate)
	if err := speaker.Init(rate, rate.N(time.Duration(opts.BufferMs)*time.Millisecond)); err != nil {
		return nil, errors.Wrap(err, "initializing speaker")
	}
	s := &SpeakerSink{rate: rate, level: 1.0}
	s.empty.Store(true)
	return s, nil
}

// Load stops the current playback, then decodes the file at path and
// starts playing it. A broken or undecodable file leaves the sink
// drained and the error is returned.
func (s *SpeakerSink) Load(path string) error {
	s.Stop()

	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "opening %s", path)
	}

	streamer, format, err := decode(f, path)
	if err != nil {
		f.Close()
		return errors.Wrapf(err, "decoding %s", filepath.Base(path))
	}

	s.current = streamer
	s.file = f

	var stream beep.Streamer = streamer
	if format.SampleRate != s.rate {
		stream = beep.Resample(4, format.SampleRate, s.rate, streamer)
	}

	vol := &effects.Volume{Streamer: stream, Base: 2}
	applyLevel(vol, s.level)
	ctrl := &beep.Ctrl{Streamer: vol}

	s.vol = vol
	s.ctrl = ctrl
	s.empty.Store(false)

	speaker.Play(beep.Seq(ctrl, beep.Callback(func() {
		s.empty.Store(true)
	})))

	return nil
}

// Stop clears the speaker and releases the current source.
func (s *SpeakerSink) Stop() {
	speaker.Clear()
	if s.current != nil {
		s.current.Close()
		s.current = nil
	}
	if s.file != nil {
		s.file.Close()
		s.file = nil
	}
	s.ctrl = nil
	s.vol = nil
	s.empty.Store(true)
}

// Play resumes paused playback.
func (s *SpeakerSink) Play() {
	speaker.Lock()
	if s.ctrl != nil {
		s.ctrl.Paused = false
	}
	speaker.Unlock()
}

// Pause pauses playback, keeping the current position.
func (s *SpeakerSink) Pause() {
	speaker.Lock()
	if s.ctrl != nil {
		s.ctrl.Paused = true
	}
	speaker.Unlock()
}

// Paused reports whether playback is paused.
func (s *SpeakerSink) Paused() bool {
	speaker.Lock()
	defer speaker.Unlock()
	return s.ctrl != nil && s.ctrl.Paused
}

// Empty reports whether the sink has nothing pending or playing. It
// becomes true when the current stream drains naturally or after Stop.
func (s *SpeakerSink) Empty() bool {
	return s.empty.Load()
}

// Volume returns the linear volume level in [0, 1].
func (s *SpeakerSink) Volume() float64 {
	return s.level
}

// SetVolume sets the linear volume level. 0 is silence, 1 is unity gain.
func (s *SpeakerSink) SetVolume(v float64) {
	s.level = v
	speaker.Lock()
	if s.vol != nil {
		applyLevel(s.vol, v)
	}
	speaker.Unlock()
}

// Close tears the sink down for process exit.
func (s *SpeakerSink) Close() {
	s.Stop()
	speaker.Close()
}

// applyLevel maps the linear level onto beep's exponential volume:
// with Base 2 and Volume log2(v) the resulting gain is exactly v.
func applyLevel(vol *effects.Volume, level float64) {
	if level <= 0 {
		vol.Silent = true
		return
	}
	vol.Silent = false
	vol.Volume = math.Log2(level)
}

// decode picks a decoder by file extension, case-insensitively.
func decode(f *os.File, path string) (beep.StreamSeekCloser, beep.Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return mp3.Decode(f)
	case ".wav":
		return wav.Decode(f)
	case ".flac":
		return flac.Decode(f)
	case ".ogg":
		return vorbis.Decode(f)
	default:
		return nil, beep.Format{}, errors.Wrapf(ErrUnsupported, "%s", filepath.Ext(path))
	}
}
