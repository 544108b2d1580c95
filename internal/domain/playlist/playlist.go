// Package playlist provides the ordered track list and playback cursor.
package playlist

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
)

// Errors
var (
	ErrNotDirectory = errors.New("music path is not a directory")
	ErrNoTracks     = errors.New("no supported audio files found")
)

// supported holds the recognized audio file extensions, lowercase.
var supported = map[string]struct{}{
	".mp3":  {},
	".wav":  {},
	".flac": {},
	".ogg":  {},
	".aac":  {},
	".m4a":  {},
}

// Playlist is an ordered list of track paths with a current-position
// cursor. The list is immutable after Scan; the cursor always stays in
// [0, Len()) because construction rejects empty lists.
type Playlist struct {
	tracks []string
	cursor int
}

// Scan builds a playlist from the audio files directly inside dir.
// Entries are ordered by file name. Scan fails if dir is not a directory
// or contains no supported files.
func Scan(dir string) (*Playlist, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "music directory %s", dir)
	}
	if !info.IsDir() {
		return nil, errors.Wrapf(ErrNotDirectory, "%s", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "reading music directory %s", dir)
	}

	var tracks []string
	for _, e := range entries {
		if e.IsDir() || !Supported(e.Name()) {
			continue
		}
		tracks = append(tracks, filepath.Join(dir, e.Name()))
	}
	sort.Strings(tracks)

	if len(tracks) == 0 {
		return nil, errors.Wrapf(ErrNoTracks, "in %s", dir)
	}

	zlog.Info().Msgf("playlist: scanned %s: %d tracks", dir, len(tracks))

	return &Playlist{tracks: tracks}, nil
}

// Supported reports whether the file name carries a recognized audio
// extension, case-insensitively.
func Supported(name string) bool {
	_, ok := supported[strings.ToLower(filepath.Ext(name))]
	return ok
}

// Advance moves the cursor to the next track, wrapping at the end.
func (p *Playlist) Advance() {
	p.cursor = (p.cursor + 1) % len(p.tracks)
}

// Retreat moves the cursor to the previous track, wrapping at the start.
func (p *Playlist) Retreat() {
	if p.cursor == 0 {
		p.cursor = len(p.tracks) - 1
	} else {
		p.cursor--
	}
}

// Current returns the path of the track under the cursor.
func (p *Playlist) Current() string {
	return p.tracks[p.cursor]
}

// CurrentName returns the display name of the track under the cursor.
func (p *Playlist) CurrentName() string {
	return filepath.Base(p.tracks[p.cursor])
}

// Position returns the cursor index.
func (p *Playlist) Position() int {
	return p.cursor
}

// Len returns the number of tracks.
func (p *Playlist) Len() int {
	return len(p.tracks)
}
