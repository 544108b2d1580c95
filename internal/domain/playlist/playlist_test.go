package playlist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// musicDir creates a directory populated with empty files.
func musicDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}
	return dir
}

func TestScan(t *testing.T) {
	tests := []struct {
		name      string
		files     []string
		wantLen   int
		wantErr   error
		wantFirst string
	}{
		{
			name:    "empty directory",
			files:   []string{},
			wantErr: ErrNoTracks,
		},
		{
			name:    "only unsupported extensions",
			files:   []string{"cover.jpg", "notes.txt", "track.midi"},
			wantErr: ErrNoTracks,
		},
		{
			name:      "single mp3",
			files:     []string{"song.mp3"},
			wantLen:   1,
			wantFirst: "song.mp3",
		},
		{
			name:      "mixed formats with junk",
			files:     []string{"a.mp3", "b.wav", "c.flac", "cover.png"},
			wantLen:   3,
			wantFirst: "a.mp3",
		},
		{
			name:      "uppercase extension",
			files:     []string{"LOUD.MP3"},
			wantLen:   1,
			wantFirst: "LOUD.MP3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := musicDir(t, tt.files...)

			p, err := Scan(dir)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantLen, p.Len())
			assert.Equal(t, 0, p.Position())
			assert.Equal(t, tt.wantFirst, p.CurrentName())
		})
	}
}

func TestScan_NotADirectory(t *testing.T) {
	dir := musicDir(t, "song.mp3")

	_, err := Scan(filepath.Join(dir, "song.mp3"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotDirectory))
}

func TestScan_MissingDirectory(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestScan_IgnoresSubdirectories(t *testing.T) {
	dir := musicDir(t, "a.mp3")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "more.mp3"), 0755))

	p, err := Scan(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Len())
}

func TestPlaylist_SequentialOrder(t *testing.T) {
	dir := musicDir(t, "a.mp3", "b.wav", "c.flac")

	p, err := Scan(dir)
	require.NoError(t, err)

	assert.Equal(t, "a.mp3", p.CurrentName())
	p.Advance()
	assert.Equal(t, "b.wav", p.CurrentName())
	p.Advance()
	assert.Equal(t, "c.flac", p.CurrentName())
	p.Advance()
	assert.Equal(t, "a.mp3", p.CurrentName(), "advance past the end wraps to the start")

	p.Retreat()
	assert.Equal(t, "c.flac", p.CurrentName(), "retreat from the start wraps to the end")
}

func TestPlaylist_CyclicInvariants(t *testing.T) {
	dir := musicDir(t, "a.mp3", "b.mp3", "c.mp3", "d.mp3", "e.mp3")

	p, err := Scan(dir)
	require.NoError(t, err)

	for start := 0; start < p.Len(); start++ {
		// Advance N times returns to the starting position.
		before := p.Position()
		for i := 0; i < p.Len(); i++ {
			p.Advance()
		}
		assert.Equal(t, before, p.Position())

		// Retreat N times does too.
		for i := 0; i < p.Len(); i++ {
			p.Retreat()
		}
		assert.Equal(t, before, p.Position())

		// Advance then retreat is an identity.
		p.Advance()
		p.Retreat()
		assert.Equal(t, before, p.Position())

		p.Advance()
	}
}

func TestSupported(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"track.mp3", true},
		{"track.WAV", true},
		{"track.FlAc", true},
		{"track.ogg", true},
		{"track.aac", true},
		{"track.m4a", true},
		{"track.opus", false},
		{"track.txt", false},
		{"track", false},
		{"mp3", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Supported(tt.name))
		})
	}
}
