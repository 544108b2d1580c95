// Package player provides the shared command vocabulary and the
// dispatcher serializing control requests into playback mutations.
package player

// Command is one of the fixed, closed set of logical control operations.
// It is the single representation crossing from both producers (hotkey
// matcher and IPC listener) into the dispatcher.
type Command int

const (
	Next Command = iota
	Prev
	TogglePause
	Stop
	VolumeUp
	VolumeDown
)

// tokens maps wire tokens, as sent over the command channel and used as
// hotkey binding names in the config document, to commands.
var tokens = map[string]Command{
	"next":        Next,
	"prev":        Prev,
	"pause":       TogglePause,
	"stop":        Stop,
	"volume_up":   VolumeUp,
	"volume_down": VolumeDown,
}

// ParseCommand resolves a wire token to its command. Unrecognized tokens
// report ok=false and are ignored by callers.
func ParseCommand(token string) (Command, bool) {
	c, ok := tokens[token]
	return c, ok
}

// String returns the wire token of the command.
func (c Command) String() string {
	switch c {
	case Next:
		return "next"
	case Prev:
		return "prev"
	case TogglePause:
		return "pause"
	case Stop:
		return "stop"
	case VolumeUp:
		return "volume_up"
	case VolumeDown:
		return "volume_down"
	default:
		return "unknown"
	}
}
