// Package key provides the key identities delivered by the input capture
// layer and the modifier bookkeeping shared with the hotkey matcher.
package key

import "strings"

// Code identifies a physical key, unified across capture backends.
type Code int

const (
	Unknown Code = iota

	// Letters
	A
	B
	C
	D
	E
	F
	G
	H
	I
	J
	K
	L
	M
	N
	O
	P
	Q
	R
	S
	T
	U
	V
	W
	X
	Y
	Z

	// Digits
	Num0
	Num1
	Num2
	Num3
	Num4
	Num5
	Num6
	Num7
	Num8
	Num9

	// Function keys
	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12

	// Editing and navigation
	Space
	Enter
	Tab
	Backspace
	Escape
	Insert
	Delete
	Home
	End
	PageUp
	PageDown
	Up
	Down
	Left
	Right

	// Modifiers
	ShiftLeft
	ShiftRight
	CtrlLeft
	CtrlRight
	AltLeft
	AltRight
	MetaLeft
	MetaRight

	// Media keys (XF86 on X11)
	MediaNext
	MediaPrev
	MediaPlayPause
	MediaStop
	VolumeUp
	VolumeDown
	VolumeMute
)

// Event is a single press or release observed by the capture layer.
type Event struct {
	Code  Code
	Press bool // true for key-down, false for key-up
}

// Modifiers holds the live state of the four logical modifier flags.
// Each flag reflects the most recent press/release of any physical key
// mapping to that modifier.
type Modifiers struct {
	Shift bool
	Ctrl  bool
	Alt   bool
	Meta  bool
}

// Update applies a press or release of c to the modifier flags.
// Non-modifier codes are ignored.
func (m *Modifiers) Update(c Code, press bool) {
	switch c {
	case ShiftLeft, ShiftRight:
		m.Shift = press
	case CtrlLeft, CtrlRight:
		m.Ctrl = press
	case AltLeft, AltRight:
		m.Alt = press
	case MetaLeft, MetaRight:
		m.Meta = press
	}
}

// IsModifier reports whether c is one of the modifier key identities.
func IsModifier(c Code) bool {
	switch c {
	case ShiftLeft, ShiftRight, CtrlLeft, CtrlRight, AltLeft, AltRight, MetaLeft, MetaRight:
		return true
	}
	return false
}

// names maps lowercase key names, as they appear in binding strings, to
// codes. Media keys accept the kernel names (nextsong), the short X names
// (audionext) and the full XF86 names found in most configs.
var names = map[string]Code{
	"a": A, "b": B, "c": C, "d": D, "e": E, "f": F, "g": G, "h": H, "i": I,
	"j": J, "k": K, "l": L, "m": M, "n": N, "o": O, "p": P, "q": Q, "r": R,
	"s": S, "t": T, "u": U, "v": V, "w": W, "x": X, "y": Y, "z": Z,

	"0": Num0, "1": Num1, "2": Num2, "3": Num3, "4": Num4,
	"5": Num5, "6": Num6, "7": Num7, "8": Num8, "9": Num9,

	"f1": F1, "f2": F2, "f3": F3, "f4": F4, "f5": F5, "f6": F6,
	"f7": F7, "f8": F8, "f9": F9, "f10": F10, "f11": F11, "f12": F12,

	"space":     Space,
	"enter":     Enter,
	"return":    Enter,
	"tab":       Tab,
	"backspace": Backspace,
	"escape":    Escape,
	"esc":       Escape,
	"insert":    Insert,
	"delete":    Delete,
	"home":      Home,
	"end":       End,
	"pageup":    PageUp,
	"pagedown":  PageDown,
	"up":        Up,
	"down":      Down,
	"left":      Left,
	"right":     Right,

	"shift": ShiftLeft,
	"ctrl":  CtrlLeft,
	"alt":   AltLeft,
	"meta":  MetaLeft,
	"super": MetaLeft,
	"win":   MetaLeft,

	"nextsong":             MediaNext,
	"audionext":            MediaNext,
	"xf86audionext":        MediaNext,
	"previoussong":         MediaPrev,
	"audioprev":            MediaPrev,
	"xf86audioprev":        MediaPrev,
	"playpause":            MediaPlayPause,
	"audioplay":            MediaPlayPause,
	"xf86audioplay":        MediaPlayPause,
	"stopcd":               MediaStop,
	"audiostop":            MediaStop,
	"xf86audiostop":        MediaStop,
	"volumeup":             VolumeUp,
	"xf86audioraisevolume": VolumeUp,
	"volumedown":           VolumeDown,
	"xf86audiolowervolume": VolumeDown,
	"volumemute":           VolumeMute,
	"xf86audiomute":        VolumeMute,
}

// Lookup resolves a key name to its code, case-insensitively.
func Lookup(name string) (Code, bool) {
	c, ok := names[strings.ToLower(name)]
	return c, ok
}
