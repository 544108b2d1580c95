package input

import (
	hook "github.com/robotn/gohook"

	"github.com/dkrasnov/melodeon/internal/domain/key"
)

// codeByName links the capture library's key names to our identities.
// Resolution to raw codes goes through hook.Keycode so the numeric code
// space stays the library's concern.
var codeByName = map[string]key.Code{
	"a": key.A, "b": key.B, "c": key.C, "d": key.D, "e": key.E,
	"f": key.F, "g": key.G, "h": key.H, "i": key.I, "j": key.J,
	"k": key.K, "l": key.L, "m": key.M, "n": key.N, "o": key.O,
	"p": key.P, "q": key.Q, "r": key.R, "s": key.S, "t": key.T,
	"u": key.U, "v": key.V, "w": key.W, "x": key.X, "y": key.Y,
	"z": key.Z,

	"0": key.Num0, "1": key.Num1, "2": key.Num2, "3": key.Num3,
	"4": key.Num4, "5": key.Num5, "6": key.Num6, "7": key.Num7,
	"8": key.Num8, "9": key.Num9,

	"f1": key.F1, "f2": key.F2, "f3": key.F3, "f4": key.F4,
	"f5": key.F5, "f6": key.F6, "f7": key.F7, "f8": key.F8,
	"f9": key.F9, "f10": key.F10, "f11": key.F11, "f12": key.F12,

	"space":     key.Space,
	"enter":     key.Enter,
	"tab":       key.Tab,
	"backspace": key.Backspace,
	"esc":       key.Escape,
	"insert":    key.Insert,
	"delete":    key.Delete,
	"home":      key.Home,
	"end":       key.End,
	"pageup":    key.PageUp,
	"pagedown":  key.PageDown,
	"up":        key.Up,
	"down":      key.Down,
	"left":      key.Left,
	"right":     key.Right,

	"shift":  key.ShiftLeft,
	"rshift": key.ShiftRight,
	"ctrl":   key.CtrlLeft,
	"rctrl":  key.CtrlRight,
	"alt":    key.AltLeft,
	"ralt":   key.AltRight,
	"cmd":    key.MetaLeft,
	"rcmd":   key.MetaRight,

	"audio_next":     key.MediaNext,
	"audio_prev":     key.MediaPrev,
	"audio_play":     key.MediaPlayPause,
	"audio_stop":     key.MediaStop,
	"audio_vol_up":   key.VolumeUp,
	"audio_vol_down": key.VolumeDown,
	"audio_mute":     key.VolumeMute,
}

// rawcodes is the reverse lookup from the library's raw codes.
var rawcodes = func() map[uint16]key.Code {
	m := make(map[uint16]key.Code, len(codeByName))
	for name, code := range codeByName {
		if raw, ok := hook.Keycode[name]; ok {
			m[raw] = code
		}
	}
	return m
}()

// translate resolves a captured event to a key identity. Capture
// backends differ on which event field carries the portable code, so
// both are checked.
func translate(ev hook.Event) (key.Code, bool) {
	if c, ok := rawcodes[ev.Rawcode]; ok {
		return c, true
	}
	if c, ok := rawcodes[ev.Keycode]; ok {
		return c, true
	}
	return key.Unknown, false
}
