// Package hotkey provides the key-combination matcher that turns global
// keyboard input into playback commands.
package hotkey

import (
	"context"
	"strings"

	zlog "github.com/rs/zerolog/log"

	"github.com/dkrasnov/melodeon/internal/app/player"
	"github.com/dkrasnov/melodeon/internal/domain/key"
)

// Binding associates a command with a compiled key combination: a set of
// required modifier flags plus exactly one non-modifier key.
type Binding struct {
	Command player.Command
	Spec    string

	mods key.Modifiers
	code key.Code
	ok   bool // false when the key token does not resolve
}

// ParseBinding compiles a combination spec such as "ctrl+shift+p" or
// "XF86AudioNext". Tokens are split on '+' and matched case-insensitively;
// order is irrelevant. An unresolvable key token yields a binding that
// can never match, not an error.
func ParseBinding(cmd player.Command, spec string) Binding {
	b := Binding{Command: cmd, Spec: spec}
	for _, tok := range strings.Split(spec, "+") {
		switch strings.ToLower(strings.TrimSpace(tok)) {
		case "shift":
			b.mods.Shift = true
		case "ctrl":
			b.mods.Ctrl = true
		case "alt":
			b.mods.Alt = true
		case "meta", "super", "win":
			b.mods.Meta = true
		default:
			b.code, b.ok = key.Lookup(tok)
		}
	}
	if !b.ok {
		zlog.Warn().Msgf("hotkey: unresolvable key in %q, binding for %s will never fire", spec, cmd)
	}
	return b
}

// Matcher tracks the currently held keys and modifier flags over the
// input event stream and emits bound commands on matching presses.
type Matcher struct {
	bindings []Binding
	held     map[key.Code]struct{}
	mods     key.Modifiers
}

// NewMatcher builds a matcher from the configured hotkeys map (command
// token to combination spec). Unknown command tokens are skipped with a
// warning.
func NewMatcher(hotkeys map[string]string) *Matcher {
	m := &Matcher{held: make(map[key.Code]struct{})}
	for token, spec := range hotkeys {
		cmd, ok := player.ParseCommand(token)
		if !ok {
			zlog.Warn().Msgf("hotkey: unknown command %q in config, skipping", token)
			continue
		}
		m.bindings = append(m.bindings, ParseBinding(cmd, spec))
	}
	return m
}

// Handle applies one input event to the matcher state and returns the
// commands emitted by it. Matches fire only on presses; a release just
// updates state. Every binding is evaluated independently, so several
// bindings may fire on the same press.
func (m *Matcher) Handle(ev key.Event) []player.Command {
	if !ev.Press {
		delete(m.held, ev.Code)
		m.mods.Update(ev.Code, false)
		return nil
	}

	m.held[ev.Code] = struct{}{}
	m.mods.Update(ev.Code, true)

	var out []player.Command
	for _, b := range m.bindings {
		if m.matches(b) {
			out = append(out, b.Command)
		}
	}
	return out
}

// matches evaluates one binding against the live state: the four live
// modifier flags must exactly equal the binding's required set (an
// unrelated held modifier breaks the match), and the bound key must be
// among the held keys.
func (m *Matcher) matches(b Binding) bool {
	if !b.ok {
		return false
	}
	if m.mods != b.mods {
		return false
	}
	_, held := m.held[b.code]
	return held
}

// Run consumes events until the channel closes or ctx is cancelled,
// applying every emitted command.
func (m *Matcher) Run(ctx context.Context, events <-chan key.Event, apply func(player.Command) error) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			for _, cmd := range m.Handle(ev) {
				zlog.Debug().Msgf("hotkey: %s", cmd)
				if err := apply(cmd); err != nil {
					zlog.Warn().Err(err).Msgf("hotkey: %s failed", cmd)
				}
			}
		}
	}
}
