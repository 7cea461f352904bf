package boombox

import (
	"fmt"
	"sort"
	"strings"
)

// Library maps symbolic names to assets. It is built once from a sound bank
// and swapped into a Manager wholesale; a rebuilt bank replaces the whole
// library rather than patching the old one.
type Library struct {
	assets map[string]*Asset
}

// NewLibrary returns an empty library.
func NewLibrary() *Library {
	return &Library{assets: make(map[string]*Asset)}
}

// Add registers an asset under its name, sanitizing it first so the
// stored key always matches what Lookup queries by. A name that is already
// taken logs a warning and returns ErrDuplicateName; the first
// registration stays in effect.
func (l *Library) Add(a *Asset) error {
	if a == nil || a.Name == "" {
		return fmt.Errorf("boombox: add asset: empty name")
	}
	a.Name = SanitizeName(a.Name)
	if _, ok := l.assets[a.Name]; ok {
		logf("boombox: Warning: duplicate sound %q, keeping the first", a.Name)
		return fmt.Errorf("%w: %q", ErrDuplicateName, a.Name)
	}
	l.assets[a.Name] = a
	return nil
}

// Lookup finds an asset by name. The query is sanitized first, so the
// authored name ("Menu Select") and the symbolic one ("MenuSelect") both
// resolve. Safe on a nil library.
func (l *Library) Lookup(name string) (*Asset, bool) {
	if l == nil {
		return nil, false
	}
	a, ok := l.assets[SanitizeName(name)]
	return a, ok
}

// Len reports the number of registered assets. Safe on a nil library.
func (l *Library) Len() int {
	if l == nil {
		return 0
	}
	return len(l.assets)
}

// Names returns every registered name in sorted order. Safe on a nil
// library.
func (l *Library) Names() []string {
	if l == nil {
		return nil
	}
	names := make([]string, 0, len(l.assets))
	for name := range l.assets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SanitizeName reduces an authored sound name to a symbolic one: ASCII
// letters and digits survive, everything else is stripped, a leading digit
// gets a '_' prefix, and a name with nothing left becomes "unnamed".
func SanitizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out == "" {
		return "unnamed"
	}
	if out[0] >= '0' && out[0] <= '9' {
		return "_" + out
	}
	return out
}
