package boombox

import "fmt"

// Category selects one of the mixer's volume groups.
type Category int

const (
	Master Category = iota
	Music
	SFX
	Voice

	categoryCount
)

func (c Category) String() string {
	switch c {
	case Master:
		return "master"
	case Music:
		return "music"
	case SFX:
		return "sfx"
	case Voice:
		return "voice"
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

func (c Category) valid() bool {
	return c >= Master && c < categoryCount
}

// fadeable reports whether the category may be the target of a Fade.
func (c Category) fadeable() bool {
	return c == Music || c == Voice
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// volumeState holds the stored scalar per category. Stored values never
// leave [0, 1]; what a source actually receives is the effective product.
type volumeState struct {
	levels [categoryCount]float64
}

func (s *volumeState) set(c Category, v float64) {
	s.levels[c] = clamp01(v)
}

func (s *volumeState) get(c Category) float64 {
	return s.levels[c]
}

// effective is the level pushed to sources of c: the category scalar scaled
// by master. Master's own effective level is just master.
func (s *volumeState) effective(c Category) float64 {
	if c == Master {
		return s.levels[Master]
	}
	return s.levels[c] * s.levels[Master]
}
