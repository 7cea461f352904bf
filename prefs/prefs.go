// Package prefs persists player volume preferences. The GData store writes
// them to the platform's data directory; Memory keeps them in-process for
// tests and hosts without persistence.
package prefs

// Volumes is the persisted slice of mixer state.
type Volumes struct {
	Master float64 `json:"master"`
	Music  float64 `json:"music"`
	SFX    float64 `json:"sfx"`
	Voice  float64 `json:"voice"`
	Muted  bool    `json:"muted"`
}

// Clamp returns v with every level forced into [0, 1]. Stores clamp on
// load so a hand-edited settings file cannot push levels out of range.
func (v Volumes) Clamp() Volumes {
	v.Master = clamp01(v.Master)
	v.Music = clamp01(v.Music)
	v.SFX = clamp01(v.SFX)
	v.Voice = clamp01(v.Voice)
	return v
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

// Store loads and saves volume preferences.
type Store interface {
	// Load returns the saved volumes and whether anything was saved. A
	// missing settings file is not an error; it reports ok == false.
	Load() (v Volumes, ok bool, err error)

	// Save persists the volumes, replacing whatever was saved before.
	Save(v Volumes) error
}
