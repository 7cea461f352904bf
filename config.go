package boombox

import "math/rand"

// Config sets pool sizes and initial volumes for a Manager. Start from
// DefaultConfig and adjust fields rather than building one from zero: a
// zero volume is taken literally, as silence.
type Config struct {
	// SFXChannels is the number of effect channels created up front.
	// These channels are never destroyed.
	SFXChannels int

	// MaxSFXChannels caps how far the effect pool may grow when every
	// channel is busy. 0 means unlimited. A cap below SFXChannels is
	// raised to it.
	MaxSFXChannels int

	// VoiceChannels and MaxVoiceChannels size the voice pool the same way.
	VoiceChannels    int
	MaxVoiceChannels int

	// EnableVoice turns the voice pool on. With it off, PlayVoice logs a
	// warning and drops the request.
	EnableVoice bool

	MasterVolume float64
	MusicVolume  float64
	SFXVolume    float64
	VoiceVolume  float64

	// Rand picks among sound variants. nil uses the shared math/rand
	// source; tests pass a seeded one.
	Rand *rand.Rand
}

// DefaultConfig returns the settings a typical game starts from.
func DefaultConfig() *Config {
	return &Config{
		SFXChannels:      8,
		MaxSFXChannels:   16,
		VoiceChannels:    2,
		MaxVoiceChannels: 4,
		EnableVoice:      false,
		MasterVolume:     1.0,
		MusicVolume:      0.75,
		SFXVolume:        1.0,
		VoiceVolume:      1.0,
	}
}

// sanitize forces the config into a usable shape without failing: counts
// get floors, caps are reconciled with pool sizes, volumes are clamped.
func (c *Config) sanitize() {
	if c.SFXChannels < 1 {
		c.SFXChannels = 1
	}
	if c.MaxSFXChannels < 0 {
		c.MaxSFXChannels = 0
	}
	if c.MaxSFXChannels > 0 && c.MaxSFXChannels < c.SFXChannels {
		c.MaxSFXChannels = c.SFXChannels
	}
	if c.VoiceChannels < 1 {
		c.VoiceChannels = 1
	}
	if c.MaxVoiceChannels < 0 {
		c.MaxVoiceChannels = 0
	}
	if c.MaxVoiceChannels > 0 && c.MaxVoiceChannels < c.VoiceChannels {
		c.MaxVoiceChannels = c.VoiceChannels
	}
	c.MasterVolume = clamp01(c.MasterVolume)
	c.MusicVolume = clamp01(c.MusicVolume)
	c.SFXVolume = clamp01(c.SFXVolume)
	c.VoiceVolume = clamp01(c.VoiceVolume)
}
