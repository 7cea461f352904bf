// Package audiotest provides a recording fake of the playback backend for
// tests that need a manager without an audio device.
package audiotest

import (
	"fmt"
	"time"

	"github.com/automoto/boombox"
)

// Clip is a fake recording with a fixed length.
type Clip struct {
	Name string
	Len  time.Duration
}

func (c *Clip) Length() time.Duration { return c.Len }

// Source records every call a manager makes against it.
type Source struct {
	Clip *Clip
	Loop bool

	Playing bool
	Paused  bool
	Stopped bool
	Closed  bool

	// Volume is the last value set; Volumes is the full history.
	Volume  float64
	Volumes []float64
}

func (s *Source) Play() {
	s.Playing = true
	s.Paused = false
}

func (s *Source) Pause() {
	s.Playing = false
	s.Paused = true
}

func (s *Source) Stop() {
	s.Playing = false
	s.Stopped = true
}

func (s *Source) IsPlaying() bool { return s.Playing }

func (s *Source) SetVolume(v float64) {
	s.Volume = v
	s.Volumes = append(s.Volumes, v)
}

func (s *Source) Close() error {
	s.Closed = true
	s.Playing = false
	return nil
}

// Output hands out recording sources. Set Err to make NewSource fail.
type Output struct {
	Sources []*Source
	Err     error
}

func (o *Output) NewSource(clip boombox.Clip, loop bool) (boombox.Source, error) {
	if o.Err != nil {
		return nil, o.Err
	}
	c, _ := clip.(*Clip)
	s := &Source{Clip: c, Loop: loop, Volume: -1}
	o.Sources = append(o.Sources, s)
	return s, nil
}

// Last returns the most recently created source, or nil.
func (o *Output) Last() *Source {
	if len(o.Sources) == 0 {
		return nil
	}
	return o.Sources[len(o.Sources)-1]
}

// Loader resolves paths to canned clips and fails on anything else.
type Loader struct {
	Clips map[string]*Clip
}

func (l *Loader) LoadClip(path string) (boombox.Clip, error) {
	if c, ok := l.Clips[path]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("audiotest: no clip %q", path)
}

// NewLibrary builds a library of single-recording assets from name to clip
// length, for tests that don't care about variants.
func NewLibrary(lengths map[string]time.Duration) *boombox.Library {
	lib := boombox.NewLibrary()
	for name, d := range lengths {
		asset := &boombox.Asset{
			Name: boombox.SanitizeName(name),
			Variants: []boombox.Variant{
				{Clip: &Clip{Name: name, Len: d}, Gain: 1},
			},
		}
		_ = lib.Add(asset)
	}
	return lib
}
