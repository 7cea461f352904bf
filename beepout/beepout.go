// Package beepout plays boombox sounds through the beep speaker.
//
// Clips are decoded into beep buffers up front; each playback streams its
// own window over the shared buffer, wrapped in a pause control and a
// volume stage, and registered with the speaker. The speaker mixes
// everything on its own goroutine, so every source mutation happens under
// speaker.Lock.
package beepout

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/flac"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"

	"github.com/automoto/boombox"
)

// ErrUnsupportedFormat is returned for file extensions the decoders don't
// cover. Supported: .ogg, .wav, .mp3, .flac.
var ErrUnsupportedFormat = errors.New("beepout: unsupported audio format")

// Clip is a fully buffered recording.
type Clip struct {
	buf *beep.Buffer
}

// Length reports the clip's playback duration.
func (c *Clip) Length() time.Duration {
	return c.buf.Format().SampleRate.D(c.buf.Len())
}

// Output loads clips from fsys and plays them on the beep speaker. It
// implements both boombox.Output and boombox.ClipLoader.
type Output struct {
	format beep.Format
	fsys   fs.FS
	clips  map[string]*Clip
}

// New initializes the speaker at sampleRate with a 100ms buffer and
// returns an output reading clips from fsys. Clips decoded at a different
// rate are resampled into the speaker's.
func New(sampleRate beep.SampleRate, fsys fs.FS) (*Output, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return nil, fmt.Errorf("beepout: init speaker: %w", err)
	}
	return &Output{
		format: beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2},
		fsys:   fsys,
		clips:  make(map[string]*Clip),
	}, nil
}

// Close shuts the speaker down. No output can be used afterwards.
func (o *Output) Close() {
	speaker.Close()
}

// LoadClip decodes and buffers the file at path, caching the result.
func (o *Output) LoadClip(path string) (boombox.Clip, error) {
	if c, ok := o.clips[path]; ok {
		return c, nil
	}
	f, err := o.fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("beepout: open %s: %w", path, err)
	}
	streamer, format, err := decode(filepath.Ext(path), f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("beepout: decode %s: %w", path, err)
	}

	buf := beep.NewBuffer(o.format)
	var s beep.Streamer = streamer
	if format.SampleRate != o.format.SampleRate {
		s = beep.Resample(4, format.SampleRate, o.format.SampleRate, streamer)
	}
	buf.Append(s)
	_ = streamer.Close()

	c := &Clip{buf: buf}
	o.clips[path] = c
	return c, nil
}

// Preload decodes and caches every path up front. Failures are collected
// per path; the rest still load.
func (o *Output) Preload(paths ...string) error {
	var errs []error
	for _, p := range paths {
		if _, err := o.LoadClip(p); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewSource prepares a playback of clip. The clip must have been loaded by
// this package. The source starts paused and silent; the manager sets a
// volume and calls Play.
func (o *Output) NewSource(clip boombox.Clip, loop bool) (boombox.Source, error) {
	c, ok := clip.(*Clip)
	if !ok {
		return nil, fmt.Errorf("beepout: foreign clip type %T", clip)
	}
	window := c.buf.Streamer(0, c.buf.Len())
	src := &source{}
	var streamer beep.Streamer = window
	if loop {
		streamer = beep.Loop(-1, window)
	} else {
		src.window = window
	}
	src.ctrl = &beep.Ctrl{Streamer: streamer, Paused: true}
	src.vol = &effects.Volume{Streamer: src.ctrl, Base: 2, Volume: 0, Silent: true}
	speaker.Play(src.vol)
	return src, nil
}

func decode(ext string, f fs.File) (beep.StreamSeekCloser, beep.Format, error) {
	switch strings.ToLower(ext) {
	case ".ogg":
		return vorbis.Decode(f)
	case ".wav":
		return wav.Decode(f)
	case ".mp3":
		return mp3.Decode(f)
	case ".flac":
		return flac.Decode(f)
	}
	return nil, beep.Format{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

// source adapts a ctrl+volume chain to boombox.Source.
type source struct {
	ctrl *beep.Ctrl
	vol  *effects.Volume

	// window is the underlying seeker for one-shots, kept to detect the
	// end of playback. nil for loops.
	window beep.StreamSeeker
}

func (s *source) Play() {
	speaker.Lock()
	s.ctrl.Paused = false
	speaker.Unlock()
}

func (s *source) Pause() {
	speaker.Lock()
	s.ctrl.Paused = true
	speaker.Unlock()
}

// Stop detaches the streamer; the speaker drops the chain on its next mix.
func (s *source) Stop() {
	speaker.Lock()
	s.ctrl.Paused = true
	s.ctrl.Streamer = nil
	speaker.Unlock()
}

func (s *source) IsPlaying() bool {
	speaker.Lock()
	defer speaker.Unlock()
	if s.ctrl.Streamer == nil || s.ctrl.Paused {
		return false
	}
	if s.window != nil && s.window.Position() >= s.window.Len() {
		return false
	}
	return true
}

func (s *source) SetVolume(v float64) {
	silent, exp := volumeArgs(v)
	speaker.Lock()
	s.vol.Silent = silent
	s.vol.Volume = exp
	speaker.Unlock()
}

func (s *source) Close() error {
	s.Stop()
	return nil
}

// volumeArgs maps a linear level in [0, 1] onto the volume stage's
// base-2 exponent; 0 cannot be expressed as an exponent and maps to the
// Silent flag instead.
func volumeArgs(v float64) (silent bool, exp float64) {
	if v <= 0 {
		return true, 0
	}
	if v > 1 {
		v = 1
	}
	return false, math.Log2(v)
}
