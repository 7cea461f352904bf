// Package ebitenout plays boombox sounds through the ebiten audio engine.
//
// Clips are decoded up front into raw PCM and cached, so repeated plays of
// the same effect never touch the decoder again. Sources wrap
// *audio.Player; a looping source streams the decoded bytes through an
// infinite loop.
package ebitenout

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"

	"github.com/automoto/boombox"
)

// ErrUnsupportedFormat is returned for file extensions the decoders don't
// cover. Supported: .ogg, .wav, .mp3.
var ErrUnsupportedFormat = errors.New("ebitenout: unsupported audio format")

// bytesPerFrame is the size of one decoded frame: 16-bit little-endian
// stereo, the format every ebiten decoder emits.
const bytesPerFrame = 4

// Clip is a fully decoded recording.
type Clip struct {
	data       []byte
	sampleRate int
}

// Length reports the clip's playback duration, derived from the decoded
// frame count.
func (c *Clip) Length() time.Duration {
	if c.sampleRate <= 0 {
		return 0
	}
	frames := len(c.data) / bytesPerFrame
	return time.Duration(frames) * time.Second / time.Duration(c.sampleRate)
}

// Output loads clips from fsys and plays them on an ebiten audio context.
// It implements both boombox.Output and boombox.ClipLoader.
type Output struct {
	ctx   *audio.Context
	fsys  fs.FS
	clips map[string]*Clip
}

// New wraps an ebiten audio context. All clips are decoded at the
// context's sample rate. Paths passed to LoadClip resolve against fsys, so
// a go:embed FS works as well as os.DirFS.
func New(ctx *audio.Context, fsys fs.FS) *Output {
	return &Output{
		ctx:   ctx,
		fsys:  fsys,
		clips: make(map[string]*Clip),
	}
}

// LoadClip decodes the file at path, caching the result.
func (o *Output) LoadClip(path string) (boombox.Clip, error) {
	if c, ok := o.clips[path]; ok {
		return c, nil
	}
	data, err := fs.ReadFile(o.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("ebitenout: read %s: %w", path, err)
	}
	rate := o.ctx.SampleRate()
	pcm, err := decode(rate, filepath.Ext(path), data)
	if err != nil {
		return nil, fmt.Errorf("ebitenout: decode %s: %w", path, err)
	}
	c := &Clip{data: pcm, sampleRate: rate}
	o.clips[path] = c
	return c, nil
}

// Preload decodes and caches every path up front, so the first play of an
// effect doesn't pay the decode cost mid-frame. Failures are collected per
// path; the rest still load.
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
// this package.
func (o *Output) NewSource(clip boombox.Clip, loop bool) (boombox.Source, error) {
	c, ok := clip.(*Clip)
	if !ok {
		return nil, fmt.Errorf("ebitenout: foreign clip type %T", clip)
	}
	var stream io.Reader = bytes.NewReader(c.data)
	if loop {
		stream = audio.NewInfiniteLoop(bytes.NewReader(c.data), int64(len(c.data)))
	}
	player, err := o.ctx.NewPlayer(stream)
	if err != nil {
		return nil, fmt.Errorf("ebitenout: new player: %w", err)
	}
	return &source{player: player}, nil
}

// decode turns an encoded file into raw PCM at the given sample rate,
// routed by file extension.
func decode(sampleRate int, ext string, data []byte) ([]byte, error) {
	var stream io.Reader
	switch strings.ToLower(ext) {
	case ".ogg":
		s, err := vorbis.DecodeWithSampleRate(sampleRate, bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		stream = s
	case ".wav":
		s, err := wav.DecodeWithSampleRate(sampleRate, bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		stream = s
	case ".mp3":
		s, err := mp3.DecodeWithSampleRate(sampleRate, bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		stream = s
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return io.ReadAll(stream)
}

// source adapts *audio.Player to boombox.Source.
type source struct {
	player *audio.Player
}

func (s *source) Play() {
	s.player.Play()
}

func (s *source) Pause() {
	s.player.Pause()
}

func (s *source) Stop() {
	s.player.Pause()
	_ = s.player.Rewind()
}

func (s *source) IsPlaying() bool {
	return s.player.IsPlaying()
}

// SetVolume clamps locally because the ebiten player panics on values
// outside [0, 1].
func (s *source) SetVolume(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	s.player.SetVolume(v)
}

func (s *source) Close() error {
	return s.player.Close()
}
