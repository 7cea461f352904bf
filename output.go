package boombox

import "time"

// Clip is a loaded recording. Implementations are supplied by an engine
// backend and passed back to it through Output.NewSource, so a backend only
// ever sees its own clip type.
type Clip interface {
	// Length reports the playback duration of the recording. A
	// non-positive length means the duration is unknown; the manager then
	// reclaims the channel on the next tick instead of waiting it out.
	Length() time.Duration
}

// Source is one live playback of a clip. Sources are single-use: the
// manager creates one per play and closes it when the channel is reclaimed.
type Source interface {
	// Play starts playback, or resumes it after Pause.
	Play()

	// Pause suspends playback keeping the position.
	Pause()

	// Stop ends playback. The source cannot be restarted.
	Stop()

	// IsPlaying reports whether samples are being produced.
	IsPlaying() bool

	// SetVolume sets the linear playback volume in [0, 1].
	SetVolume(v float64)

	// Close releases the source's resources.
	Close() error
}

// Output creates playback sources on an audio engine.
type Output interface {
	// NewSource prepares a playback of clip. A looping source restarts
	// from the beginning each time it reaches the end. The source starts
	// silent and stopped; the caller sets a volume and calls Play.
	NewSource(clip Clip, loop bool) (Source, error)
}

// ClipLoader loads recordings by path. The two engine backends implement it
// with decode-and-cache semantics; bank.File.Build uses it to assemble a
// Library.
type ClipLoader interface {
	LoadClip(path string) (Clip, error)
}
