package boombox

import "errors"

var (
	// ErrNoOutput is returned by New when the output is nil.
	ErrNoOutput = errors.New("boombox: output is nil")

	// ErrNoManager is returned by methods that report errors when called
	// on a nil manager. Playback methods log and no-op instead.
	ErrNoManager = errors.New("boombox: manager is nil")

	// ErrDuplicateName is returned by Library.Add when the name is already
	// registered. The first registration stays in effect.
	ErrDuplicateName = errors.New("boombox: duplicate sound name")
)
