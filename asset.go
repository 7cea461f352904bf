package boombox

import "math/rand"

// Variant is one recording of a sound with its per-recording gain. The gain
// scales the effective category volume, so a quiet take can be balanced
// against its siblings without touching the sample data.
type Variant struct {
	Clip Clip
	Gain float64
}

// Asset is a playable entry in a Library: either a single recording or a
// set of interchangeable variants.
type Asset struct {
	// Name is the sanitized symbolic name the asset is looked up by.
	Name string

	// Multiple marks the asset as a variant set. A single-recording asset
	// plays Variants[0] regardless of the pick mode.
	Multiple bool

	Variants []Variant
}

// Resolve picks the variant to play. Single assets always yield their first
// recording. Variant sets yield the first recording when randomPick is
// false, and a uniformly random one when it is true; rng may be nil, in
// which case the shared math/rand source decides. Resolve never mutates the
// asset. ok is false when there is nothing to play.
func (a *Asset) Resolve(rng *rand.Rand, randomPick bool) (v Variant, ok bool) {
	if a == nil || len(a.Variants) == 0 {
		return Variant{}, false
	}
	idx := 0
	if a.Multiple && randomPick && len(a.Variants) > 1 {
		if rng != nil {
			idx = rng.Intn(len(a.Variants))
		} else {
			idx = rand.Intn(len(a.Variants))
		}
	}
	return a.Variants[idx], true
}
