package bank

import (
	"errors"
	"fmt"

	"github.com/automoto/boombox"
)

// Build loads every referenced clip through loader and assembles the
// library. Building is best-effort: a variant whose clip fails to load is
// skipped, a sound left with no playable variants is dropped, and a
// duplicate name keeps its first definition. Everything skipped or dropped
// is reported in the joined error alongside the partial library, so hosts
// can log it and tests can fail on it.
func (f *File) Build(loader boombox.ClipLoader) (*boombox.Library, error) {
	lib := boombox.NewLibrary()
	var errs []error
	for _, s := range f.Sounds {
		asset, err := s.build(loader)
		if err != nil {
			errs = append(errs, err)
		}
		if asset == nil {
			continue
		}
		if err := lib.Add(asset); err != nil {
			errs = append(errs, err)
		}
	}
	return lib, errors.Join(errs...)
}

// build assembles one asset. It returns a nil asset when nothing in the
// entry is playable; the error carries whatever went wrong either way.
func (s Sound) build(loader boombox.ClipLoader) (*boombox.Asset, error) {
	name := boombox.SanitizeName(s.Name)
	specs := s.Variants
	if !s.Multiple {
		specs = []Variant{{File: s.File, Gain: s.Gain}}
	}

	asset := &boombox.Asset{Name: name, Multiple: s.Multiple}
	var errs []error
	for _, v := range specs {
		if v.File == "" {
			errs = append(errs, fmt.Errorf("bank: sound %q: variant with no file", name))
			continue
		}
		clip, err := loader.LoadClip(v.File)
		if err != nil {
			errs = append(errs, fmt.Errorf("bank: sound %q: %w", name, err))
			continue
		}
		asset.Variants = append(asset.Variants, boombox.Variant{
			Clip: clip,
			Gain: buildGain(v.Gain),
		})
	}
	if len(asset.Variants) == 0 {
		errs = append(errs, fmt.Errorf("bank: sound %q: no playable variants", name))
		return nil, errors.Join(errs...)
	}
	return asset, errors.Join(errs...)
}

// buildGain maps the authored gain to the played one: omitted means full
// volume, an explicit value is clamped to [0, 1]. An authored 0 really is
// silence.
func buildGain(g *float64) float64 {
	if g == nil {
		return 1
	}
	if *g < 0 {
		return 0
	}
	if *g > 1 {
		return 1
	}
	return *g
}
