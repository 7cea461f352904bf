package boombox

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// fadeJob is one in-flight volume fade. There is at most one job per
// category: starting a new fade replaces the old one mid-flight.
type fadeJob struct {
	cat   Category
	tween *gween.Tween
}

type fader struct {
	jobs []fadeJob
}

// start begins a linear fade of cat's volume over d. A non-positive
// duration snaps to the target on the next tick.
func (f *fader) start(cat Category, from, to float64, d time.Duration) {
	f.cancel(cat)
	dur := float32(d.Seconds())
	if dur < 0 {
		dur = 0
	}
	f.jobs = append(f.jobs, fadeJob{
		cat:   cat,
		tween: gween.New(float32(from), float32(to), dur, ease.Linear),
	})
}

func (f *fader) cancel(cat Category) {
	for i := range f.jobs {
		if f.jobs[i].cat == cat {
			f.jobs = append(f.jobs[:i], f.jobs[i+1:]...)
			return
		}
	}
}

// advance moves every job forward by dt in start order, reporting each
// category's new level through apply. A finishing job reports the exact
// target, with no interpolation residue, and is dropped.
func (f *fader) advance(dt time.Duration, apply func(Category, float64)) {
	if len(f.jobs) == 0 {
		return
	}
	kept := f.jobs[:0]
	for _, job := range f.jobs {
		value, finished := job.tween.Update(float32(dt.Seconds()))
		apply(job.cat, float64(value))
		if !finished {
			kept = append(kept, job)
		}
	}
	f.jobs = kept
}
