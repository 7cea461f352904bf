package boombox

import (
	"testing"
	"time"
)

// recordFades collects every (category, level) pair an advance reports.
func recordFades(f *fader, dt time.Duration) (cats []Category, levels []float64) {
	f.advance(dt, func(cat Category, v float64) {
		cats = append(cats, cat)
		levels = append(levels, v)
	})
	return cats, levels
}

func TestFaderAppliesInStartOrder(t *testing.T) {
	t.Parallel()
	var f fader
	f.start(Voice, 1, 0, time.Second)
	f.start(Music, 1, 0, time.Second)

	cats, _ := recordFades(&f, 100*time.Millisecond)
	if len(cats) != 2 || cats[0] != Voice || cats[1] != Music {
		t.Errorf("apply order = %v, want [voice music]", cats)
	}
}

func TestFaderSupersedeReplacesJob(t *testing.T) {
	t.Parallel()
	var f fader
	f.start(Music, 1, 0, 2*time.Second)
	f.start(Music, 0.5, 1, time.Second)

	if len(f.jobs) != 1 {
		t.Fatalf("jobs = %d, want 1 after supersede", len(f.jobs))
	}
	_, levels := recordFades(&f, time.Second)
	if len(levels) != 1 || levels[0] != 1 {
		t.Errorf("levels = %v, want exactly [1]", levels)
	}
	if len(f.jobs) != 0 {
		t.Errorf("finished job not dropped, %d left", len(f.jobs))
	}
}

func TestFaderZeroDurationSnapsOnFirstTick(t *testing.T) {
	t.Parallel()
	var f fader
	f.start(Voice, 1, 0.25, 0)

	_, levels := recordFades(&f, 16*time.Millisecond)
	if len(levels) != 1 || levels[0] != 0.25 {
		t.Errorf("levels = %v, want exactly [0.25]", levels)
	}
}

func TestFaderNegativeDurationSnapsOnFirstTick(t *testing.T) {
	t.Parallel()
	var f fader
	f.start(Music, 0, 1, -time.Second)

	_, levels := recordFades(&f, time.Millisecond)
	if len(levels) != 1 || levels[0] != 1 {
		t.Errorf("levels = %v, want exactly [1]", levels)
	}
}

func TestFaderPinsExactTarget(t *testing.T) {
	t.Parallel()
	var f fader
	f.start(Music, 1, 0, time.Second)

	var last float64 = -1
	for i := 0; i < 4; i++ {
		_, levels := recordFades(&f, 250*time.Millisecond)
		if len(levels) > 0 {
			last = levels[len(levels)-1]
		}
	}
	if last != 0 {
		t.Errorf("final level = %v, want exactly 0", last)
	}
	if len(f.jobs) != 0 {
		t.Errorf("finished job not dropped, %d left", len(f.jobs))
	}
}
