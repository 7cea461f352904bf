package beepout

import (
	"math"
	"testing"
)

func TestVolumeArgs(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in         float64
		wantSilent bool
		wantExp    float64
	}{
		{0, true, 0},
		{-0.5, true, 0},
		{1, false, 0},
		{0.5, false, -1},
		{0.25, false, -2},
		{2, false, 0}, // clamped to full volume
	}
	for _, tt := range tests {
		silent, exp := volumeArgs(tt.in)
		if silent != tt.wantSilent {
			t.Errorf("volumeArgs(%v) silent = %v, want %v", tt.in, silent, tt.wantSilent)
			continue
		}
		if !silent && math.Abs(exp-tt.wantExp) > 1e-9 {
			t.Errorf("volumeArgs(%v) exp = %v, want %v", tt.in, exp, tt.wantExp)
		}
	}
}

func TestDecodeRejectsUnknownExtension(t *testing.T) {
	t.Parallel()
	if _, _, err := decode(".xm", nil); err == nil {
		t.Error("decode of unknown extension succeeded, want error")
	}
}
