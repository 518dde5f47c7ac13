package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesizeProduces25Points(t *testing.T) {
	var s DiurnalPatternSynthesizer
	curve := s.Synthesize(30, 45, 14)
	assert.Equal(t, 14, curve.StartHour)
	assert.Len(t, curve.Values, 25)
}

func TestSynthesizeNeutralStartHour(t *testing.T) {
	var s DiurnalPatternSynthesizer

	// Hour 10 sits between the morning peak and the afternoon dip.
	curve := s.Synthesize(30, 30, 10)
	assert.Equal(t, 30.0, curve.Values[0])
	// Offset 24 wraps back to the start hour with alpha=1.
	assert.Equal(t, 30.0, curve.Values[24])
}

func TestSynthesizeBandModifierAtStart(t *testing.T) {
	var s DiurnalPatternSynthesizer

	// Start hour 7 is inside the morning peak band: even with zero
	// interpolation distance the first point rises above the current value.
	curve := s.Synthesize(30, 30, 7)
	assert.InDelta(t, 33.0, curve.Values[0], 1e-9)
	assert.Greater(t, curve.Values[0], 30.0)
}

func TestSynthesizeInterpolatesTowardPrediction(t *testing.T) {
	var s DiurnalPatternSynthesizer

	curve := s.Synthesize(20, 44, 10)
	// Offset 12 lands on hour 22, a neutral band: pure interpolation.
	assert.InDelta(t, 20+(44-20)*12.0/24.0, curve.Values[12], 1e-9)
}

func TestBandModifierEdges(t *testing.T) {
	tests := []struct {
		name string
		hour int
		base float64
		want float64
	}{
		{"morning center-left", 7, 30, 3.0},
		{"morning center-right", 8, 30, 3.0},
		{"morning edge", 6, 30, 0.0},
		{"afternoon dip", 14, 30, -2.0},
		{"evening peak", 19, 30, 2.4},
		{"night dip center", 3, 30, -6.0},
		{"night dip edge", 0, 30, 0.0},
		{"neutral midday", 11, 30, 0.0},
		{"neutral late evening", 22, 30, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, bandModifier(tt.hour, tt.base), 1e-9)
		})
	}
}

func TestAnnotateLocatesBandExtrema(t *testing.T) {
	var s DiurnalPatternSynthesizer

	// Flat interpolation from midnight: extrema sit at band centers.
	curve := s.Synthesize(30, 30, 0)
	ann := s.Annotate(curve)

	require.NotEqual(t, -1, ann.MorningPeak)
	assert.Equal(t, 7, ann.MorningPeak)
	assert.Equal(t, 14, ann.AfternoonDip)
	assert.Equal(t, 19, ann.EveningPeak)
}

func TestAnnotateSkipsCurveEndpoints(t *testing.T) {
	var s DiurnalPatternSynthesizer

	// Starting at hour 7 puts the morning maximum on the first point, which
	// is a cut-off artifact rather than a locatable peak.
	curve := s.Synthesize(30, 30, 7)
	ann := s.Annotate(curve)
	assert.Equal(t, -1, ann.MorningPeak)
}

func TestAnnotateIndicesLandInsideBands(t *testing.T) {
	var s DiurnalPatternSynthesizer

	for startHour := 0; startHour < 24; startHour++ {
		curve := s.Synthesize(25, 40, startHour)
		ann := s.Annotate(curve)

		if ann.MorningPeak != -1 {
			hour := (startHour + ann.MorningPeak) % 24
			assert.True(t, hour >= 6 && hour <= 9, "start %d: morning peak at hour %d", startHour, hour)
		}
		if ann.AfternoonDip != -1 {
			hour := (startHour + ann.AfternoonDip) % 24
			assert.True(t, hour >= 13 && hour <= 16, "start %d: afternoon dip at hour %d", startHour, hour)
		}
		if ann.EveningPeak != -1 {
			hour := (startHour + ann.EveningPeak) % 24
			assert.True(t, hour >= 18 && hour <= 21, "start %d: evening peak at hour %d", startHour, hour)
		}
	}
}
