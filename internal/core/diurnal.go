package core

import (
	"math"

	"airquality_service/internal/domain/model"
)

const curvePoints = 25

// DiurnalPatternSynthesizer expands a single 24h-ahead point prediction into
// an hourly curve shaped by the typical within-day PM10 pattern: commute
// peaks in the morning and evening, dips in the afternoon and at night.
type DiurnalPatternSynthesizer struct{}

// Synthesize returns 25 values for hour offsets 0..24 from startHour. Each
// point interpolates linearly from currentValue to predictedValue and then
// receives the band modifier of its absolute hour.
func (DiurnalPatternSynthesizer) Synthesize(currentValue, predictedValue float64, startHour int) model.DiurnalCurve {
	values := make([]float64, curvePoints)
	for h := 0; h < curvePoints; h++ {
		hour := (startHour + h) % 24
		alpha := float64(h) / 24.0
		base := currentValue + (predictedValue-currentValue)*alpha
		values[h] = base + bandModifier(hour, base)
	}
	return model.DiurnalCurve{StartHour: startHour, Values: values}
}

// bandModifier applies the diurnal shape. Bands are disjoint; only one
// applies per hour.
func bandModifier(hour int, base float64) float64 {
	h := float64(hour)
	switch {
	case hour >= 6 && hour <= 9:
		// Утренний пик, до +15%.
		return 0.15 * (1 - math.Abs(h-7.5)/1.5) * base
	case hour >= 13 && hour <= 16:
		// Дневной спад, до -10%.
		return -0.10 * (1 - math.Abs(h-14.5)/1.5) * base
	case hour >= 18 && hour <= 21:
		// Вечерний пик, до +12%.
		return 0.12 * (1 - math.Abs(h-19.5)/1.5) * base
	case hour >= 0 && hour <= 5:
		// Ночной спад, до -20%.
		return -0.20 * (1 - math.Abs(h-3)/3) * base
	default:
		return 0
	}
}

// Annotate locates the band extrema of a produced curve for chart labels: the
// local maximum inside each peak band and the local minimum inside the
// afternoon dip, judged over a ±2-offset neighborhood. The search is
// read-only; it never alters the curve.
func (DiurnalPatternSynthesizer) Annotate(curve model.DiurnalCurve) model.CurveAnnotations {
	return model.CurveAnnotations{
		MorningPeak:  findBandExtremum(curve, 6, 9, true),
		AfternoonDip: findBandExtremum(curve, 13, 16, false),
		EveningPeak:  findBandExtremum(curve, 18, 21, true),
	}
}

func findBandExtremum(curve model.DiurnalCurve, fromHour, toHour int, wantMax bool) int {
	for i := 0; i < len(curve.Values); i++ {
		hour := (curve.StartHour + i) % 24
		if hour < fromHour || hour > toHour {
			continue
		}
		if isNeighborhoodExtremum(curve.Values, i, wantMax) {
			// Endpoint hits are not annotated; they are cut-off artifacts,
			// not real extrema.
			if i <= 0 || i >= curvePoints-1 {
				return -1
			}
			return i
		}
	}
	return -1
}

func isNeighborhoodExtremum(values []float64, i int, wantMax bool) bool {
	lo := i - 2
	if lo < 0 {
		lo = 0
	}
	hi := i + 3
	if hi > 24 {
		hi = 24
	}
	for j := lo; j < hi; j++ {
		if wantMax && values[j] > values[i] {
			return false
		}
		if !wantMax && values[j] < values[i] {
			return false
		}
	}
	return true
}
