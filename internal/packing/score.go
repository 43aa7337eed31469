package packing

import "math"

const scoreEpsilon = 1e-6

// Score ranks bounding boxes. Lower is better on every component, compared
// lexicographically in field order.
type Score struct {
	SizeSum float64
	Aspect  float64
	MaxDim  float64
	Volume  float64
}

// ScoreOf computes the score of a bounding box.
func ScoreOf(d Dimensions) Score {
	return newScore(d.LengthCm, d.WidthCm, d.HeightCm)
}

func scoreOf(e extent) Score {
	return newScore(ToCM(e.length()), ToCM(e.width()), ToCM(e.height()))
}

func newScore(l, w, h float64) Score {
	aspect := math.Inf(1)
	if lo := math.Min(l, w); lo > 0 {
		aspect = math.Max(l, w) / lo
	}
	return Score{
		SizeSum: l + w + h,
		Aspect:  aspect,
		MaxDim:  math.Max(l, math.Max(w, h)),
		Volume:  l * w * h,
	}
}

// Better reports whether s ranks strictly ahead of o. Components closer
// than 1e-6 are treated as equal.
func (s Score) Better(o Score) bool {
	pairs := [...][2]float64{
		{s.SizeSum, o.SizeSum},
		{s.Aspect, o.Aspect},
		{s.MaxDim, o.MaxDim},
		{s.Volume, o.Volume},
	}
	for _, p := range pairs {
		if math.IsInf(p[0], 1) && math.IsInf(p[1], 1) {
			continue
		}
		if d := p[0] - p[1]; math.Abs(d) > scoreEpsilon {
			return d < 0
		}
	}
	return false
}
