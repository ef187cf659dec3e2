package airport

// Intensity thresholds for the proximity spread. Distances are Euclidean in
// degree space (lng/lat treated as a flat plane), not great-circle.
const (
	DisruptedIntensity = 1.0
	NearIntensity      = 0.7
	FarIntensity       = 0.4

	NearRadiusDeg = 15.0
	FarRadiusDeg  = 30.0
)

// DelayLevel is the coloring band an intensity falls in.
type DelayLevel string

const (
	DelayNone   DelayLevel = "none"
	DelayLow    DelayLevel = "low"
	DelayMedium DelayLevel = "medium"
	DelayHigh   DelayLevel = "high"
)

// LevelFor maps an intensity in [0,1] to its delay band.
func LevelFor(intensity float64) DelayLevel {
	switch {
	case intensity >= 0.8:
		return DelayHigh
	case intensity >= 0.5:
		return DelayMedium
	case intensity >= 0.2:
		return DelayLow
	default:
		return DelayNone
	}
}

// Intensity maps airport code to a unitless 0-1 delay severity.
// Airports absent from the map have intensity 0.
type Intensity map[string]float64

// Of returns the intensity for code, 0 when unset.
func (in Intensity) Of(code string) float64 {
	return in[NormalizeCode(code)]
}

// Level returns the delay band for code.
func (in Intensity) Level(code string) DelayLevel {
	return LevelFor(in.Of(code))
}

// Clone returns an independent copy; nil stays nil.
func (in Intensity) Clone() Intensity {
	if in == nil {
		return nil
	}
	out := make(Intensity, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// Distance returns the Euclidean distance between a and b in degree space.
func Distance(a, b Airport) float64 {
	return a.point().DistanceFrom(b.point())
}

// Spread computes the delay intensity produced by the disrupted airports.
//
// Disrupted airports get DisruptedIntensity. Every other catalog airport gets
// NearIntensity when strictly closer than NearRadiusDeg to some disrupted
// airport, FarIntensity when strictly closer than FarRadiusDeg, taking the
// maximum over all disrupted sources. Codes missing from the catalog are
// ignored. The result is never nil.
func Spread(c *Catalog, disrupted []string) Intensity {
	out := make(Intensity)
	for _, code := range disrupted {
		src, ok := c.Lookup(code)
		if !ok {
			continue
		}
		out[src.Code] = DisruptedIntensity
		for _, other := range c.airports {
			if other.Code == src.Code {
				continue
			}
			d := Distance(src, other)
			switch {
			case d < NearRadiusDeg:
				raise(out, other.Code, NearIntensity)
			case d < FarRadiusDeg:
				raise(out, other.Code, FarIntensity)
			}
		}
	}
	return out
}

func raise(in Intensity, code string, v float64) {
	if v > in[code] {
		in[code] = v
	}
}
