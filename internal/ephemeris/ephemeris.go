package ephemeris

import (
	"math"

	"github.com/oshokin/almanac/internal/domain/solar"
)

const (
	// degreesPerHour converts between longitude or hour angle and hours.
	degreesPerHour = 15.0
	// meanAnomalyRate is the mean daily motion of the sun in degrees.
	meanAnomalyRate = 0.9856
	// meanAnomalyBase matches the day-of-year convention of DayNumber.
	meanAnomalyBase = -3.289
	// perihelionLongitude is the ecliptic longitude of perihelion in degrees.
	perihelionLongitude = 282.634
	// cosObliquity and sinObliquity describe the tilt of the ecliptic.
	cosObliquity = 0.91764
	sinObliquity = 0.39782
	// riseApproxHour and setApproxHour seed the approximate event time.
	riseApproxHour = 6.0
	setApproxHour  = 18.0
)

// Position holds the intermediate solar values for one event.
type Position struct {
	// LngHour is the observer longitude expressed in hours.
	LngHour float64
	// T is the approximate event time in days since the start of the year.
	T float64
	// MeanAnomaly is in degrees.
	MeanAnomaly float64
	// TrueLongitude is the ecliptic longitude in [0, 360) degrees.
	TrueLongitude float64
	// RightAscension is in [0, 360) degrees, in the same quadrant as TrueLongitude.
	RightAscension float64
	// RAHours is RightAscension in hours, in [0, 24).
	RAHours float64
	// SinDec and CosDec describe the declination.
	SinDec float64
	CosDec float64
	// CosH is the cosine of the local hour angle. Values outside [-1, 1]
	// mean the sun never reaches the zenith that day.
	CosH float64
}

// Compute runs the ephemeris steps for the given day number, location, zenith
// angle in degrees and event kind.
func Compute(dayNumber float64, coord solar.GeoCoordinate, zenithDeg float64, event solar.EventKind) Position {
	var p Position

	p.LngHour = coord.Longitude / degreesPerHour

	approxHour := setApproxHour
	if event == solar.EventRise {
		approxHour = riseApproxHour
	}

	p.T = dayNumber + (approxHour-p.LngHour)/24

	p.MeanAnomaly = meanAnomalyRate*p.T + meanAnomalyBase
	p.TrueLongitude = trueLongitude(p.MeanAnomaly)
	p.RightAscension = rightAscension(p.TrueLongitude)
	p.RAHours = p.RightAscension / degreesPerHour

	p.SinDec = sinObliquity * math.Sin(radians(p.TrueLongitude))
	p.CosDec = math.Cos(math.Asin(p.SinDec))

	lat := radians(coord.Latitude)
	p.CosH = (math.Cos(radians(zenithDeg)) - p.SinDec*math.Sin(lat)) / (p.CosDec * math.Cos(lat))

	return p
}

// trueLongitude returns the sun's ecliptic longitude in [0, 360) degrees.
func trueLongitude(meanAnomaly float64) float64 {
	m := radians(meanAnomaly)

	return Normalize(meanAnomaly+1.916*math.Sin(m)+0.02*math.Sin(2*m)+perihelionLongitude, 360)
}

// rightAscension returns the right ascension in degrees, moved into the same
// 90° quadrant as the true longitude l.
func rightAscension(l float64) float64 {
	ra := Normalize(degrees(math.Atan(cosObliquity*math.Tan(radians(l)))), 360)

	lQuadrant := math.Floor(l/90) * 90
	raQuadrant := math.Floor(ra/90) * 90

	return ra + lQuadrant - raQuadrant
}

// Normalize maps value into [0, period).
func Normalize(value, period float64) float64 {
	value = math.Mod(value, period)
	if value < 0 {
		value += period
	}

	// value+period can round up to period for tiny negative inputs.
	if value >= period {
		value -= period
	}

	return value
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
