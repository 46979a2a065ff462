package geo

import (
	"math"

	"github.com/paulmach/orb"
)

const (
	earthRadiusKm = 6371.0
	// samples per spline segment for a plain source/target arc
	arcSamples = 50
	// samples per spline segment when following a stored path
	pathSamples = 5
	defaultBend = 10.0
)

// thinning keeps every n-th interior point of a stored path per mode; road
// and rail paths are dense.
var thinning = map[string]int{
	"boat":    1,
	"flying":  1,
	"bus":     7,
	"train":   10,
	"driving": 5,
}

// RouteSpline returns the drawn line of a Route. With a stored path (for
// example from a directions lookup) the path is thinned and smoothed.
// Without one the line is a gentle arc from source to target bent by bend
// degrees, or a straight segment when the pair crosses the antimeridian.
func RouteSpline(path []orb.Point, source, target orb.Point, mode string, bend float64) orb.LineString {
	points := append([]orb.Point{}, path...)
	if len(points) < 2 {
		points = []orb.Point{source, target}
	}
	if d := planar(points[0], source); d > 0.05 && d < 100 {
		points = append([]orb.Point{source}, points...)
	}
	if d := planar(points[len(points)-1], target); d > 0.05 && d < 100 {
		points = append(points, target)
	}

	if len(points) > 2 {
		factor := thinning[mode]
		if factor < 1 {
			factor = 1
		}
		kept := []orb.Point{points[0]}
		for i, p := range points[1 : len(points)-1] {
			if i%factor == 0 {
				kept = append(kept, p)
			}
		}
		kept = append(kept, points[len(points)-1])
		return InterpolateBSpline(kept, pathSamples)
	}

	a, b := points[0], points[1]
	if math.Abs(a.Lon()-b.Lon()) > 180 {
		return orb.LineString{a, b}
	}
	if bend == 0 {
		bend = defaultBend
	}
	return InterpolateBSpline([]orb.Point{a, PointC(a, b, bend), b}, arcSamples)
}

func planar(a, b orb.Point) float64 {
	return math.Hypot(a.Lon()-b.Lon(), a.Lat()-b.Lat())
}

// InterpolateBSpline samples a clamped quadratic B-spline through the control
// points. The curve starts at the first point and ends at the last.
func InterpolateBSpline(ctrl []orb.Point, perSegment int) orb.LineString {
	const degree = 2
	if len(ctrl) <= degree {
		return append(orb.LineString{}, ctrl...)
	}
	if perSegment <= 0 {
		perSegment = 25
	}
	n := len(ctrl)
	knots := []float64{0, 0}
	for i := 0; i <= n-degree; i++ {
		knots = append(knots, float64(i))
	}
	last := knots[len(knots)-1]
	knots = append(knots, last, last)

	lo, hi := knots[degree], knots[len(knots)-1-degree]
	segments := []float64{lo}
	for k := degree + 1; k < len(knots)-degree; k++ {
		if segments[len(segments)-1] != knots[k] {
			segments = append(segments, knots[k])
		}
	}

	line := orb.LineString{}
	for i := 1; i < len(segments); i++ {
		uMin, uMax := segments[i-1], segments[i]
		for k := 0; k <= perSegment; k++ {
			u := float64(k)/float64(perSegment)*(uMax-uMin) + uMin
			line = append(line, deBoor((u-lo)/(hi-lo), degree, ctrl, knots))
		}
	}
	return line
}

// deBoor evaluates the spline at t in [0,1] over the knot domain.
func deBoor(t float64, degree int, ctrl []orb.Point, knots []float64) orb.Point {
	first, last := degree, len(knots)-1-degree
	low, high := knots[first], knots[last]
	t = math.Min(math.Max(t*(high-low)+low, low), high)

	s := first
	for ; s < last; s++ {
		if t >= knots[s] && t <= knots[s+1] {
			break
		}
	}

	v := make([]orb.Point, len(ctrl))
	copy(v, ctrl)
	for l := 1; l <= degree; l++ {
		for i := s; i > s-degree-1+l; i-- {
			alpha := (t - knots[i]) / (knots[i+degree+1-l] - knots[i])
			v[i] = orb.Point{
				(1-alpha)*v[i-1][0] + alpha*v[i][0],
				(1-alpha)*v[i-1][1] + alpha*v[i][1],
			}
		}
	}
	return v[s]
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }
func toDegrees(rad float64) float64 { return rad * 180 / math.Pi }

// Haversine returns the great-circle distance in kilometers.
func Haversine(a, b orb.Point) float64 {
	lat1, lat2 := toRadians(a.Lat()), toRadians(b.Lat())
	dLat := lat2 - lat1
	dLon := toRadians(b.Lon() - a.Lon())
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// PointC is the arc control point: half the A-B distance from A, on the
// initial bearing rotated by bend degrees.
func PointC(a, b orb.Point, bend float64) orb.Point {
	lat1, lon1 := toRadians(a.Lat()), toRadians(a.Lon())
	lat2, lon2 := toRadians(b.Lat()), toRadians(b.Lon())
	bearing := math.Atan2(
		math.Sin(lon2-lon1)*math.Cos(lat2),
		math.Cos(lat1)*math.Sin(lat2)-math.Sin(lat1)*math.Cos(lat2)*math.Cos(lon2-lon1),
	)
	return Destination(a, bearing-toRadians(bend), Haversine(a, b)*0.5)
}

// Destination walks distanceKm from p on the bearing given in radians.
func Destination(p orb.Point, bearing, distanceKm float64) orb.Point {
	d := distanceKm / earthRadiusKm
	lat1, lon1 := toRadians(p.Lat()), toRadians(p.Lon())
	lat2 := math.Asin(math.Sin(lat1)*math.Cos(d) + math.Cos(lat1)*math.Sin(d)*math.Cos(bearing))
	lon2 := lon1 + math.Atan2(
		math.Sin(bearing)*math.Sin(d)*math.Cos(lat1),
		math.Cos(d)-math.Sin(lat1)*math.Sin(lat2),
	)
	return orb.Point{toDegrees(lon2), toDegrees(lat2)}
}
