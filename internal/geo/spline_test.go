package geo

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	paris  = orb.Point{2.3522, 48.8566}
	berlin = orb.Point{13.4050, 52.5200}
)

func TestHaversineParisBerlin(t *testing.T) {
	d := Haversine(paris, berlin)
	assert.InDelta(t, 878, d, 5)
	assert.InDelta(t, d, Haversine(berlin, paris), 1e-9)
	assert.Zero(t, Haversine(paris, paris))
}

func TestRouteSplineArcEndsAtEndpoints(t *testing.T) {
	line := RouteSpline(nil, paris, berlin, "train", 0)
	require.Len(t, line, arcSamples+1)
	assert.InDelta(t, paris.Lon(), line[0].Lon(), 1e-9)
	assert.InDelta(t, paris.Lat(), line[0].Lat(), 1e-9)
	assert.InDelta(t, berlin.Lon(), line[len(line)-1].Lon(), 1e-9)
	assert.InDelta(t, berlin.Lat(), line[len(line)-1].Lat(), 1e-9)

	// the arc bows away from the straight segment
	mid := line[len(line)/2]
	straight := orb.Point{(paris.Lon() + berlin.Lon()) / 2, (paris.Lat() + berlin.Lat()) / 2}
	assert.Greater(t, planar(mid, straight), 0.1)
}

func TestRouteSplineAntimeridianIsStraight(t *testing.T) {
	tokyo := orb.Point{139.69, 35.68}
	honolulu := orb.Point{-157.85, 21.30}
	line := RouteSpline(nil, tokyo, honolulu, "flying", 0)
	assert.Equal(t, orb.LineString{tokyo, honolulu}, line)
}

func TestRouteSplineFollowsStoredPath(t *testing.T) {
	path := []orb.Point{paris, {5, 49.5}, {8, 50.5}, {11, 51.8}, berlin}
	line := RouteSpline(path, paris, berlin, "boat", 0)
	require.NotEmpty(t, line)
	assert.Equal(t, paris, line[0])
	assert.InDelta(t, berlin.Lon(), line[len(line)-1].Lon(), 1e-9)
	// boat keeps every interior point: five controls, three segments
	assert.Len(t, line, 3*(pathSamples+1))
}

func TestPointCBendsLeftOfCourse(t *testing.T) {
	c := PointC(paris, berlin, 10)
	d := Haversine(paris, c)
	assert.InDelta(t, Haversine(paris, berlin)/2, d, 1)
	assert.False(t, math.IsNaN(c.Lat()))
}

func TestDecodePathRoundTrip(t *testing.T) {
	raw, err := EncodePath(orb.LineString{paris, berlin})
	require.NoError(t, err)
	assert.Equal(t, []orb.Point{paris, berlin}, DecodePath(raw))
	assert.Nil(t, DecodePath("not json"))
	assert.Nil(t, DecodePath(`{"type":"Point","coordinates":[1,2]}`))
}

func TestDecodePathBareCoordinates(t *testing.T) {
	assert.Equal(t, []orb.Point{{2.35, 48.85}, {4.83, 45.76}}, DecodePath("[[2.35, 48.85], [4.83, 45.76]]"))
	assert.Equal(t, []orb.Point{{2.35, 48.85}, {4.83, 45.76}}, DecodePath("[(2.35, 48.85), (4.83, 45.76)]"))
	assert.Nil(t, DecodePath("[[2.35]]"))
}
