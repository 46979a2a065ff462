package geo

import (
	"encoding/json"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// DecodePath reads a stored route path: a GeoJSON LineString geometry as
// returned by the directions lookup, or a bare [[lng,lat],...] list as found
// in older exports. Anything else yields nil.
func DecodePath(raw string) []orb.Point {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if strings.HasPrefix(raw, "[") {
		return decodeCoordinates(raw)
	}
	g, err := geojson.UnmarshalGeometry([]byte(raw))
	if err != nil || g == nil {
		return nil
	}
	ls, ok := g.Geometry().(orb.LineString)
	if !ok {
		return nil
	}
	return []orb.Point(ls)
}

var tupleBrackets = strings.NewReplacer("(", "[", ")", "]")

func decodeCoordinates(raw string) []orb.Point {
	var coords [][]float64
	if err := json.Unmarshal([]byte(tupleBrackets.Replace(raw)), &coords); err != nil {
		return nil
	}
	out := make([]orb.Point, 0, len(coords))
	for _, c := range coords {
		if len(c) < 2 {
			return nil
		}
		out = append(out, orb.Point{c[0], c[1]})
	}
	return out
}

// EncodePath is the inverse of DecodePath.
func EncodePath(line orb.LineString) (string, error) {
	b, err := geojson.NewGeometry(line).MarshalJSON()
	if err != nil {
		return "", err
	}
	return string(b), nil
}
