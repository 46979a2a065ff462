package engine

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"travelmap/internal/geo"
)

// Geometry renders every Route of the Trip as a GeoJSON feature keyed by the
// Route id. The map layer colors features by type and in_itinerary.
func (v *View) Geometry() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, r := range v.state.Trip.Routes.Values() {
		src, _ := v.state.Trip.Places.Get(r.SourceID)
		dst, _ := v.state.Trip.Places.Get(r.TargetID)
		line := geo.RouteSpline(
			geo.DecodePath(r.Path),
			orb.Point{src.Lng, src.Lat},
			orb.Point{dst.Lng, dst.Lat},
			string(r.Type),
			0,
		)
		f := geojson.NewFeature(orb.MultiLineString{line})
		f.ID = r.ID
		f.Properties["id"] = r.ID
		f.Properties["type"] = string(r.Type)
		f.Properties["in_itinerary"] = v.RouteInItinerary(r.ID)
		f.Properties["cross_country"] = v.state.Trip.IsCrossCountry(r)
		fc.Append(f)
	}
	return fc
}

// PlaceMarkers renders Places as point features for the map layer.
func (v *View) PlaceMarkers() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, p := range v.state.Trip.Places.Values() {
		f := geojson.NewFeature(orb.Point{p.Lng, p.Lat})
		f.ID = p.ID
		f.Properties["name"] = p.Name
		f.Properties["country_id"] = p.CountryID
		f.Properties["in_itinerary"] = v.PlaceInItinerary(p.ID)
		fc.Append(f)
	}
	return fc
}
