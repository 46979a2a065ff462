package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"travelmap/internal/domain/models"
	"travelmap/internal/geo"
)

const mapboxBaseURL = "https://api.mapbox.com/directions/v5/mapbox"

// RouteInfo is what a directions lookup contributes to a Route.
type RouteInfo struct {
	Distance float64 // km
	Duration float64 // minutes
	Path     string  // GeoJSON LineString
}

// Directions looks up the travelled path between two points for a land mode.
type Directions interface {
	Lookup(ctx context.Context, mode models.RouteType, from, to orb.Point) (RouteInfo, error)
}

// MapboxDirections queries the Mapbox Directions API.
type MapboxDirections struct {
	Token   string
	BaseURL string
	Client  *http.Client
}

type mapboxResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Distance float64           `json:"distance"`
		Duration float64           `json:"duration"`
		Geometry *geojson.Geometry `json:"geometry"`
	} `json:"routes"`
}

func (d MapboxDirections) client() *http.Client {
	if d.Client != nil {
		return d.Client
	}
	return &http.Client{Timeout: 10 * time.Second}
}

// Mapbox has no rail profile; bus and train follow roads.
func mapboxProfile(mode models.RouteType) string {
	return "driving"
}

func (d MapboxDirections) Lookup(ctx context.Context, mode models.RouteType, from, to orb.Point) (RouteInfo, error) {
	if strings.TrimSpace(d.Token) == "" {
		return RouteInfo{}, fmt.Errorf("directions: token kosong")
	}
	base := strings.TrimRight(d.BaseURL, "/")
	if base == "" {
		base = mapboxBaseURL
	}
	coords := fmt.Sprintf("%f,%f;%f,%f", from.Lon(), from.Lat(), to.Lon(), to.Lat())
	q := url.Values{}
	q.Set("access_token", d.Token)
	q.Set("geometries", "geojson")
	q.Set("overview", "full")
	endpoint := fmt.Sprintf("%s/%s/%s?%s", base, mapboxProfile(mode), coords, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return RouteInfo{}, err
	}
	resp, err := d.client().Do(req)
	if err != nil {
		return RouteInfo{}, fmt.Errorf("directions: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return RouteInfo{}, fmt.Errorf("directions: read body: %w", err)
	}

	var out mapboxResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return RouteInfo{}, fmt.Errorf("directions: decode (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK || out.Code != "Ok" {
		return RouteInfo{}, fmt.Errorf("directions: status %d code=%s %s", resp.StatusCode, out.Code, out.Message)
	}
	if len(out.Routes) == 0 || out.Routes[0].Geometry == nil {
		return RouteInfo{}, fmt.Errorf("directions: no route found")
	}

	best := out.Routes[0]
	line, ok := best.Geometry.Geometry().(orb.LineString)
	if !ok {
		return RouteInfo{}, fmt.Errorf("directions: unexpected geometry %s", best.Geometry.Type)
	}
	path, err := geo.EncodePath(line)
	if err != nil {
		return RouteInfo{}, err
	}
	return RouteInfo{
		Distance: math.Round(best.Distance / 1000),
		Duration: math.Round(best.Duration / 60),
		Path:     path,
	}, nil
}
