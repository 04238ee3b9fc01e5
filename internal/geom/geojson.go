package geom

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"geodraw/internal/proj"
)

// LoadGeoJSON reads a lon/lat GeoJSON file (FeatureCollection, Feature or
// bare geometry) and returns projected features.
func LoadGeoJSON(path string) ([]Feature, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseGeoJSON(data)
}

func ParseGeoJSON(data []byte) ([]Feature, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("geojson: %w", err)
	}
	var geoms []orb.Geometry
	switch head.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, fmt.Errorf("geojson: %w", err)
		}
		for _, f := range fc.Features {
			geoms = append(geoms, f.Geometry)
		}
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, fmt.Errorf("geojson: %w", err)
		}
		geoms = append(geoms, f.Geometry)
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, fmt.Errorf("geojson: %w", err)
		}
		geoms = append(geoms, g.Geometry())
	}
	var out []Feature
	for _, g := range geoms {
		out = append(out, fromOrb(g)...)
	}
	if len(out) == 0 {
		return nil, ErrNoGeometry
	}
	return out, nil
}

func fromOrb(g orb.Geometry) []Feature {
	var out []Feature
	switch v := g.(type) {
	case orb.Point:
		out = append(out, NewPoint(proj.FromLonLat(v[0], v[1])))
	case orb.MultiPoint:
		for _, p := range v {
			out = append(out, NewPoint(proj.FromLonLat(p[0], p[1])))
		}
	case orb.LineString:
		if len(v) > 0 {
			out = append(out, NewLineString(projectAll(v)))
		}
	case orb.MultiLineString:
		for _, ls := range v {
			if len(ls) > 0 {
				out = append(out, NewLineString(projectAll(ls)))
			}
		}
	case orb.Polygon:
		if f, ok := orbPolygon(v); ok {
			out = append(out, f)
		}
	case orb.MultiPolygon:
		for _, p := range v {
			if f, ok := orbPolygon(p); ok {
				out = append(out, f)
			}
		}
	case orb.Collection:
		for _, c := range v {
			out = append(out, fromOrb(c)...)
		}
	}
	return out
}

func orbPolygon(p orb.Polygon) (Feature, bool) {
	if len(p) == 0 || len(p[0]) < 3 {
		return Feature{}, false
	}
	f := NewPolygon(projectAll(p[0]))
	for _, hole := range p[1:] {
		if len(hole) >= 3 {
			f.Rings = append(f.Rings, projectAll(hole))
		}
	}
	return f, true
}

func projectAll(pts []orb.Point) []Coord {
	out := make([]Coord, 0, len(pts))
	for _, p := range pts {
		out = append(out, proj.FromLonLat(p[0], p[1]))
	}
	return out
}
