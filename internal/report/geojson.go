package report

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/rkwm713/makeready-cli/internal/model"
)

// GeoJSON encodes the per-pole geographic summary as a FeatureCollection of
// points, coordinates in GeoJSON longitude-latitude order.
func GeoJSON(points []model.GeoPoint) ([]byte, error) {
	fc := &geojson.FeatureCollection{Features: []*geojson.Feature{}}
	for _, p := range points {
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       p.Pole,
			Geometry: geom.NewPointFlat(geom.XY, []float64{p.Longitude, p.Latitude}),
			Properties: map[string]any{
				"pole":      p.Pole,
				"owner":     p.Owner,
				"structure": p.Structure,
				"status":    p.Status,
			},
		})
	}
	data, err := json.Marshal(fc)
	if err != nil {
		return nil, eris.Wrap(err, "report: encode geojson")
	}
	return data, nil
}

// WriteGeoJSON writes the geographic summary to a file.
func WriteGeoJSON(path string, points []model.GeoPoint) error {
	data, err := GeoJSON(points)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "report: write %s", path)
	}
	return nil
}
