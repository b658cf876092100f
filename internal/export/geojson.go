// Package export serializes hotspot statistics in GIS and spreadsheet
// formats for use in downstream mapping tools.
package export

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/rotisserie/eris"
	geom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/model"
)

// GeoJSON writes hotspots as a FeatureCollection of point features.
// Each feature carries the hotspot center as its geometry and the
// aggregate statistics, including the bounding box, as properties.
func GeoJSON(hotspots []model.Hotspot, path string) error {
	fc := &geojson.FeatureCollection{}
	for _, h := range hotspots {
		pt := geom.NewPointFlat(geom.XY, []float64{h.CenterLng, h.CenterLat}).SetSRID(4326)
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       strconv.Itoa(h.Cluster),
			Geometry: pt,
			Properties: map[string]interface{}{
				"cluster":      h.Cluster,
				"count":        h.Count,
				"avg_severity": h.AvgSeverity,
				"max_severity": h.MaxSeverity,
				"avg_distance": h.AvgDistance,
				"bbox":         []float64{h.MinLng, h.MinLat, h.MaxLng, h.MaxLat},
			},
		})
	}

	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return eris.Wrap(err, "export: marshal geojson")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "export: write %s", path)
	}
	return nil
}
