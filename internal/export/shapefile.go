package export

import (
	"os"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"

	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/model"
)

// shapefileFields define the attribute table of the point layer. DBF
// column names are capped at 10 characters.
func shapefileFields() []shp.Field {
	return []shp.Field{
		shp.NumberField("CLUSTER", 10),
		shp.NumberField("COUNT", 10),
		shp.FloatField("AVG_SEV", 12, 4),
		shp.NumberField("MAX_SEV", 10),
		shp.FloatField("AVG_DIST", 12, 4),
		shp.FloatField("MIN_LAT", 12, 6),
		shp.FloatField("MAX_LAT", 12, 6),
		shp.FloatField("MIN_LNG", 12, 6),
		shp.FloatField("MAX_LNG", 12, 6),
	}
}

// Shapefile writes hotspots as an ESRI point layer with one record per
// cluster center.
func Shapefile(hotspots []model.Hotspot, path string) error {
	w, err := shp.Create(path, shp.POINT)
	if err != nil {
		return eris.Wrapf(err, "export: create shapefile %s", path)
	}

	w.SetFields(shapefileFields())

	for i, h := range hotspots {
		w.Write(&shp.Point{X: h.CenterLng, Y: h.CenterLat})

		attrs := []interface{}{
			h.Cluster, h.Count, h.AvgSeverity, h.MaxSeverity, h.AvgDistance,
			h.MinLat, h.MaxLat, h.MinLng, h.MaxLng,
		}
		for f, v := range attrs {
			if err := w.WriteAttribute(i, f, v); err != nil {
				w.Close()
				return eris.Wrapf(err, "export: write attribute %d of hotspot %d", f, h.Cluster)
			}
		}
	}

	w.Close()

	// go-shp derives the attribute table name as <base>dbf, without the
	// dot, so readers never find it. Move it to <base>.dbf.
	base := strings.TrimSuffix(path, ".shp")
	if err := os.Rename(base+"dbf", base+".dbf"); err != nil {
		return eris.Wrapf(err, "export: rename attribute table for %s", path)
	}
	return nil
}
