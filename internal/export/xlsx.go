package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/model"
)

var workbookHeader = []string{
	"Cluster", "Count", "Avg Severity", "Max Severity", "Avg Distance (mi)",
	"Center Lat", "Center Lng", "Min Lat", "Max Lat", "Min Lng", "Max Lng",
}

// Workbook writes hotspots as a single-sheet XLSX workbook with a
// header row.
func Workbook(hotspots []model.Hotspot, path string) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Hotspots")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	hdr := sheet.AddRow()
	for _, title := range workbookHeader {
		hdr.AddCell().SetString(title)
	}

	for _, h := range hotspots {
		row := sheet.AddRow()
		row.AddCell().SetInt(h.Cluster)
		row.AddCell().SetInt(h.Count)
		row.AddCell().SetFloat(h.AvgSeverity)
		row.AddCell().SetInt(h.MaxSeverity)
		row.AddCell().SetFloat(h.AvgDistance)
		row.AddCell().SetFloat(h.CenterLat)
		row.AddCell().SetFloat(h.CenterLng)
		row.AddCell().SetFloat(h.MinLat)
		row.AddCell().SetFloat(h.MaxLat)
		row.AddCell().SetFloat(h.MinLng)
		row.AddCell().SetFloat(h.MaxLng)
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "export: save %s", path)
	}
	return nil
}
