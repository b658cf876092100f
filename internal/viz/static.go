package viz

import (
	"image/color"

	"github.com/rotisserie/eris"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/model"
)

const (
	plotWidth  = 15 * vg.Inch
	plotHeight = 10 * vg.Inch
)

// severityColors maps severity 1-4 from low to critical.
var severityColors = []color.Color{
	color.RGBA{R: 0x1a, G: 0x96, B: 0x41, A: 0xff},
	color.RGBA{R: 0xf5, G: 0xc5, B: 0x18, A: 0xff},
	color.RGBA{R: 0xf0, G: 0x7d, B: 0x1a, A: 0xff},
	color.RGBA{R: 0xd0, G: 0x1c, B: 0x1f, A: 0xff},
}

// DensityHeatmap renders a 2D histogram of record positions to a PNG.
func DensityHeatmap(records []model.Accident, bins int, path string) error {
	grid := newDensityGrid(records, bins)

	p := plot.New()
	p.Title.Text = "Accident Density Heatmap"
	p.X.Label.Text = "Longitude"
	p.Y.Label.Text = "Latitude"

	hm := plotter.NewHeatMap(grid, palette.Heat(16, 1))
	p.Add(hm)

	if err := p.Save(plotWidth, plotHeight, path); err != nil {
		return eris.Wrapf(err, "viz: save heatmap %s", path)
	}
	return nil
}

// ClusterScatter renders records colored by their hotspot label.
func ClusterScatter(records []model.Accident, path string) error {
	xys := make(plotter.XYs, len(records))
	for i := range records {
		xys[i].X = records[i].StartLng
		xys[i].Y = records[i].StartLat
	}

	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return eris.Wrap(err, "viz: build cluster scatter")
	}
	sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		return draw.GlyphStyle{
			Color:  plotutil.Color(records[i].Cluster),
			Radius: vg.Points(1),
			Shape:  draw.CircleGlyph{},
		}
	}

	p := plot.New()
	p.Title.Text = "K-Means Hotspot Clusters"
	p.X.Label.Text = "Longitude"
	p.Y.Label.Text = "Latitude"
	p.Add(sc)

	if err := p.Save(plotWidth, plotHeight, path); err != nil {
		return eris.Wrapf(err, "viz: save cluster scatter %s", path)
	}
	return nil
}

// SeverityScatter renders records colored by severity.
func SeverityScatter(records []model.Accident, path string) error {
	xys := make(plotter.XYs, len(records))
	for i := range records {
		xys[i].X = records[i].StartLng
		xys[i].Y = records[i].StartLat
	}

	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return eris.Wrap(err, "viz: build severity scatter")
	}
	sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		sev := records[i].Severity
		if sev < 1 {
			sev = 1
		}
		if sev > len(severityColors) {
			sev = len(severityColors)
		}
		return draw.GlyphStyle{
			Color:  severityColors[sev-1],
			Radius: vg.Points(1.5),
			Shape:  draw.CircleGlyph{},
		}
	}

	p := plot.New()
	p.Title.Text = "Accident Severity Distribution"
	p.X.Label.Text = "Longitude"
	p.Y.Label.Text = "Latitude"
	p.Add(sc)

	if err := p.Save(plotWidth, plotHeight, path); err != nil {
		return eris.Wrapf(err, "viz: save severity scatter %s", path)
	}
	return nil
}
