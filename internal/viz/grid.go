package viz

import (
	"math"

	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/model"
)

// densityGrid is a 2D histogram of record positions, columns spanning
// longitude and rows spanning latitude. It implements plotter.GridXYZ.
// Empty cells hold NaN so the heatmap leaves them blank.
type densityGrid struct {
	counts     []float64
	cols, rows int
	xMin, xW   float64
	yMin, yW   float64
	max        float64
}

func newDensityGrid(records []model.Accident, bins int) *densityGrid {
	if bins < 1 {
		bins = 1
	}
	g := &densityGrid{
		counts: make([]float64, bins*bins),
		cols:   bins,
		rows:   bins,
	}
	for i := range g.counts {
		g.counts[i] = math.NaN()
	}
	if len(records) == 0 {
		g.xW, g.yW = 1, 1
		return g
	}

	xMin, xMax := records[0].StartLng, records[0].StartLng
	yMin, yMax := records[0].StartLat, records[0].StartLat
	for i := range records {
		xMin = math.Min(xMin, records[i].StartLng)
		xMax = math.Max(xMax, records[i].StartLng)
		yMin = math.Min(yMin, records[i].StartLat)
		yMax = math.Max(yMax, records[i].StartLat)
	}
	g.xMin, g.yMin = xMin, yMin
	g.xW = (xMax - xMin) / float64(bins)
	g.yW = (yMax - yMin) / float64(bins)
	if g.xW == 0 {
		g.xW = 1
	}
	if g.yW == 0 {
		g.yW = 1
	}

	for i := range records {
		c := g.bin(records[i].StartLng, g.xMin, g.xW, g.cols)
		r := g.bin(records[i].StartLat, g.yMin, g.yW, g.rows)
		k := r*g.cols + c
		if math.IsNaN(g.counts[k]) {
			g.counts[k] = 0
		}
		g.counts[k]++
		if g.counts[k] > g.max {
			g.max = g.counts[k]
		}
	}
	return g
}

func (g *densityGrid) bin(v, min, width float64, n int) int {
	i := int((v - min) / width)
	if i < 0 {
		i = 0
	}
	if i >= n {
		i = n - 1
	}
	return i
}

func (g *densityGrid) Dims() (c, r int) { return g.cols, g.rows }

func (g *densityGrid) Z(c, r int) float64 { return g.counts[r*g.cols+c] }

func (g *densityGrid) X(c int) float64 { return g.xMin + (float64(c)+0.5)*g.xW }

func (g *densityGrid) Y(r int) float64 { return g.yMin + (float64(r)+0.5)*g.yW }

// count returns the cell value with NaN normalized to zero.
func (g *densityGrid) count(c, r int) float64 {
	v := g.counts[r*g.cols+c]
	if math.IsNaN(v) {
		return 0
	}
	return v
}
