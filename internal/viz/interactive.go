package viz

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/rotisserie/eris"

	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/model"
)

// InteractiveHeatmap writes an HTML density heatmap binned into a
// bins x bins grid over the record extent.
func InteractiveHeatmap(records []model.Accident, bins int, path string) error {
	grid := newDensityGrid(records, bins)

	xLabels := make([]string, grid.cols)
	for c := range xLabels {
		xLabels[c] = fmt.Sprintf("%.2f", grid.X(c))
	}
	yLabels := make([]string, grid.rows)
	for r := range yLabels {
		yLabels[r] = fmt.Sprintf("%.2f", grid.Y(r))
	}

	data := make([]opts.HeatMapData, 0, grid.cols*grid.rows)
	for r := 0; r < grid.rows; r++ {
		for c := 0; c < grid.cols; c++ {
			if v := grid.count(c, r); v > 0 {
				data = append(data, opts.HeatMapData{Value: [3]interface{}{c, r, v}})
			}
		}
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Accident Density"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Name: "Longitude"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Name: "Latitude", Data: yLabels}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(grid.max),
		}),
	)
	hm.SetXAxis(xLabels).AddSeries("accidents", data)

	return render(hm, path)
}

// InteractiveClusterMap writes an HTML scatter map with one series per
// hotspot so clusters can be toggled in the legend.
func InteractiveClusterMap(records []model.Accident, path string) error {
	series := map[int][]opts.ScatterData{}
	for i := range records {
		c := records[i].Cluster
		series[c] = append(series[c], opts.ScatterData{
			Value:      []interface{}{records[i].StartLng, records[i].StartLat},
			SymbolSize: 4,
		})
	}

	labels := make([]int, 0, len(series))
	for c := range series {
		labels = append(labels, c)
	}
	sort.Ints(labels)

	sc := charts.NewScatter()
	sc.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Accident Hotspot Clusters"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "Longitude", Scale: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "Latitude", Scale: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	for _, c := range labels {
		name := fmt.Sprintf("hotspot %d", c)
		if c < 0 {
			name = "unassigned"
		}
		sc.AddSeries(name, series[c])
	}

	return render(sc, path)
}

type renderer interface {
	Render(w io.Writer) error
}

func render(chart renderer, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "viz: create %s", path)
	}
	defer f.Close()

	if err := chart.Render(f); err != nil {
		return eris.Wrapf(err, "viz: render %s", path)
	}
	return f.Close()
}
