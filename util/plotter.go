package util

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"buildings-server/models"
	"buildings-server/models/places"
)

// PlotBuildings renders an HTML scatter chart of building positions, one
// series per classification code, with the query extent's corners as a
// separate series.
func PlotBuildings(w io.Writer, extent models.ProjectedExtent, records []places.BuildingRecord) error {
	b := extent.Bound()

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Buildings",
			Width:     "900px",
			Height:    "900px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Buildings",
			Subtitle: fmt.Sprintf("%s extent, %d buildings", extent.Method, len(records)),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Easting", Type: "value", Min: b.Min[0], Max: b.Max[0]}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Northing", Type: "value", Min: b.Min[1], Max: b.Max[1]}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	// Define the points forming the extent.
	corners := []opts.ScatterData{
		{Name: "SW", Value: []float64{b.Min[0], b.Min[1]}},
		{Name: "NW", Value: []float64{b.Min[0], b.Max[1]}},
		{Name: "NE", Value: []float64{b.Max[0], b.Max[1]}},
		{Name: "SE", Value: []float64{b.Max[0], b.Min[1]}},
	}
	scatter.AddSeries("Extent", corners)

	byCode := make(map[string][]opts.ScatterData)
	var order []string
	for _, r := range records {
		code := r.ClassCode
		if code == "" {
			code = "other"
		}
		if _, ok := byCode[code]; !ok {
			order = append(order, code)
		}
		byCode[code] = append(byCode[code], opts.ScatterData{
			Name:  r.UPRN,
			Value: []float64{r.X, r.Y},
		})
	}
	for _, code := range order {
		scatter.AddSeries(code, byCode[code])
	}

	return scatter.Render(w)
}
