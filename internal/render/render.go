// Package render draws a packing result as an interactive 3D chart.
package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/guttosm/parcel-service/internal/packing"
)

// Corners returns the eight corners of p in centimeters, bottom face first.
func Corners(p packing.Placement) [][3]float64 {
	xs := [2]float64{packing.ToCM(p.X), packing.ToCM(p.X2())}
	ys := [2]float64{packing.ToCM(p.Y), packing.ToCM(p.Y2())}
	zs := [2]float64{packing.ToCM(p.Z), packing.ToCM(p.Z2())}
	out := make([][3]float64, 0, 8)
	for _, z := range zs {
		for _, y := range ys {
			for _, x := range xs {
				out = append(out, [3]float64{x, y, z})
			}
		}
	}
	return out
}

// Chart builds a 3D scatter with one series per placement, plotted at the
// corners of its box in the placement color.
func Chart(res packing.Result, title string) *charts.Scatter3D {
	d := res.Dimensions
	subtitle := fmt.Sprintf("%.1f x %.1f x %.1f cm, %d items", d.LengthCm, d.WidthCm, d.HeightCm, d.ItemCount)
	if res.Container != "" {
		subtitle += ", " + res.Container
	}

	chart := charts.NewScatter3D()
	chart.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "960px", Height: "640px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithXAxis3DOpts(opts.XAxis3D{Name: "length (cm)"}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Name: "width (cm)"}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Name: "height (cm)"}),
	)

	for i, p := range res.Placements {
		corners := Corners(p)
		data := make([]opts.Chart3DData, 0, len(corners))
		for _, c := range corners {
			data = append(data, opts.Chart3DData{Name: p.Name, Value: []interface{}{c[0], c[1], c[2]}})
		}
		chart.AddSeries(fmt.Sprintf("%d. %s", i+1, p.Name), data,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: p.Color}))
	}
	return chart
}

// Result writes res as a standalone HTML page.
func Result(w io.Writer, res packing.Result, title string) error {
	if res.Outcome != packing.OutcomePacked {
		return fmt.Errorf("render %s result: no placements", res.Outcome)
	}
	if err := Chart(res, title).Render(w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
