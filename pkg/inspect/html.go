package inspect

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Picsou993/Projet-Immersion-Bien-Ici/pkg/grid"
)

// RenderHTML writes an interactive scatter chart of g. Each point carries its
// cell state as the third value, which drives the color map.
func RenderHTML(w io.Writer, g *grid.Grid, title string) error {
	data := make([]opts.ScatterData, 0, g.Len())
	for i := 0; i < g.Len(); i++ {
		p := g.PointAt(i)
		data = append(data, opts.ScatterData{Value: []interface{}{p.X, p.Z, int(g.At(p))}})
	}

	palette := make([]string, len(cellColors))
	for c, rgba := range cellColors {
		palette[c] = fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("%dx%d cells, %d cameras", g.XSize(), g.ZSize(), g.Count(grid.Camera))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: -1, Max: g.XSize(), Name: "x", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: -1, Max: g.ZSize(), Name: "z", NameLocation: "middle", NameGap: 30}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:      opts.Bool(false),
			Min:       0,
			Max:       float32(len(palette) - 1),
			Dimension: "2",
			InRange:   &opts.VisualMapInRange{Color: palette},
		}),
	)

	scatter.AddSeries("cells", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 8}))

	return scatter.Render(w)
}
