package inspect

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/Picsou993/Projet-Immersion-Bien-Ici/pkg/grid"
)

// cellColors are shared by the PNG and HTML renderings.
var cellColors = map[grid.Cell]color.RGBA{
	grid.Free:    {R: 0xee, G: 0xee, B: 0xee, A: 0xff},
	grid.Blocked: {R: 0x33, G: 0x33, B: 0x33, A: 0xff},
	grid.Camera:  {R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	grid.Visible: {R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
}

var cellOrder = []grid.Cell{grid.Free, grid.Blocked, grid.Visible, grid.Camera}

// newPlot builds a scatter plot of g with one series per cell state.
func newPlot(g *grid.Grid, title string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "z"

	for _, state := range cellOrder {
		pts := g.Points(state)
		if len(pts) == 0 {
			continue
		}
		xys := make(plotter.XYs, len(pts))
		for i, pt := range pts {
			xys[i] = plotter.XY{X: float64(pt.X), Y: float64(pt.Z)}
		}
		s, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, err
		}
		s.GlyphStyle.Shape = draw.BoxGlyph{}
		s.GlyphStyle.Color = cellColors[state]
		s.GlyphStyle.Radius = vg.Points(3)
		p.Add(s)
		p.Legend.Add(state.String(), s)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	return p, nil
}

// plotSize scales the image with the grid, within sane limits.
func plotSize(g *grid.Grid) (w, h vg.Length) {
	w = vg.Length(min(max(g.XSize(), 20), 200)) * vg.Points(6)
	h = vg.Length(min(max(g.ZSize(), 20), 200)) * vg.Points(6)
	return w, h
}

// SavePNG renders g to a PNG file at path.
func SavePNG(g *grid.Grid, title, path string) error {
	p, err := newPlot(g, title)
	if err != nil {
		return err
	}
	w, h := plotSize(g)
	if err := p.Save(w, h, path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// WritePNG renders g as PNG to w.
func WritePNG(w io.Writer, g *grid.Grid, title string) error {
	p, err := newPlot(g, title)
	if err != nil {
		return err
	}
	width, height := plotSize(g)
	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
