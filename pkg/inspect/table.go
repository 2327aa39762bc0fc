// Package inspect renders occupancy grids for debugging: as a text table, a PNG
// plot or an HTML chart, and lets a caller step through per-start candidates.
package inspect

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/Picsou993/Projet-Immersion-Bien-Ici/pkg/grid"
)

// WriteTable writes g as a table with x down the rows and z across the
// columns. Cells use the grid symbols: '#' blocked, 'C' camera, '+' visible,
// '.' free.
func WriteTable(w io.Writer, g *grid.Grid) error {
	bw := bufio.NewWriter(w)
	xw := len(strconv.Itoa(max(g.XSize()-1, 0)))
	zw := len(strconv.Itoa(max(g.ZSize()-1, 0)))

	fmt.Fprintf(bw, "%*s", xw, "")
	for z := 0; z < g.ZSize(); z++ {
		fmt.Fprintf(bw, " %*d", zw, z)
	}
	bw.WriteByte('\n')

	for x := 0; x < g.XSize(); x++ {
		fmt.Fprintf(bw, "%*d", xw, x)
		for z := 0; z < g.ZSize(); z++ {
			fmt.Fprintf(bw, " %*c", zw, g.At(grid.Pt(x, z)).Symbol())
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
