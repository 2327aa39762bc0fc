// Package routing links exported cameras into the navigation graph the tour
// viewer follows.
package routing

import (
	"fmt"
	"sort"

	"github.com/Picsou993/Projet-Immersion-Bien-Ici/pkg/grid"
	"github.com/Picsou993/Projet-Immersion-Bien-Ici/pkg/hotspot"
	"github.com/Picsou993/Projet-Immersion-Bien-Ici/pkg/visibility"
)

// clearSight reports whether no cell on the line from a to b is Blocked.
func clearSight(g *grid.Grid, a, b grid.Point) bool {
	for _, p := range visibility.Line(a, b) {
		if g.At(p) == grid.Blocked {
			return false
		}
	}
	return true
}

// BuildConnectivity returns, for each camera cell of g, the other camera
// cells in clear line of sight. The relation is symmetric and each neighbour
// list follows grid scan order.
func BuildConnectivity(g *grid.Grid) map[grid.Point][]grid.Point {
	cams := g.Points(grid.Camera)
	conn := make(map[grid.Point][]grid.Point, len(cams))
	for i, a := range cams {
		if _, ok := conn[a]; !ok {
			conn[a] = []grid.Point{}
		}
		for _, b := range cams[i+1:] {
			if clearSight(g, a, b) {
				conn[a] = append(conn[a], b)
				conn[b] = append(conn[b], a)
			}
		}
	}
	for _, n := range conn {
		sort.Slice(n, func(i, j int) bool { return n[i].Less(n[j]) })
	}
	return conn
}

// Link fills LinkedTo on records exported from g. Records must be the CAMERA
// list of g in scan order, as hotspot.Export produces it.
func Link(g *grid.Grid, records []hotspot.Record) error {
	cams := g.Points(grid.Camera)
	if len(cams) != len(records) {
		return fmt.Errorf("routing: %d camera cells but %d records", len(cams), len(records))
	}
	ids := make(map[grid.Point]int, len(cams))
	for i, p := range cams {
		if records[i].Type != hotspot.TypeCamera {
			return fmt.Errorf("routing: record %d is %s, want %s", records[i].ID, records[i].Type, hotspot.TypeCamera)
		}
		ids[p] = records[i].ID
	}

	conn := BuildConnectivity(g)
	for i, p := range cams {
		linked := make([]int, 0, len(conn[p]))
		for _, q := range conn[p] {
			linked = append(linked, ids[q])
		}
		sort.Ints(linked)
		records[i].LinkedTo = linked
	}
	return nil
}

// Components groups record ids by reachability over LinkedTo. Each group is
// sorted and groups are ordered by their smallest id.
func Components(records []hotspot.Record) [][]int {
	adj := make(map[int][]int, len(records))
	for _, r := range records {
		adj[r.ID] = append(adj[r.ID], r.LinkedTo...)
		for _, n := range r.LinkedTo {
			adj[n] = append(adj[n], r.ID)
		}
	}

	seen := make(map[int]bool, len(records))
	var groups [][]int
	for _, r := range records {
		if seen[r.ID] {
			continue
		}
		var group []int
		stack := []int{r.ID}
		seen[r.ID] = true
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			group = append(group, id)
			for _, n := range adj[id] {
				if !seen[n] {
					seen[n] = true
					stack = append(stack, n)
				}
			}
		}
		sort.Ints(group)
		groups = append(groups, group)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i][0] < groups[j][0] })
	return groups
}
