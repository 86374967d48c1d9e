package gan

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Manifold is the generator's image of the noise lattice.
type Manifold struct {
	// Points holds one generated (x, y) pair per lattice point, flattened.
	Points []float32
	// Cells lists polygons as indices into Points. For 2-D noise each cell
	// is a closed quadrilateral; for 1-D noise there is one open polyline.
	Cells [][]int
	// Areas holds each 2-D cell's shoelace area as a fraction of the total.
	// Nil for 1-D noise.
	Areas []float64
}

// buildManifold groups lattice outputs into cells. points has
// (cells+1)^noiseSize rows.
func buildManifold(points []float32, noiseSize, cells int) *Manifold {
	m := &Manifold{Points: points}
	if noiseSize == 1 {
		line := make([]int, len(points)/2)
		for i := range line {
			line[i] = i
		}
		m.Cells = [][]int{line}
		return m
	}

	side := cells + 1
	m.Cells = make([][]int, 0, cells*cells)
	m.Areas = make([]float64, 0, cells*cells)
	for i := range cells * cells {
		idx := i%cells + (i/cells)*side
		cell := []int{idx, idx + 1, idx + 1 + side, idx + side, idx}
		m.Cells = append(m.Cells, cell)
		m.Areas = append(m.Areas, polygonArea(points, cell))
	}
	if total := floats.Sum(m.Areas); total > 0 {
		floats.Scale(1/total, m.Areas)
	}
	return m
}

// polygonArea is the shoelace area of a closed polygon whose last vertex
// repeats the first.
func polygonArea(points []float32, cell []int) float64 {
	var sum float64
	for k := 0; k+1 < len(cell); k++ {
		a, b := cell[k], cell[k+1]
		x0, y0 := float64(points[2*a]), float64(points[2*a+1])
		x1, y1 := float64(points[2*b]), float64(points[2*b+1])
		sum += x0*y1 - x1*y0
	}
	return 0.5 * math.Abs(sum)
}
