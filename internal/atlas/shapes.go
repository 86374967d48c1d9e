package atlas

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
)

// Names of the built-in true distributions.
const (
	ShapeLine      = "line"
	ShapeGaussians = "gaussians"
	ShapeRing      = "ring"
	ShapeDisjoint  = "disjoint"
	ShapeDrawing   = "drawing"
)

// Errors returned by NewShapeSampler.
var (
	ErrUnknownShape = errors.New("unknown distribution")
	ErrEmptyDrawing = errors.New("drawing has no points")
)

// Point is a point in the unit square.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// ShapeNames lists the built-in distributions.
func ShapeNames() []string {
	return []string{ShapeLine, ShapeGaussians, ShapeRing, ShapeDisjoint, ShapeDrawing}
}

// IsShape reports whether name is a built-in distribution.
func IsShape(name string) bool {
	for _, s := range ShapeNames() {
		if s == name {
			return true
		}
	}
	return false
}

// ShapeSampler draws 2-D points from one of the named distributions.
type ShapeSampler struct {
	name    string
	drawing []Point
	rng     *rand.Rand
	draw    func() (float64, float64)
}

// NewShapeSampler returns a sampler for the named distribution. The drawing
// points are only used by ShapeDrawing, which requires at least one.
func NewShapeSampler(name string, drawing []Point, rng *rand.Rand) (*ShapeSampler, error) {
	s := &ShapeSampler{name: name, rng: rng}
	switch name {
	case ShapeLine:
		s.draw = s.line
	case ShapeGaussians:
		s.draw = s.gaussians
	case ShapeRing:
		s.draw = s.ring
	case ShapeDisjoint:
		s.draw = s.disjoint
	case ShapeDrawing:
		if len(drawing) == 0 {
			return nil, ErrEmptyDrawing
		}
		s.drawing = append([]Point(nil), drawing...)
		s.draw = s.drawn
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownShape, name)
	}
	return s, nil
}

// Name returns the distribution name.
func (s *ShapeSampler) Name() string { return s.name }

// Dim implements Sampler.
func (s *ShapeSampler) Dim() int { return 2 }

// Sample implements Sampler.
func (s *ShapeSampler) Sample(dst []float32) {
	x, y := s.draw()
	dst[0], dst[1] = float32(x), float32(y)
}

// normal returns a standard normal draw by Box-Muller.
func (s *ShapeSampler) normal() float64 {
	u := 1 - s.rng.Float64()
	v := 1 - s.rng.Float64()
	return math.Sqrt(-2*math.Log(u)) * math.Cos(2*math.Pi*v)
}

func (s *ShapeSampler) line() (float64, float64) {
	r := s.rng.Float64()
	return 0.8 - 0.75*r + 0.01*s.normal(), 0.6 + 0.3*r + 0.01*s.normal()
}

func (s *ShapeSampler) gaussians() (float64, float64) {
	if s.rng.Float64() < 0.5 {
		return 0.3 + 0.1*s.normal(), 0.7 + 0.1*s.normal()
	}
	return 0.7 + 0.05*s.normal(), 0.4 + 0.2*s.normal()
}

func (s *ShapeSampler) ring() (float64, float64) {
	r := s.rng.Float64()
	return 0.5 + 0.3*math.Cos(2*math.Pi*r) + 0.025*s.normal(),
		0.45 + 0.25*math.Sin(2*math.Pi*r) + 0.025*s.normal()
}

func (s *ShapeSampler) disjoint() (float64, float64) {
	r := s.rng.Float64()
	cx, cy := 0.45, 0.35
	switch {
	case r < 0.333:
		cx, cy = 0.35, 0.75
	case r < 0.666:
		cx, cy = 0.75, 0.6
	}
	return cx + 0.025*s.normal(), cy + 0.025*s.normal()
}

func (s *ShapeSampler) drawn() (float64, float64) {
	p := s.drawing[s.rng.IntN(len(s.drawing))]
	return p.X + 0.02*s.normal(), p.Y + 0.02*s.normal()
}

// SampleN draws n points into a fresh [n*2] slice.
func SampleN(s Sampler, n int) []float32 {
	dim := s.Dim()
	out := make([]float32, n*dim)
	for i := range n {
		s.Sample(out[i*dim : (i+1)*dim])
	}
	return out
}
