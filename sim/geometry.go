package sim

import "fmt"

// Point is a 2-D coordinate in layout units.
type Point struct {
	X float64
	Y float64
}

// String renders the point as "(x, y)".
func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}
