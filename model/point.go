package model

import "math"

// Point is a map position in game units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) Distance(o Point) float64 {
	return math.Hypot(o.X-p.X, o.Y-p.Y)
}

// Towards returns the point distance units from p along the line to target.
// A negative distance moves away from target. Identical points return p.
func (p Point) Towards(target Point, distance float64) Point {
	d := p.Distance(target)
	if d == 0 {
		return p
	}
	return Point{
		X: p.X + (target.X-p.X)/d*distance,
		Y: p.Y + (target.Y-p.Y)/d*distance,
	}
}

// Float64er is the slice of math/rand the geometry helpers need.
type Float64er interface {
	Float64() float64
}

// TowardsRandomAngle is Towards with the heading jittered by up to ±π/4.
func (p Point) TowardsRandomAngle(target Point, distance float64, r Float64er) Point {
	angle := math.Atan2(target.Y-p.Y, target.X-p.X)
	angle += (r.Float64()*2 - 1) * math.Pi / 4
	return Point{
		X: p.X + math.Cos(angle)*distance,
		Y: p.Y + math.Sin(angle)*distance,
	}
}

// Centroid returns the mean position. The second return is false for an empty set.
func Centroid(points []Point) (Point, bool) {
	if len(points) == 0 {
		return Point{}, false
	}
	var c Point
	for _, p := range points {
		c.X += p.X
		c.Y += p.Y
	}
	n := float64(len(points))
	return Point{X: c.X / n, Y: c.Y / n}, true
}

// Closest returns the index of the point nearest to origin, or -1.
func Closest(points []Point, origin Point) int {
	best, bestDist := -1, math.Inf(1)
	for i, p := range points {
		if d := origin.Distance(p); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// Positions collects unit positions, preserving order.
func Positions(units []UnitView) []Point {
	out := make([]Point, len(units))
	for i, u := range units {
		out[i] = u.Position
	}
	return out
}

// ClosestUnit returns the unit nearest to origin. ok is false for an empty slice.
func ClosestUnit(units []UnitView, origin Point) (UnitView, bool) {
	i := Closest(Positions(units), origin)
	if i < 0 {
		return UnitView{}, false
	}
	return units[i], true
}

// Within returns the units strictly closer than radius to origin.
func Within(units []UnitView, origin Point, radius float64) []UnitView {
	var out []UnitView
	for _, u := range units {
		if u.Position.Distance(origin) < radius {
			out = append(out, u)
		}
	}
	return out
}
