package model

import (
	"math"
	"testing"
)

type fixedFloat float64

func (f fixedFloat) Float64() float64 { return float64(f) }

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestTowards(t *testing.T) {
	tests := []struct {
		name     string
		from, to Point
		distance float64
		want     Point
	}{
		{"along x", Point{0, 0}, Point{10, 0}, 3, Point{3, 0}},
		{"past target", Point{0, 0}, Point{0, 4}, 6, Point{0, 6}},
		{"away", Point{5, 5}, Point{5, 10}, -2, Point{5, 3}},
		{"same point", Point{1, 1}, Point{1, 1}, 5, Point{1, 1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.from.Towards(tc.to, tc.distance)
			if !almostEqual(got.X, tc.want.X) || !almostEqual(got.Y, tc.want.Y) {
				t.Errorf("Towards = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestTowardsRandomAngleKeepsDistance(t *testing.T) {
	from := Point{10, 10}
	for _, r := range []fixedFloat{0, 0.25, 0.5, 0.99} {
		got := from.TowardsRandomAngle(Point{50, 10}, 7, r)
		if d := from.Distance(got); !almostEqual(d, 7) {
			t.Errorf("rand %v: distance = %v, want 7", r, d)
		}
	}
	// 0.5 maps to zero jitter.
	got := from.TowardsRandomAngle(Point{50, 10}, 7, fixedFloat(0.5))
	if !almostEqual(got.X, 17) || !almostEqual(got.Y, 10) {
		t.Errorf("unjittered heading = %+v, want {17 10}", got)
	}
}

func TestCentroid(t *testing.T) {
	if _, ok := Centroid(nil); ok {
		t.Error("Centroid(nil) should report false")
	}
	c, ok := Centroid([]Point{{0, 0}, {4, 0}, {4, 4}, {0, 4}})
	if !ok || c != (Point{2, 2}) {
		t.Errorf("Centroid = %+v, %v; want {2 2}, true", c, ok)
	}
}

func TestClosestUnit(t *testing.T) {
	units := []UnitView{
		{ID: 1, Position: Point{10, 0}},
		{ID: 2, Position: Point{3, 4}},
		{ID: 3, Position: Point{-6, 0}},
	}
	u, ok := ClosestUnit(units, Point{0, 0})
	if !ok || u.ID != 2 {
		t.Errorf("ClosestUnit = %d, %v; want 2, true", u.ID, ok)
	}
	if _, ok := ClosestUnit(nil, Point{}); ok {
		t.Error("ClosestUnit(nil) should report false")
	}
	if got := Within(units, Point{0, 0}, 6); len(got) != 1 || got[0].ID != 2 {
		t.Errorf("Within(6) = %v, want only unit 2", got)
	}
}
