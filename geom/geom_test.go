package geom

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPointAdd(t *testing.T) {
	p := Pt(3, -2)
	if got, want := p.Add(Pt(1, 1)), Pt(4, -1); got != want {
		t.Errorf("Add() = %v, want %v", got, want)
	}
	if got, want := p.Move(Vec(-3, 2)), Pt(0, 0); got != want {
		t.Errorf("Move() = %v, want %v", got, want)
	}
}

func TestVectorMagnitude(t *testing.T) {
	tests := []struct {
		v    Vector[float64]
		want float64
	}{
		{Vec(0.0, 0.0), 0},
		{Vec(3.0, 4.0), 5},
		{Vec(-3.0, 4.0), 5},
		{Vec(0.0, -2.0), 2},
	}
	for _, tt := range tests {
		if got := tt.v.Magnitude(); got != tt.want {
			t.Errorf("%v.Magnitude() = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestVectorNormalized(t *testing.T) {
	zero := Vec(0.0, 0.0)
	got := zero.Normalized()
	if got != zero {
		t.Errorf("zero.Normalized() = %v, want %v", got, zero)
	}
	if math.IsNaN(got.X) || math.IsNaN(got.Y) {
		t.Errorf("zero.Normalized() has NaN components: %v", got)
	}

	n := Vec(3.0, 4.0).Normalized()
	want := Vec(0.6, 0.8)
	approx := cmp.Comparer(func(a, b float64) bool { return math.Abs(a-b) < 1e-9 })
	if diff := cmp.Diff(want, n, approx); diff != "" {
		t.Errorf("Normalized() mismatch (-want +got):\n%s", diff)
	}
	if m := n.Magnitude(); math.Abs(m-1) > 1e-9 {
		t.Errorf("Normalized().Magnitude() = %v, want 1", m)
	}

	// Integer vectors normalize to float vectors.
	if got, want := Vec(0, -7).Normalized(), Vec(0.0, -1.0); got != want {
		t.Errorf("Normalized() = %v, want %v", got, want)
	}
}

func TestRectCentered(t *testing.T) {
	tests := []struct {
		name  string
		outer Rect
		size  Size[int]
		want  Rect
	}{
		{"even", R(0, 0, 10, 10), Sz(4, 4), R(3, 3, 4, 4)},
		{"odd difference truncates", R(0, 0, 10, 10), Sz(3, 5), R(3, 2, 3, 5)},
		{"offset origin", R(20, 40, 160, 8), Sz(40, 8), R(80, 40, 40, 8)},
		{"same size", R(5, 5, 8, 8), Sz(8, 8), R(5, 5, 8, 8)},
		{"bigger", R(0, 0, 4, 4), Sz(7, 7), R(-1, -1, 7, 7)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.outer.Centered(tt.size)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Centered() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := R(10, 10, 4, 2).Add(Pt(-10, 0))
	tests := []struct {
		p    Point[int]
		want bool
	}{
		{Pt(0, 10), true},
		{Pt(3, 11), true},
		{Pt(4, 11), false},
		{Pt(3, 12), false},
		{Pt(-1, 10), false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.p); got != tt.want {
			t.Errorf("%v.Contains(%v) = %t, want %t", r, tt.p, got, tt.want)
		}
	}
}
