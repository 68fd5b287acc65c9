/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package domain

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func TestNormalizeToView(t *testing.T) {
	got := NormalizeToView([]orb.Point{{0, 0}, {2, 1}}, 200, 100, DefaultPadding)
	want := []orb.Point{{10, 90}, {170, 10}}
	if len(got) != len(want) {
		t.Fatalf("NormalizeToView len = %d; want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i][0]-want[i][0]) > 1e-9 || math.Abs(got[i][1]-want[i][1]) > 1e-9 {
			t.Errorf("point %d = %v; want %v", i, got[i], want[i])
		}
	}
}

func TestNormalizeToViewEmpty(t *testing.T) {
	if got := NormalizeToView(nil, 400, 400, DefaultPadding); got != nil {
		t.Errorf("NormalizeToView(nil) = %v; want nil", got)
	}
}

func TestNormalizeToViewDegenerate(t *testing.T) {
	tests := []struct {
		name   string
		points []orb.Point
	}{
		{"Single Point", []orb.Point{{116.4, 39.9}}},
		{"Repeated Point", []orb.Point{{5, 5}, {5, 5}, {5, 5}}},
		{"Vertical Line", []orb.Point{{5, 1}, {5, 2}, {5, 3}}},
		{"Horizontal Line", []orb.Point{{1, 5}, {2, 5}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeToView(tt.points, 400, 300, DefaultPadding)
			if len(got) != len(tt.points) {
				t.Fatalf("len = %d; want %d", len(got), len(tt.points))
			}
			for _, p := range got {
				if math.IsNaN(p[0]) || math.IsNaN(p[1]) || math.IsInf(p[0], 0) || math.IsInf(p[1], 0) {
					t.Fatalf("non-finite output %v", p)
				}
			}
		})
	}
}

func TestNormalizeToViewFitsAndKeepsAspect(t *testing.T) {
	points := []orb.Point{{116.30, 39.80}, {116.50, 39.85}, {116.45, 40.00}, {116.30, 39.80}}
	const w, h, pad = 640.0, 480.0, 10.0
	got := NormalizeToView(points, w, h, pad)
	const eps = 1e-9
	for _, p := range got {
		if p[0] < pad-eps || p[0] > w-pad+eps || p[1] < pad-eps || p[1] > h-pad+eps {
			t.Errorf("point %v outside padded canvas", p)
		}
	}
	scaleX := (got[1][0] - got[0][0]) / (points[1][0] - points[0][0])
	scaleY := -(got[2][1] - got[0][1]) / (points[2][1] - points[0][1])
	if math.Abs(scaleX-scaleY) > 1e-6*scaleX {
		t.Errorf("scale differs between axes: x=%v y=%v", scaleX, scaleY)
	}
}

func TestNormalizeRingsToView(t *testing.T) {
	rings := []orb.Ring{
		{{0, 0}, {2, 0}, {2, 1}, {0, 0}},
		{{0.5, 0.5}, {1, 0.5}, {0.5, 0.5}},
	}
	got := NormalizeRingsToView(rings, 200, 100, DefaultPadding)
	if len(got) != 2 || len(got[0]) != 4 || len(got[1]) != 3 {
		t.Fatalf("ring structure not preserved: %v", got)
	}
	flat := NormalizeToView(FlattenRings(rings), 200, 100, DefaultPadding)
	if got[1][0] != flat[4] {
		t.Errorf("second ring first point = %v; want %v", got[1][0], flat[4])
	}
	if NormalizeRingsToView(nil, 200, 100, DefaultPadding) != nil {
		t.Error("expected nil for empty rings")
	}
}

func TestOrientRings(t *testing.T) {
	ccw := orb.Ring{{0, 0}, {4, 0}, {4, 4}, {0, 4}, {0, 0}}
	cw := orb.Ring{{1, 1}, {1, 2}, {2, 2}, {2, 1}, {1, 1}}
	out := OrientRings([]orb.Ring{ccw, cw})
	if out[0].Orientation() != orb.CW {
		t.Error("outer ring should be clockwise")
	}
	if out[1].Orientation() != orb.CCW {
		t.Error("hole should be counter-clockwise")
	}
	if ccw.Orientation() != orb.CCW {
		t.Error("input ring was mutated")
	}
}
