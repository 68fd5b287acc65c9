/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package domain

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func ringsAlmostEqual(a, b []orb.Ring, tol float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if math.Abs(a[i][j][0]-b[i][j][0]) > tol || math.Abs(a[i][j][1]-b[i][j][1]) > tol {
				return false
			}
		}
	}
	return true
}

func TestParseShapeRings(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []orb.Ring
	}{
		{"Empty", "", []orb.Ring{}},
		{"Whitespace", "   ", []orb.Ring{}},
		{"Only Separators", "@;@ ; ", []orb.Ring{}},
		{"Open Ring Gets Closed", "1,2;3,4;5,6", []orb.Ring{
			{{1, 2}, {3, 4}, {5, 6}, {1, 2}},
		}},
		{"Closed Ring Kept", "1,2;3,4;5,6;1,2", []orb.Ring{
			{{1, 2}, {3, 4}, {5, 6}, {1, 2}},
		}},
		{"Malformed Vertices Dropped", "1,2;bad;3,4,5;;x,1;5,6", []orb.Ring{
			{{1, 2}, {5, 6}, {1, 2}},
		}},
		{"Spaces Around Tokens", " 1 , 2 ; 3,4 ", []orb.Ring{
			{{1, 2}, {3, 4}, {1, 2}},
		}},
		{"Multi Ring", "0,0;4,0;4,4;0,4@1,1;2,1;2,2", []orb.Ring{
			{{0, 0}, {4, 0}, {4, 4}, {0, 4}, {0, 0}},
			{{1, 1}, {2, 1}, {2, 2}, {1, 1}},
		}},
		{"Empty Ring Excluded", "a,b;c,d@1,1;2,2", []orb.Ring{
			{{1, 1}, {2, 2}, {1, 1}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := ParseShapeRings(tt.input)
			if actual == nil {
				t.Fatalf("ParseShapeRings(%q) returned nil", tt.input)
			}
			if !ringsAlmostEqual(actual, tt.expected, 0) {
				t.Errorf("ParseShapeRings(%q): expected %v, got %v", tt.input, tt.expected, actual)
			}
		})
	}
}

func TestParseShape(t *testing.T) {
	if got := ParseShape(""); len(got) != 0 {
		t.Errorf("ParseShape(\"\") = %v; want empty", got)
	}
	got := ParseShape("1,1;2,1;2,2@5,5;6,6;7,5")
	want := orb.Ring{{1, 1}, {2, 1}, {2, 2}, {1, 1}}
	if !ringsAlmostEqual([]orb.Ring{got}, []orb.Ring{want}, 0) {
		t.Errorf("ParseShape first ring = %v; want %v", got, want)
	}
}

func TestParsePoint(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
		want  orb.Point
	}{
		{"116.397428,39.90923", true, orb.Point{116.397428, 39.90923}},
		{" 1 , -2 ", true, orb.Point{1, -2}},
		{"1", false, orb.Point{}},
		{"1,2,3", false, orb.Point{}},
		{"1,abc", false, orb.Point{}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParsePoint(tt.input)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ParsePoint(%q) = %v, %v; want %v, %v", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestFormatShape(t *testing.T) {
	open := orb.Ring{{1, 2}, {3, 4}, {5, 6}}
	closed := orb.Ring{{1, 2}, {3, 4}, {5, 6}, {1, 2}}

	tests := []struct {
		name      string
		rings     []orb.Ring
		precision int
		close     bool
		expected  string
	}{
		{"Close Open Ring", []orb.Ring{open}, 1, true, "1.0,2.0;3.0,4.0;5.0,6.0;1.0,2.0"},
		{"Closed Ring Unchanged", []orb.Ring{closed}, 0, true, "1,2;3,4;5,6;1,2"},
		{"Leave Open Drops Duplicate", []orb.Ring{closed}, 0, false, "1,2;3,4;5,6"},
		{"Leave Open Keeps Open", []orb.Ring{open}, 0, false, "1,2;3,4;5,6"},
		{"Negative Precision", []orb.Ring{{{1.4, 2.6}}}, -3, true, "1,3"},
		{"Default Precision", []orb.Ring{{{116.397428, 39.90923}}}, DefaultPrecision, true, "116.397428,39.909230"},
		{"Multi Ring Skips Empty", []orb.Ring{open, {}, {{7, 8}, {9, 9}, {7, 8}}}, 0, true, "1,2;3,4;5,6;1,2@7,8;9,9;7,8"},
		{"No Rings", nil, 6, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := FormatShape(tt.rings, tt.precision, tt.close)
			if actual != tt.expected {
				t.Errorf("FormatShape(): expected %q, got %q", tt.expected, actual)
			}
		})
	}
}

func TestFormatShapeDoesNotMutateInput(t *testing.T) {
	ring := make(orb.Ring, 3, 8)
	copy(ring, orb.Ring{{1, 2}, {3, 4}, {5, 6}})
	_ = FormatRing(ring, 2, true)
	if len(ring) != 3 {
		t.Fatalf("FormatRing changed input length to %d", len(ring))
	}
	if ring[:4][3] != (orb.Point{}) {
		t.Errorf("FormatRing wrote into input backing array: %v", ring[:4])
	}
}

func TestShapeRoundTrip(t *testing.T) {
	rings := []orb.Ring{
		{{116.397428, 39.90923}, {116.398112, 39.90923}, {116.398112, 39.910051}, {116.397428, 39.910051}, {116.397428, 39.90923}},
		{{116.3975, 39.9095}, {116.3978, 39.9095}, {116.3978, 39.9098}, {116.3975, 39.9095}},
	}
	for _, precision := range []int{4, 6, 8} {
		for _, closeRings := range []bool{true, false} {
			text := FormatShape(rings, precision, closeRings)
			back := ParseShapeRings(text)
			tol := math.Pow10(-precision)
			if !ringsAlmostEqual(back, rings, tol) {
				t.Errorf("round trip precision=%d close=%v: got %v", precision, closeRings, back)
			}
			for i, r := range back {
				if !r.Closed() {
					t.Errorf("round trip ring %d not closed", i)
				}
			}
		}
	}
}

func TestShortRingRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		vertices int
	}{
		{"Single Point", "116.1,39.1", 1},
		{"Two Points", "116.1,39.1;116.2,39.2", 3},
		{"Closed Three Points", "116.1,39.1;116.2,39.2;116.1,39.1", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rings := ParseShapeRings(tt.input)
			if len(rings) != 1 || len(rings[0]) != tt.vertices {
				t.Fatalf("ParseShapeRings(%q) = %v; want one ring of %d vertices", tt.input, rings, tt.vertices)
			}
			for _, closeRings := range []bool{true, false} {
				back := ParseShapeRings(FormatShape(rings, DefaultPrecision, closeRings))
				if len(back) != 1 || len(back[0]) != tt.vertices {
					t.Errorf("close=%v: round trip changed vertex count %d -> %v", closeRings, tt.vertices, back)
				}
			}
		})
	}
}

func TestFormatRingClosedTwoVertexRing(t *testing.T) {
	ring := orb.Ring{{1, 2}, {3, 4}, {1, 2}}
	if got := FormatRing(ring, 0, true); got != "1,2;3,4;1,2" {
		t.Errorf("FormatRing(close) = %q", got)
	}
	if got := FormatRing(ring, 0, false); got != "1,2;3,4" {
		t.Errorf("FormatRing(open) = %q", got)
	}
}
