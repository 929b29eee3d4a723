package evergreen

import (
	"errors"
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestParseShape(t *testing.T) {
	tests := []struct {
		in   string
		want Shape
	}{
		{"tree", ShapeTree},
		{" Tree ", ShapeTree},
		{"scatter", ShapeScatter},
		{"scattered", ShapeScatter},
		{"galaxy", ShapeScatter},
		{"starfield", ShapeScatter},
	}
	for _, tt := range tests {
		got, err := ParseShape(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseShape(%q) = %v, %v", tt.in, got, err)
		}
	}
	if _, err := ParseShape("cube"); !errors.Is(err, ErrUnknownShape) {
		t.Errorf("err = %v, want ErrUnknownShape", err)
	}
}

func TestShapeEndpoint(t *testing.T) {
	if ShapeTree.Endpoint() != 0 || ShapeScatter.Endpoint() != 1 {
		t.Error("endpoints must be 0 for tree and 1 for scatter")
	}
	if s := Shape(7).String(); s != "Shape(7)" {
		t.Errorf("String = %q", s)
	}
}

func TestColorScaleClamps(t *testing.T) {
	c := Color{0.5, 0.8, 0.1}.Scale(1.5)
	if c.R != 0.75 || c.G != 1 || math.Abs(c.B-0.15) > 1e-12 {
		t.Errorf("Scale = %v", c)
	}
}

func TestClamp01(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{-1, 0}, {0, 0}, {0.25, 0.25}, {1, 1}, {1.2, 1}, {math.NaN(), 0}, {math.Inf(1), 1},
	}
	for _, tt := range tests {
		if got := clamp01(tt.in); got != tt.want {
			t.Errorf("clamp01(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRangeRandom(t *testing.T) {
	rng := newRand(1)
	r := Range{Min: 2, Max: 5}
	for i := 0; i < 1000; i++ {
		if v := r.Random(rng); v < 2 || v > 5 {
			t.Fatalf("Random = %v outside [2, 5]", v)
		}
	}
	if v := (Range{Min: 3, Max: 3}).Random(rng); v != 3 {
		t.Errorf("degenerate range = %v", v)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 5, Height: 5}
	if !r.Contains(10, 10) || !r.Contains(15, 15) || r.Contains(16, 12) {
		t.Error("Contains edge handling wrong")
	}
}

func TestBlendModeEbitenBlend(t *testing.T) {
	if BlendAdd.EbitenBlend() != ebiten.BlendLighter {
		t.Error("BlendAdd should map to BlendLighter")
	}
	if BlendNormal.EbitenBlend() != ebiten.BlendSourceOver {
		t.Error("BlendNormal should map to BlendSourceOver")
	}
	if BlendScreen.EbitenBlend().BlendFactorDestinationRGB != ebiten.BlendFactorOneMinusSourceColor {
		t.Error("BlendScreen destination factor wrong")
	}
}

func TestNewRandDeterministic(t *testing.T) {
	a, b := newRand(77), newRand(77)
	for i := 0; i < 10; i++ {
		if a.Uint64() != b.Uint64() {
			t.Fatal("same seed produced different streams")
		}
	}
}
