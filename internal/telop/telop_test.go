package telop

import (
	"math"
	"testing"
	"time"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestRemap(t *testing.T) {
	tests := []struct {
		name          string
		val, min, max float64
		want          float64
	}{
		{"lower bound", 0, 0, 10, 0},
		{"upper bound", 1, 0, 10, 10},
		{"midpoint", 0.5, 0, 10, 5},
		{"reversed range", 0.25, 10, 0, 7.5},
		{"negative range", 0.5, -4, -2, -3},
		{"clamped below", -0.5, 0, 10, 0},
		{"clamped above", 1.5, 0, 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Remap(tt.val, tt.min, tt.max); !approx(got, tt.want) {
				t.Errorf("Remap(%v, %v, %v) = %v, want %v", tt.val, tt.min, tt.max, got, tt.want)
			}
		})
	}

	if Remap(-0.5, 0, 10) != Remap(0, 0, 10) {
		t.Error("clamped value should equal the lower bound result")
	}
}

func TestRemapOr(t *testing.T) {
	if got := RemapOr(1.5, 0, 10, 99); got != 99 {
		t.Errorf("expected override 99, got %v", got)
	}
	if got := RemapOr(-0.1, 0, 10, 99); got != 99 {
		t.Errorf("expected override 99, got %v", got)
	}
	// bounds are in range, so no override
	if got := RemapOr(0, 0, 10, 99); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
	if got := RemapOr(1, 0, 10, 99); got != 10 {
		t.Errorf("expected 10, got %v", got)
	}
}

func TestLookup(t *testing.T) {
	set := Set{{0, 2, "A"}, {2, 3, "B"}}

	tests := []struct {
		time   float64
		text   string
		active bool
	}{
		{0, "A", true},
		{1, "A", true},
		{2, "B", true},
		{4.999, "B", true},
		{5, "", false},
		{-1, "", false},
	}

	for _, tt := range tests {
		text, ok := set.Lookup(tt.time)
		if text != tt.text || ok != tt.active {
			t.Errorf("Lookup(%v) = (%q, %v), want (%q, %v)", tt.time, text, ok, tt.text, tt.active)
		}
		if got := set.Text(tt.time); got != tt.text {
			t.Errorf("Text(%v) = %q, want %q", tt.time, got, tt.text)
		}
	}
}

func TestLookupEmptyCaption(t *testing.T) {
	set := Set{{0, 1, ""}}

	text, ok := set.Lookup(0.5)
	if !ok || text != "" {
		t.Errorf("expected an active empty caption, got (%q, %v)", text, ok)
	}
	if _, ok := set.Lookup(1.5); ok {
		t.Error("expected a miss after the entry")
	}
}

func TestFindFirstMatchWins(t *testing.T) {
	set := Set{{0, 5, "first"}, {1, 2, "second"}}

	e, ok := set.Find(1.5)
	if !ok {
		t.Fatal("expected a match")
	}
	if e.Text != "first" {
		t.Errorf("expected first entry in sequence order, got %q", e.Text)
	}
}

func TestFindUnordered(t *testing.T) {
	set := Set{{4, 2, "late"}, {0, 2, "early"}}

	if got := set.Text(0.5); got != "early" {
		t.Errorf("expected early, got %q", got)
	}
	if got := set.Text(4.5); got != "late" {
		t.Errorf("expected late, got %q", got)
	}
}

func TestInRatio(t *testing.T) {
	set := Set{{0, 2, "A"}}

	tests := []struct {
		time float64
		want float64
	}{
		{0, 0},
		{0.25, 0.5},
		{0.5, 1},
		{1, 1},
		{1.99, 1},
	}

	for _, tt := range tests {
		got, ok := set.InRatio(0.5, tt.time)
		if !ok {
			t.Fatalf("InRatio(%v): expected active entry", tt.time)
		}
		if !approx(got, tt.want) {
			t.Errorf("InRatio(%v) = %v, want %v", tt.time, got, tt.want)
		}
		if got := set.InEffectRatio(0.5, tt.time); !approx(got, tt.want) {
			t.Errorf("InEffectRatio(%v) = %v, want %v", tt.time, got, tt.want)
		}
	}
}

func TestOutRatio(t *testing.T) {
	set := Set{{0, 2, "A"}}

	tests := []struct {
		time float64
		want float64
	}{
		{0, 0},
		{1, 0},
		{1.5, 0},
		{1.75, 0.5},
		{1.9, 0.8},
	}

	for _, tt := range tests {
		got, ok := set.OutRatio(0.5, tt.time)
		if !ok {
			t.Fatalf("OutRatio(%v): expected active entry", tt.time)
		}
		if math.Abs(got-tt.want) > 1e-6 {
			t.Errorf("OutRatio(%v) = %v, want %v", tt.time, got, tt.want)
		}
		if got := set.OutEffectRatio(0.5, tt.time); math.Abs(got-tt.want) > 1e-6 {
			t.Errorf("OutEffectRatio(%v) = %v, want %v", tt.time, got, tt.want)
		}
	}
}

func TestRatioMiss(t *testing.T) {
	sets := map[string]Set{
		"empty": {},
		"nil":   nil,
		"gap":   {{0, 1, "A"}, {3, 1, "B"}},
	}

	for name, set := range sets {
		t.Run(name, func(t *testing.T) {
			if got := set.Text(2); got != "" {
				t.Errorf("Text = %q, want empty", got)
			}
			if _, ok := set.InRatio(DefaultEffectSec, 2); ok {
				t.Error("InRatio should miss")
			}
			if _, ok := set.OutRatio(DefaultEffectSec, 2); ok {
				t.Error("OutRatio should miss")
			}
			if got := set.InEffectRatio(DefaultEffectSec, 2); got != MissRatio {
				t.Errorf("InEffectRatio = %v, want %v", got, MissRatio)
			}
			if got := set.OutEffectRatio(DefaultEffectSec, 2); got != MissRatio {
				t.Errorf("OutEffectRatio = %v, want %v", got, MissRatio)
			}
			if f := set.At(DefaultEffectSec, 2); f.Active {
				t.Errorf("At should be inactive, got %+v", f)
			}
		})
	}
}

func TestZeroEffectSec(t *testing.T) {
	set := Set{{1, 2, "A"}}

	// zero and negative fade lengths both mean an instant transition
	for _, effect := range []float64{0, -0.5, -10} {
		for _, tm := range []float64{1, 2, 2.9} {
			if in, ok := set.InRatio(effect, tm); !ok || in != 1 {
				t.Errorf("effect %v t %v: expected instant fade in, got %v %v", effect, tm, in, ok)
			}
			if out, ok := set.OutRatio(effect, tm); !ok || out != 0 {
				t.Errorf("effect %v t %v: expected no fade out, got %v %v", effect, tm, out, ok)
			}
			if f := set.At(effect, tm); f.Opacity != 1 {
				t.Errorf("effect %v t %v: expected full opacity, got %v", effect, tm, f.Opacity)
			}
		}
		if r := set.InEffectRatio(effect, 5); r != MissRatio {
			t.Errorf("effect %v: expected miss sentinel, got %v", effect, r)
		}
		if r := set.OutEffectRatio(effect, 0.5); r != MissRatio {
			t.Errorf("effect %v: expected miss sentinel, got %v", effect, r)
		}
	}
}

func TestAt(t *testing.T) {
	set := Set{{0, 2, "A"}, {2, 0.5, "short"}}

	tests := []struct {
		time    float64
		opacity float64
	}{
		{0, 0},
		{0.25, 0.5},
		{1, 1},
		{1.75, 0.5},
		// 0.5s entry with 0.5s fades: both ratios apply at once
		{2.25, 0.25},
	}

	for _, tt := range tests {
		f := set.At(0.5, tt.time)
		if !f.Active {
			t.Fatalf("At(%v): expected active frame", tt.time)
		}
		if math.Abs(f.Opacity-tt.opacity) > 1e-6 {
			t.Errorf("At(%v).Opacity = %v, want %v", tt.time, f.Opacity, tt.opacity)
		}
	}
}

func TestSetEnd(t *testing.T) {
	set := Set{{0, 2, "A"}, {5, 1, "B"}, {1, 3, "C"}}
	if got := set.End(); got != 6 {
		t.Errorf("expected end 6, got %v", got)
	}
	if got := (Set{}).End(); got != 0 {
		t.Errorf("expected end 0 for empty set, got %v", got)
	}
}

func TestLayer(t *testing.T) {
	clock := &ManualClock{}
	layer := NewLayer(Set{{0, 2, "A"}, {2, 3, "B"}}, clock)

	clock.Set(1)
	if got := layer.Text(); got != "A" {
		t.Errorf("expected A, got %q", got)
	}

	clock.Set(2.25)
	in, ok := layer.InRatio()
	if !ok || !approx(in, 0.5) {
		t.Errorf("expected in ratio 0.5, got (%v, %v)", in, ok)
	}

	clock.Set(10)
	if _, ok := layer.OutRatio(); ok {
		t.Error("expected a miss past the last entry")
	}

	fixed := NewLayer(Set{{0, 2, "A"}}, FixedClock(0.25))
	if f := fixed.Frame(); !approx(f.In, 0.5) {
		t.Errorf("expected in 0.5, got %v", f.In)
	}
}

func TestWallClock(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := base
	c := &WallClock{now: func() time.Time { return now }}

	if c.Now() != 0 {
		t.Fatalf("expected paused clock at 0, got %v", c.Now())
	}

	c.Play()
	now = base.Add(1500 * time.Millisecond)
	if !approx(c.Now(), 1.5) {
		t.Errorf("expected 1.5, got %v", c.Now())
	}

	c.Pause()
	now = base.Add(5 * time.Second)
	if !approx(c.Now(), 1.5) {
		t.Errorf("paused clock moved: %v", c.Now())
	}

	c.Seek(10)
	c.Play()
	now = base.Add(6 * time.Second)
	if !approx(c.Now(), 11) {
		t.Errorf("expected 11, got %v", c.Now())
	}

	c.Seek(-3)
	if !approx(c.Now(), 0) {
		t.Errorf("expected seek clamped to 0, got %v", c.Now())
	}
}
