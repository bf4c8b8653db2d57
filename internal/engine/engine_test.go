package engine

import (
	"context"
	"errors"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ivlev/telop/internal/config"
	"github.com/ivlev/telop/internal/logging"
	"github.com/ivlev/telop/internal/renderer"
	"github.com/ivlev/telop/internal/telop"
)

// memorySink keeps a copy of every frame it receives.
type memorySink struct {
	frames []*image.RGBA
	closed bool
	failAt int
}

func (s *memorySink) WriteFrame(img *image.RGBA) error {
	if s.failAt > 0 && len(s.frames) == s.failAt {
		return errors.New("sink full")
	}
	cp := image.NewRGBA(img.Rect)
	copy(cp.Pix, img.Pix)
	s.frames = append(s.frames, cp)
	return nil
}

func (s *memorySink) Close() error {
	s.closed = true
	return nil
}

func newProject(duration float64, workers int) *Project {
	params := config.SegmentParams{Width: 64, Height: 48, FPS: 10, Duration: duration, EffectSec: 0.5}
	r := renderer.NewRenderer(64, 48)
	r.Scale = 1
	r.Margin = 2
	r.Background = image.NewUniform(color.RGBA{0, 0, 0, 255})
	set := telop.Set{{Start: 0.5, Duration: 1, Text: "HI"}}
	return NewProject(params, workers, set, r, logging.New(io.Discard))
}

func isBlack(img *image.RGBA) bool {
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 || img.Pix[i+1] != 0 || img.Pix[i+2] != 0 {
			return false
		}
	}
	return true
}

func TestRunOrderedFrames(t *testing.T) {
	p := newProject(2, 3)
	sink := &memorySink{}

	stats, err := p.Run(context.Background(), sink)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !sink.closed {
		t.Error("Sink should be closed")
	}
	if stats.Frames != 20 || len(sink.frames) != 20 {
		t.Fatalf("Expected 20 frames, got %d (sink %d)", stats.Frames, len(sink.frames))
	}
	// entry covers frames 5..14; frame 5 is the start of the fade
	if stats.Active != 10 {
		t.Errorf("Expected 10 active frames, got %d", stats.Active)
	}

	for i, f := range sink.frames {
		visible := !isBlack(f)
		want := i > 5 && i < 15
		if visible != want {
			t.Errorf("Frame %d: visible=%v, want %v", i, visible, want)
		}
	}
}

func TestRunSameOutputAnyWorkers(t *testing.T) {
	a, b := &memorySink{}, &memorySink{}
	if _, err := newProject(2, 1).Run(context.Background(), a); err != nil {
		t.Fatal(err)
	}
	if _, err := newProject(2, 8).Run(context.Background(), b); err != nil {
		t.Fatal(err)
	}
	for i := range a.frames {
		if string(a.frames[i].Pix) != string(b.frames[i].Pix) {
			t.Fatalf("Frame %d differs between worker counts", i)
		}
	}
}

func TestRunErrors(t *testing.T) {
	sink := &memorySink{}
	if _, err := newProject(0, 2).Run(context.Background(), sink); err == nil {
		t.Error("Expected error for empty timeline")
	}
	if !sink.closed {
		t.Error("Sink should be closed on error")
	}

	failing := &memorySink{failAt: 3}
	if _, err := newProject(2, 2).Run(context.Background(), failing); err == nil {
		t.Error("Expected sink error to propagate")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := newProject(2, 2).Run(ctx, &memorySink{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func brightness(img *image.RGBA) int {
	sum := 0
	for i := 0; i < len(img.Pix); i += 4 {
		sum += int(img.Pix[i]) + int(img.Pix[i+1]) + int(img.Pix[i+2])
	}
	return sum
}

func TestRunEasingFromParams(t *testing.T) {
	levels := map[string]int{}
	for _, easing := range []string{"linear", "ease-out"} {
		p := newProject(1, 2)
		p.Params.Easing = easing
		sink := &memorySink{}
		if _, err := p.Run(context.Background(), sink); err != nil {
			t.Fatalf("%s: Run failed: %v", easing, err)
		}
		// frame 7 is t=0.7, 0.2s into the fade-in
		levels[easing] = brightness(sink.frames[7])
	}
	t.Logf("Fade-in brightness: %v", levels)
	if levels["linear"] == 0 || levels["ease-out"] <= levels["linear"] {
		t.Errorf("Expected ease-out to be brighter than linear early in the fade, got %v", levels)
	}

	p := newProject(1, 2)
	p.Params.Easing = "bounce"
	sink := &memorySink{}
	if _, err := p.Run(context.Background(), sink); err == nil {
		t.Error("Expected error for unknown easing")
	}
	if !sink.closed {
		t.Error("Sink should be closed on error")
	}
}

func TestPNGSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	sink, err := NewPNGSink(dir)
	if err != nil {
		t.Fatalf("NewPNGSink failed: %v", err)
	}

	if _, err := newProject(0.3, 2).Run(context.Background(), sink); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if sink.Count() != 3 {
		t.Errorf("Expected 3 frames, got %d", sink.Count())
	}
	if _, err := os.Stat(filepath.Join(dir, "frame_00002.png")); err != nil {
		t.Errorf("Expected last frame file: %v", err)
	}
}
