package engine

import (
	"context"
	"fmt"
	"image"
	"math"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/telop/internal/config"
	"github.com/ivlev/telop/internal/renderer"
	"github.com/ivlev/telop/internal/system"
	"github.com/ivlev/telop/internal/telop"
)

// FrameSink consumes rendered frames in timeline order.
type FrameSink interface {
	WriteFrame(img *image.RGBA) error
	Close() error
}

// Project renders a caption set over a timeline.
type Project struct {
	Params   config.SegmentParams
	Workers  int
	Set      telop.Set
	Renderer *renderer.Renderer
	Log      zerolog.Logger
}

func NewProject(params config.SegmentParams, workers int, set telop.Set, r *renderer.Renderer, log zerolog.Logger) *Project {
	return &Project{
		Params:   params,
		Workers:  workers,
		Set:      set,
		Renderer: r,
		Log:      log,
	}
}

// Stats summarises a finished render.
type Stats struct {
	Frames   int
	Active   int
	Elapsed  time.Duration
	FPS      float64
	Duration float64
}

// FrameCount is the number of frames covering Params.Duration.
func (p *Project) FrameCount() int {
	return int(math.Ceil(p.Params.Duration*float64(p.Params.FPS) - 1e-9))
}

// FrameTime returns the timeline position of frame i.
func (p *Project) FrameTime(i int) float64 {
	return float64(i) / float64(p.Params.FPS)
}

// Run renders every frame and hands them to sink in order. Frames are drawn
// concurrently in batches; the sink is always closed.
func (p *Project) Run(ctx context.Context, sink FrameSink) (stats Stats, err error) {
	defer func() {
		if cerr := sink.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if p.Params.FPS <= 0 {
		return stats, fmt.Errorf("invalid fps %d", p.Params.FPS)
	}
	total := p.FrameCount()
	if total <= 0 {
		return stats, fmt.Errorf("nothing to render: duration %.2fs", p.Params.Duration)
	}

	ease, err := renderer.EasingByName(p.Params.Easing)
	if err != nil {
		return stats, err
	}
	p.Renderer.Easing = ease

	workers := p.Workers
	if workers <= 0 {
		workers = system.DefaultWorkers()
	}
	batchSize := workers * 4
	pool := system.NewFramePool(p.Params.Width, p.Params.Height)

	p.Log.Info().
		Int("frames", total).
		Int("workers", workers).
		Str("size", fmt.Sprintf("%dx%d", p.Params.Width, p.Params.Height)).
		Int("fps", p.Params.FPS).
		Msg("[*] Rendering captions")

	start := time.Now()
	frames := make([]*image.RGBA, batchSize)
	active := make([]bool, batchSize)

	for batchStart := 0; batchStart < total; batchStart += batchSize {
		n := batchSize
		if batchStart+n > total {
			n = total - batchStart
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for j := 0; j < n; j++ {
			j := j
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				f := p.Set.At(p.Params.EffectSec, p.FrameTime(batchStart+j))
				img := pool.Get()
				p.Renderer.Render(img, f)
				frames[j] = img
				active[j] = f.Active
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			releaseFrames(pool, frames[:n])
			return stats, err
		}

		for j := 0; j < n; j++ {
			if err == nil {
				if werr := sink.WriteFrame(frames[j]); werr != nil {
					err = fmt.Errorf("write frame %d: %w", batchStart+j, werr)
				}
			}
			if active[j] {
				stats.Active++
			}
		}
		releaseFrames(pool, frames[:n])
		if err != nil {
			return stats, err
		}
		stats.Frames += n

		p.Log.Debug().Int("done", stats.Frames).Int("total", total).Msg("[>] Frames ready")
	}

	stats.Elapsed = time.Since(start)
	stats.Duration = p.Params.Duration
	if s := stats.Elapsed.Seconds(); s > 0 {
		stats.FPS = float64(stats.Frames) / s
	}

	p.Log.Info().
		Int("frames", stats.Frames).
		Int("active", stats.Active).
		Dur("elapsed", stats.Elapsed).
		Float64("render_fps", stats.FPS).
		Msg("[+++] Render finished")
	return stats, nil
}

func releaseFrames(pool *system.FramePool, frames []*image.RGBA) {
	for i, f := range frames {
		pool.Put(f)
		frames[i] = nil
	}
}
