package system

import (
	"image"
	"sync"
)

// FramePool recycles *image.RGBA frames of one size to keep GC pressure low
// while rendering long timelines.
type FramePool struct {
	rect image.Rectangle
	pool sync.Pool
}

func NewFramePool(width, height int) *FramePool {
	rect := image.Rect(0, 0, width, height)
	p := &FramePool{rect: rect}
	p.pool.New = func() interface{} {
		return image.NewRGBA(rect)
	}
	return p
}

// Get returns a frame of the pool size. Its contents are undefined.
func (p *FramePool) Get() *image.RGBA {
	return p.pool.Get().(*image.RGBA)
}

// Put returns a frame to the pool. Frames of another size are dropped.
func (p *FramePool) Put(img *image.RGBA) {
	if img == nil || img.Rect != p.rect {
		return
	}
	p.pool.Put(img)
}
