package engine

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// PNGSink writes each frame as frame_NNNNN.png into a directory.
type PNGSink struct {
	Dir   string
	count int
}

func NewPNGSink(dir string) (*PNGSink, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &PNGSink{Dir: dir}, nil
}

func (s *PNGSink) WriteFrame(img *image.RGBA) error {
	path := filepath.Join(s.Dir, fmt.Sprintf("frame_%05d.png", s.count))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	s.count++
	return f.Close()
}

func (s *PNGSink) Close() error { return nil }

// Count returns the number of frames written so far.
func (s *PNGSink) Count() int { return s.count }
