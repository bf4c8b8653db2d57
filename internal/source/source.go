package source

import (
	"image"
	"image/color"
	stddraw "image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"golang.org/x/image/draw"
)

// Source provides the backdrop that captions are drawn over.
type Source interface {
	Background(width, height int) (image.Image, error)
}

// Open returns an image source for a file path, or a solid colour source
// for "" (transparent) and "#RRGGBB" values.
func Open(bg string) (Source, error) {
	if bg == "" {
		return SolidSource{}, nil
	}
	if strings.HasPrefix(bg, "#") {
		c, err := ParseHexColor(bg)
		if err != nil {
			return nil, err
		}
		return SolidSource{Color: c}, nil
	}
	return NewImageSource(bg)
}

// SolidSource fills the frame with a single colour.
type SolidSource struct {
	Color color.RGBA
}

func (s SolidSource) Background(width, height int) (image.Image, error) {
	return image.NewUniform(s.Color), nil
}

// ImageSource scales a still image to cover the frame.
type ImageSource struct {
	path string
	img  image.Image
}

func NewImageSource(path string) (*ImageSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return &ImageSource{path: path, img: img}, nil
}

func (s *ImageSource) Background(width, height int) (image.Image, error) {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	src := s.img.Bounds()

	// scale to cover, then centre-crop
	scale := float64(width) / float64(src.Dx())
	if sy := float64(height) / float64(src.Dy()); sy > scale {
		scale = sy
	}
	w := int(float64(src.Dx())*scale + 0.5)
	h := int(float64(src.Dy())*scale + 0.5)
	offset := image.Pt((width-w)/2, (height-h)/2)

	stddraw.Draw(dst, dst.Bounds(), image.Black, image.Point{}, stddraw.Src)
	draw.CatmullRom.Scale(dst, image.Rectangle{Min: offset, Max: offset.Add(image.Pt(w, h))}, s.img, src, draw.Over, nil)
	return dst, nil
}
