package renderer

import (
	"image"
	"image/color"
	stddraw "image/draw"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ivlev/telop/internal/telop"
)

// Renderer composites the active caption over a background.
type Renderer struct {
	Width, Height int
	Scale         int // Integer upscale applied to the bitmap font
	Margin        int // Distance between caption box and bottom edge
	TextColor     color.RGBA
	BoxColor      color.RGBA
	BoxAlpha      float64
	Easing        Easing
	Background    image.Image

	face font.Face
}

func NewRenderer(width, height int) *Renderer {
	return &Renderer{
		Width:      width,
		Height:     height,
		Scale:      3,
		Margin:     48,
		TextColor:  color.RGBA{255, 255, 255, 255},
		BoxColor:   color.RGBA{0, 0, 0, 255},
		BoxAlpha:   0.5,
		Easing:     Linear,
		Background: image.Transparent,
		face:       basicfont.Face7x13,
	}
}

const boxPadding = 3

// Render draws the background and, when the frame is active, the caption
// at its eased opacity into dst.
func (r *Renderer) Render(dst *image.RGBA, f telop.Frame) {
	bg := r.Background
	if bg == nil {
		bg = image.Transparent
	}
	stddraw.Draw(dst, dst.Bounds(), bg, image.Point{}, stddraw.Src)

	opacity := Opacity(f, r.Easing)
	if opacity <= 0 || f.Text == "" {
		return
	}

	caption := r.caption(f.Text)
	scale := r.Scale
	if scale < 1 {
		scale = 1
	}
	w, h := caption.Bounds().Dx()*scale, caption.Bounds().Dy()*scale
	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), caption, caption.Bounds(), draw.Src, nil)

	x := (r.Width - w) / 2
	y := r.Height - r.Margin - h
	target := image.Rect(x, y, x+w, y+h)

	mask := image.NewUniform(color.Alpha{A: uint8(lerp(0, 255, opacity) + 0.5)})
	stddraw.DrawMask(dst, target, scaled, image.Point{}, mask, image.Point{}, stddraw.Over)
}

// caption renders text at native font size on its backing box.
func (r *Renderer) caption(text string) *image.RGBA {
	face := r.face
	if face == nil {
		face = basicfont.Face7x13
	}
	lines := strings.Split(text, "\n")
	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil()
	ascent := metrics.Ascent.Ceil()

	widths := make([]int, len(lines))
	maxWidth := 0
	for i, line := range lines {
		widths[i] = font.MeasureString(face, line).Ceil()
		if widths[i] > maxWidth {
			maxWidth = widths[i]
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, maxWidth+2*boxPadding, lineHeight*len(lines)+2*boxPadding))
	box := color.NRGBA{R: r.BoxColor.R, G: r.BoxColor.G, B: r.BoxColor.B, A: uint8(telop.Remap(r.BoxAlpha, 0, 255))}
	stddraw.Draw(img, img.Bounds(), image.NewUniform(box), image.Point{}, stddraw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(r.TextColor),
		Face: face,
	}
	for i, line := range lines {
		x := boxPadding + (maxWidth-widths[i])/2
		y := boxPadding + ascent + i*lineHeight
		d.Dot = fixed.P(x, y)
		d.DrawString(line)
	}
	return img
}
