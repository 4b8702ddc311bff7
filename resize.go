package hdrkit

import (
	"image"

	"github.com/disintegration/imaging"
)

// ResizeOption scales images before they reach the engine.
// If one of Width or Height is 0, the aspect ratio is preserved.
// Percent is only used when both Width and Height are 0.
type ResizeOption struct {
	Width   int
	Height  int
	Percent float64
}

// Resize returns a resized copy of base.
func Resize(base image.Image, option *ResizeOption) image.Image {
	return option.resize(base)
}

func (r *ResizeOption) resize(base image.Image) image.Image {
	if r.Width == 0 && r.Height == 0 {
		if r.Percent == 0 {
			return base
		}
		return imaging.Resize(base, int(float64(base.Bounds().Dx())*r.Percent/100), 0, imaging.Lanczos)
	}
	return imaging.Resize(base, r.Width, r.Height, imaging.Lanczos)
}

// do resizes the stored pixels of img and keeps its orientation tag.
func (r *ResizeOption) do(img *Image) *Image {
	if img.Empty() {
		return img
	}
	return New(r.resize(img.Pixels()), img.Orientation())
}
