package hdrkit

import "image"

// Image is an immutable bitmap paired with an orientation tag.
// The tag tells how the stored pixels must be transformed to be displayed upright.
type Image struct {
	pix         image.Image
	orientation Orientation
}

// New wraps img with the orientation tag o.
func New(img image.Image, o Orientation) *Image {
	return &Image{pix: img, orientation: o}
}

// Pixels returns the stored pixel data.
func (img *Image) Pixels() image.Image {
	if img == nil {
		return nil
	}
	return img.pix
}

// Orientation returns the orientation tag.
func (img *Image) Orientation() Orientation {
	if img == nil {
		return Up
	}
	return img.orientation
}

// Bounds returns the bounds of the stored pixels.
func (img *Image) Bounds() image.Rectangle {
	if img == nil || img.pix == nil {
		return image.Rectangle{}
	}
	return img.pix.Bounds()
}

// Size returns the display size, that is the stored size with width and height
// swapped when the orientation involves a quarter turn.
func (img *Image) Size() image.Point {
	size := img.Bounds().Size()
	if angle, _ := img.Orientation().Transform(); angle == 90 || angle == 270 {
		size.X, size.Y = size.Y, size.X
	}
	return size
}

// Empty reports whether the image holds no pixels.
func (img *Image) Empty() bool {
	return img.Bounds().Empty()
}
