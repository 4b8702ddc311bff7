package hdrkit

import (
	"image"

	"github.com/disintegration/imaging"
)

// Orientation specifies how stored pixels must be rotated or mirrored to be
// displayed upright.
type Orientation int

// Orientation values.
const (
	Up Orientation = iota
	Down
	Left
	Right
	UpMirrored
	DownMirrored
	LeftMirrored
	RightMirrored
)

var orientationNames = [...]string{
	Up:            "up",
	Down:          "down",
	Left:          "left",
	Right:         "right",
	UpMirrored:    "up-mirrored",
	DownMirrored:  "down-mirrored",
	LeftMirrored:  "left-mirrored",
	RightMirrored: "right-mirrored",
}

// EXIF orientation flag values indexed by Orientation.
var exifOrientations = [...]int{
	Up:            1,
	UpMirrored:    2,
	Down:          3,
	DownMirrored:  4,
	LeftMirrored:  5,
	Right:         6,
	RightMirrored: 7,
	Left:          8,
}

// transform is an element of the dihedral group of the square:
// mirror horizontally (if mirror is set), then rotate counter-clockwise by angle.
type transform struct {
	angle  int
	mirror bool
}

var orientationTransforms = [...]transform{
	Up:            {0, false},
	Down:          {180, false},
	Left:          {90, false},
	Right:         {270, false},
	UpMirrored:    {0, true},
	DownMirrored:  {180, true},
	LeftMirrored:  {90, true},
	RightMirrored: {270, true},
}

func (o Orientation) valid() bool {
	return o >= Up && o <= RightMirrored
}

func (o Orientation) String() string {
	if !o.valid() {
		return "unknown"
	}
	return orientationNames[o]
}

// EXIF returns the EXIF orientation flag (1-8) for o. Unknown values map to 1.
func (o Orientation) EXIF() int {
	if !o.valid() {
		return 1
	}
	return exifOrientations[o]
}

// FromEXIF converts an EXIF orientation flag to an Orientation.
// Values outside 1-8 are treated as Up.
func FromEXIF(flag int) Orientation {
	for o, v := range exifOrientations {
		if v == flag {
			return Orientation(o)
		}
	}
	return Up
}

// Transform returns the counter-clockwise rotation angle in degrees and the
// horizontal mirror flag that bring pixels tagged o upright. The mirror is applied
// first. Unknown values return the identity.
func (o Orientation) Transform() (angle int, mirror bool) {
	if !o.valid() {
		return 0, false
	}
	t := orientationTransforms[o]
	return t.angle, t.mirror
}

func (o Orientation) transform() transform {
	angle, mirror := o.Transform()
	return transform{angle, mirror}
}

func (t transform) inverse() transform {
	if t.mirror {
		return t
	}
	return transform{(360 - t.angle) % 360, false}
}

// then returns the transform applying t first and u second.
func (t transform) then(u transform) transform {
	angle := t.angle
	if u.mirror {
		angle = -angle
	}
	return transform{((u.angle+angle)%360 + 360) % 360, t.mirror != u.mirror}
}

func (t transform) apply(img image.Image) *image.NRGBA {
	switch t {
	case transform{90, false}:
		return imaging.Rotate90(img)
	case transform{180, false}:
		return imaging.Rotate180(img)
	case transform{270, false}:
		return imaging.Rotate270(img)
	case transform{0, true}:
		return imaging.FlipH(img)
	case transform{90, true}:
		return imaging.Transpose(img)
	case transform{180, true}:
		return imaging.FlipV(img)
	case transform{270, true}:
		return imaging.Transverse(img)
	}
	return imaging.Clone(img)
}

// Retag returns an image sharing img's pixels with only the orientation tag changed.
func Retag(img *Image, target Orientation) *Image {
	return &Image{pix: img.Pixels(), orientation: target}
}

// RotatePixels returns a new image tagged target whose pixels are rotated and
// mirrored so that it displays exactly like img.
func RotatePixels(img *Image, target Orientation) *Image {
	if img.Pixels() == nil {
		return &Image{orientation: target}
	}
	t := img.Orientation().transform().then(target.transform().inverse())
	return &Image{pix: t.apply(img.Pixels()), orientation: target}
}

// NormalizeUp returns img with its pixels physically transformed to the Up
// orientation. An image already tagged Up, or carrying an unknown tag, is
// returned unchanged.
func NormalizeUp(img *Image) *Image {
	if o := img.Orientation(); o == Up || !o.valid() {
		return img
	}
	return RotatePixels(img, Up)
}
