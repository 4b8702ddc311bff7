package hdrkit

import (
	"image"
	"io"
	"os"

	"github.com/rwcarlsen/goexif/exif"
)

type decodeConfig struct {
	autoOrientation bool
}

var defaultDecodeConfig = decodeConfig{
	autoOrientation: true,
}

// DecodeOption sets an optional parameter for the Decode and Open functions.
type DecodeOption func(*decodeConfig)

// AutoOrientation returns a DecodeOption that sets the auto-orientation mode.
// If auto-orientation is enabled, the image will be transformed after decoding
// according to the EXIF orientation tag (if present) and tagged Up. Otherwise the
// pixels are kept as stored and the image carries the EXIF orientation as its tag.
// By default it's enabled.
func AutoOrientation(enabled bool) DecodeOption {
	return func(c *decodeConfig) {
		c.autoOrientation = enabled
	}
}

// Decode reads an image from r.
// If want to use custom image format packages which were registered in image package, please
// make sure these custom packages imported before importing hdrkit package.
func Decode(r io.Reader, opts ...DecodeOption) (*Image, error) {
	cfg := defaultDecodeConfig
	for _, option := range opts {
		option(&cfg)
	}

	var orient Orientation
	pr, pw := io.Pipe()
	r = io.TeeReader(r, pw)
	done := make(chan struct{})
	go func() {
		defer close(done)
		orient = readOrientation(pr)
		io.Copy(io.Discard, pr)
	}()

	img, _, err := image.Decode(r)
	pw.Close()
	<-done
	if err != nil {
		return nil, err
	}

	if cfg.autoOrientation {
		return NormalizeUp(New(img, orient)), nil
	}
	return New(img, orient), nil
}

// readOrientation reads the EXIF orientation flag from image data in r.
// Missing or unreadable EXIF data gives Up.
func readOrientation(r io.Reader) Orientation {
	x, err := exif.Decode(r)
	if err != nil {
		return Up
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return Up
	}
	v, err := tag.Int(0)
	if err != nil {
		return Up
	}
	return FromEXIF(v)
}

// DecodeConfig decodes the color model and dimensions of an image that has been encoded in a
// registered format. The string returned is the format name used during format registration.
func DecodeConfig(r io.Reader) (image.Config, string, error) {
	return image.DecodeConfig(r)
}

// Open loads an image from file.
func Open(file string, opts ...DecodeOption) (*Image, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f, opts...)
}

// Write encodes img to w according format option.
// The pixels are normalized to the Up orientation first since the encoders do not
// store an orientation tag.
func Write(w io.Writer, img *Image, option *FormatOption) error {
	if img.Pixels() == nil {
		return &ConversionError{Op: "Write", Msg: "image has no pixel buffer"}
	}
	return option.Encode(w, NormalizeUp(img).Pixels())
}

// Save saves image according format option
func Save(output string, img *Image, option *FormatOption) error {
	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer f.Close()

	return Write(f, img, option)
}
