package hdrkit

import (
	"errors"
	"image"
	"image/draw"
	_ "image/jpeg" // decode jpeg format
	"image/png"
	"io"
	"strings"

	"github.com/disintegration/imaging"
	_ "github.com/sunshineplan/pdf"  // decode pdf format
	_ "github.com/sunshineplan/tiff" // decode tiff format
	_ "golang.org/x/image/bmp"       // decode bmp format
	_ "golang.org/x/image/webp"      // decode webp format
)

// Format is an image file format.
type Format imaging.Format

// Image file formats.
const (
	JPEG Format = iota
	PNG
	GIF
	TIFF
	BMP
)

var formatExts = map[Format]string{
	JPEG: "jpg",
	PNG:  "png",
	GIF:  "gif",
	TIFF: "tif",
	BMP:  "bmp",
}

var defaultFormat = FormatOption{Format: JPEG}

func (f Format) String() string {
	if ext, ok := formatExts[f]; ok {
		return ext
	}
	return "unknown"
}

// FormatFromExtension parses image format from filename extension:
// "jpg" (or "jpeg"), "png", "gif", "tif" (or "tiff") and "bmp" are supported.
func FormatFromExtension(ext string) (Format, error) {
	f, err := imaging.FormatFromExtension(strings.TrimPrefix(ext, "."))
	if err != nil {
		return -1, err
	}
	return Format(f), nil
}

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) {
	if _, ok := formatExts[f]; !ok {
		return nil, errors.New("unknown format")
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(text []byte) error {
	format, err := FormatFromExtension(string(text))
	if err != nil {
		return err
	}
	*f = format
	return nil
}

// FormatOption is format option
type FormatOption struct {
	Format       Format
	EncodeOption []EncodeOption
}

// EncodeOption sets an optional parameter for the Encode and Save functions.
type EncodeOption imaging.EncodeOption

// Quality returns an EncodeOption that sets the output JPEG quality.
// Quality ranges from 1 to 100 inclusive, higher is better.
func Quality(quality int) EncodeOption {
	return EncodeOption(imaging.JPEGQuality(quality))
}

// GIFNumColors returns an EncodeOption that sets the maximum number of colors
// used in the GIF-encoded image. It ranges from 1 to 256.  Default is 256.
func GIFNumColors(numColors int) EncodeOption {
	return EncodeOption(imaging.GIFNumColors(numColors))
}

// GIFDrawer returns an EncodeOption that sets the drawer that is used to convert
// the source image to the desired palette of the GIF-encoded image.
func GIFDrawer(drawer draw.Drawer) EncodeOption {
	return EncodeOption(imaging.GIFDrawer(drawer))
}

// PNGCompressionLevel returns an EncodeOption that sets the compression level
// of the PNG-encoded image. Default is png.DefaultCompression.
func PNGCompressionLevel(level png.CompressionLevel) EncodeOption {
	return EncodeOption(imaging.PNGCompressionLevel(level))
}

// Ext returns the filename extension of the format.
func (f *FormatOption) Ext() string {
	return formatExts[f.Format]
}

// Encode writes base to w according to the format option.
func (f *FormatOption) Encode(w io.Writer, base image.Image) error {
	if _, ok := formatExts[f.Format]; !ok {
		return imaging.ErrUnsupportedFormat
	}
	var opts []imaging.EncodeOption
	for _, i := range f.EncodeOption {
		opts = append(opts, imaging.EncodeOption(i))
	}
	return imaging.Encode(w, base, imaging.Format(f.Format), opts...)
}
