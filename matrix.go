package hdrkit

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Matrix is a dense row-major matrix of 8-bit samples.
// Samples of a pixel are stored in R, G, B(, A) order, alpha non-premultiplied.
// A single channel matrix holds luminance.
type Matrix struct {
	Rows, Cols, Channels int
	Pix                  []uint8
}

// NewMatrix allocates a zeroed matrix.
// It panics if the dimensions are negative or their product overflows.
func NewMatrix(rows, cols, channels int) *Matrix {
	n, ok := sampleCount(rows, cols, channels)
	if !ok {
		panic(fmt.Sprintf("hdrkit: invalid matrix dimensions %dx%dx%d", rows, cols, channels))
	}
	return &Matrix{Rows: rows, Cols: cols, Channels: channels, Pix: make([]uint8, n)}
}

// sampleCount returns rows*cols*channels, or false if a dimension is negative or the
// product does not fit in an int.
func sampleCount(rows, cols, channels int) (int, bool) {
	if rows < 0 || cols < 0 || channels < 0 {
		return 0, false
	}
	if rows == 0 || cols == 0 || channels == 0 {
		return 0, true
	}
	if cols > math.MaxInt/rows || rows*cols > math.MaxInt/channels {
		return 0, false
	}
	return rows * cols * channels, true
}

// Empty reports whether the matrix holds no samples.
func (m *Matrix) Empty() bool {
	return m == nil || m.Rows <= 0 || m.Cols <= 0 || len(m.Pix) == 0
}

// Size returns the matrix size as (cols, rows).
func (m *Matrix) Size() image.Point {
	if m == nil {
		return image.Point{}
	}
	return image.Pt(m.Cols, m.Rows)
}

// Validate reports a *ConversionError if m is empty, has a channel count other than
// 1, 3 or 4, or a Pix length that does not match its dimensions.
func (m *Matrix) Validate() error {
	return m.validate("Validate")
}

func (m *Matrix) validate(op string) error {
	if m.Empty() {
		return &ConversionError{Op: op, Msg: "empty matrix"}
	}
	switch m.Channels {
	case 1, 3, 4:
	default:
		return &ConversionError{Op: op, Msg: fmt.Sprintf("unsupported channel count %d", m.Channels)}
	}
	n, ok := sampleCount(m.Rows, m.Cols, m.Channels)
	if !ok {
		return &ConversionError{Op: op, Msg: fmt.Sprintf("dimensions %dx%dx%d overflow", m.Rows, m.Cols, m.Channels)}
	}
	if len(m.Pix) != n {
		return &ConversionError{Op: op, Msg: fmt.Sprintf("pixel buffer has %d samples, want %d", len(m.Pix), n)}
	}
	return nil
}

// FloatMatrix is a dense row-major matrix of float samples, as produced by exposure
// fusion. Values are expected in [0, 1].
type FloatMatrix struct {
	Rows, Cols, Channels int
	Pix                  []float32
}

// Empty reports whether the matrix holds no samples.
func (m *FloatMatrix) Empty() bool {
	return m == nil || m.Rows <= 0 || m.Cols <= 0 || len(m.Pix) == 0
}

// Quantize scales the samples by 255 and rounds them to 8-bit, saturating values
// outside the representable range.
func (m *FloatMatrix) Quantize() *Matrix {
	dst := &Matrix{Rows: m.Rows, Cols: m.Cols, Channels: m.Channels, Pix: make([]uint8, len(m.Pix))}
	for i, v := range m.Pix {
		dst.Pix[i] = clamp(float64(v) * 255)
	}
	return dst
}

// clamp rounds and clamps float64 value to fit into uint8.
func clamp(x float64) uint8 {
	v := int64(x + 0.5)
	if v > 255 {
		return 255
	}
	if v > 0 {
		return uint8(v)
	}
	return 0
}

func pixels(img *Image, op string) (image.Image, error) {
	pix := img.Pixels()
	if pix == nil {
		return nil, &ConversionError{Op: op, Msg: "image has no pixel buffer"}
	}
	if pix.Bounds().Empty() {
		return nil, &ConversionError{Op: op, Msg: fmt.Sprintf("image has invalid size %v", pix.Bounds().Size())}
	}
	return pix, nil
}

func opaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	return false
}

// pack copies an NRGBA buffer into a matrix keeping the first channels samples of
// each pixel.
func pack(src *image.NRGBA, channels int) *Matrix {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	m := NewMatrix(h, w, channels)
	for y := 0; y < h; y++ {
		s := src.Pix[y*src.Stride : y*src.Stride+w*4]
		d := m.Pix[y*w*channels : (y+1)*w*channels]
		if channels == 4 {
			copy(d, s)
			continue
		}
		for x := 0; x < w; x++ {
			copy(d[x*channels:x*channels+channels], s[x*4:x*4+channels])
		}
	}
	return m
}

// ToMatrix copies the stored pixels of img into a new matrix.
// Opaque images give 3 channels, others 4. The orientation tag is ignored.
func ToMatrix(img *Image) (*Matrix, error) {
	pix, err := pixels(img, "ToMatrix")
	if err != nil {
		return nil, err
	}
	channels := 4
	if opaque(pix) {
		channels = 3
	}
	return pack(imaging.Clone(pix), channels), nil
}

// ToMatrixNoAlpha is like ToMatrix but always returns 3 channels.
func ToMatrixNoAlpha(img *Image) (*Matrix, error) {
	pix, err := pixels(img, "ToMatrixNoAlpha")
	if err != nil {
		return nil, err
	}
	return pack(imaging.Clone(pix), 3), nil
}

// ToGrayscaleMatrix returns a single channel luminance matrix of img.
func ToGrayscaleMatrix(img *Image) (*Matrix, error) {
	pix, err := pixels(img, "ToGrayscaleMatrix")
	if err != nil {
		return nil, err
	}
	return pack(imaging.Grayscale(pix), 1), nil
}

// ToImage copies m into a new image tagged Up.
// Single channel matrices give *image.Gray, others *image.NRGBA.
func ToImage(m *Matrix) (*Image, error) {
	if err := m.validate("ToImage"); err != nil {
		return nil, err
	}
	rect := image.Rect(0, 0, m.Cols, m.Rows)
	switch m.Channels {
	case 1:
		dst := image.NewGray(rect)
		copy(dst.Pix, m.Pix)
		return New(dst, Up), nil
	case 3:
		dst := image.NewNRGBA(rect)
		for i, j := 0, 0; i < len(m.Pix); i, j = i+3, j+4 {
			d := dst.Pix[j : j+4 : j+4]
			d[0] = m.Pix[i]
			d[1] = m.Pix[i+1]
			d[2] = m.Pix[i+2]
			d[3] = 0xff
		}
		return New(dst, Up), nil
	default:
		dst := image.NewNRGBA(rect)
		copy(dst.Pix, m.Pix)
		return New(dst, Up), nil
	}
}
