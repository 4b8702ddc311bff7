package hdrkit

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"
)

func TestMatrixRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		alpha    bool
		channels int
	}{
		{false, 3},
		{true, 4},
	} {
		src := sample(7, 5, tc.alpha)
		m, err := ToMatrix(New(src, Up))
		if err != nil {
			t.Fatal(err)
		}
		if m.Channels != tc.channels || m.Rows != 5 || m.Cols != 7 {
			t.Fatalf("expected 5x7x%d matrix; got %dx%dx%d", tc.channels, m.Rows, m.Cols, m.Channels)
		}
		img, err := ToImage(m)
		if err != nil {
			t.Fatal(err)
		}
		if img.Orientation() != Up {
			t.Errorf("expected up orientation; got %s", img.Orientation())
		}
		compare(t, src, img.Pixels())
	}
}

func TestMatrixRowMajor(t *testing.T) {
	src := sample(3, 2, false)
	m, err := ToMatrixNoAlpha(New(src, Up))
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			c := src.NRGBAAt(x, y)
			i := (y*m.Cols + x) * 3
			if got := [3]uint8(m.Pix[i : i+3]); got != [3]uint8{c.R, c.G, c.B} {
				t.Errorf("(%d,%d): expected %v; got %v", x, y, c, got)
			}
		}
	}
}

func TestMatrixNoAlpha(t *testing.T) {
	m, err := ToMatrixNoAlpha(New(sample(4, 4, true), Up))
	if err != nil {
		t.Fatal(err)
	}
	if m.Channels != 3 {
		t.Errorf("expected 3 channels; got %d", m.Channels)
	}
	if len(m.Pix) != 4*4*3 {
		t.Errorf("expected %d samples; got %d", 4*4*3, len(m.Pix))
	}
}

func TestMatrixSubImage(t *testing.T) {
	src := sample(8, 8, false)
	sub := src.SubImage(image.Rect(2, 3, 6, 5))
	m, err := ToMatrix(New(sub, Up))
	if err != nil {
		t.Fatal(err)
	}
	img, err := ToImage(m)
	if err != nil {
		t.Fatal(err)
	}
	compare(t, sub, img.Pixels())
}

func TestGrayscaleMatrix(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	src.SetNRGBA(0, 0, color.NRGBA{0, 0, 0, 0xff})
	src.SetNRGBA(1, 0, color.NRGBA{100, 100, 100, 0xff})
	src.SetNRGBA(2, 0, color.NRGBA{0xff, 0xff, 0xff, 0xff})

	m, err := ToGrayscaleMatrix(New(src, Up))
	if err != nil {
		t.Fatal(err)
	}
	if m.Channels != 1 {
		t.Fatalf("expected 1 channel; got %d", m.Channels)
	}
	if want := []uint8{0, 100, 0xff}; string(m.Pix) != string(want) {
		t.Errorf("expected %v; got %v", want, m.Pix)
	}

	img, err := ToImage(m)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := img.Pixels().(*image.Gray); !ok {
		t.Fatal("img is not gray")
	}
}

func TestMatrixNoAliasing(t *testing.T) {
	src := sample(2, 2, false)
	m, err := ToMatrix(New(src, Up))
	if err != nil {
		t.Fatal(err)
	}
	m.Pix[0] = ^m.Pix[0]
	if m.Pix[0] == src.Pix[0] {
		t.Error("matrix shares the image buffer")
	}

	img, err := ToImage(m)
	if err != nil {
		t.Fatal(err)
	}
	before := img.Pixels().(*image.NRGBA).Pix[0]
	m.Pix[0] = ^m.Pix[0]
	if img.Pixels().(*image.NRGBA).Pix[0] != before {
		t.Error("image shares the matrix buffer")
	}
}

func TestConversionError(t *testing.T) {
	for i, img := range []*Image{
		nil,
		New(nil, Up),
		New(image.NewNRGBA(image.Rectangle{}), Up),
		New(image.NewNRGBA(image.Rect(0, 0, 3, 0)), Up),
	} {
		for _, fn := range []func(*Image) (*Matrix, error){ToMatrix, ToMatrixNoAlpha, ToGrayscaleMatrix} {
			var e *ConversionError
			if _, err := fn(img); !errors.As(err, &e) {
				t.Errorf("#%d want conversion error, got %v", i, err)
			}
		}
	}

	for i, m := range []*Matrix{
		nil,
		{},
		{Rows: 0, Cols: 3, Channels: 3, Pix: []uint8{1, 2, 3}},
		{Rows: 1, Cols: 1, Channels: 2, Pix: []uint8{1, 2}},
		{Rows: 2, Cols: 2, Channels: 3, Pix: make([]uint8, 11)},
		{Rows: -2, Cols: -2, Channels: 1, Pix: make([]uint8, 4)},
		{Rows: 7, Cols: math.MaxInt/7 + 1, Channels: 1, Pix: []uint8{42}},
		{Rows: 2, Cols: math.MaxInt / 4, Channels: 3, Pix: []uint8{42}},
	} {
		var e *ConversionError
		if _, err := ToImage(m); !errors.As(err, &e) {
			t.Errorf("#%d want conversion error, got %v", i, err)
		}
	}
}

func TestNewMatrixOverflow(t *testing.T) {
	for i, dims := range [][3]int{{-1, 2, 3}, {7, math.MaxInt/7 + 1, 1}, {2, math.MaxInt / 4, 3}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("#%d want panic", i)
				}
			}()
			NewMatrix(dims[0], dims[1], dims[2])
		}()
	}
	if m := NewMatrix(2, 3, 4); len(m.Pix) != 24 {
		t.Errorf("expected 24 samples; got %d", len(m.Pix))
	}
}

func TestQuantize(t *testing.T) {
	m := &FloatMatrix{Rows: 1, Cols: 2, Channels: 3, Pix: []float32{0, 1, 0.5, 1.5, -0.2, 200.0 / 255}}
	q := m.Quantize()
	if want := []uint8{0, 255, 128, 255, 0, 200}; string(q.Pix) != string(want) {
		t.Errorf("expected %v; got %v", want, q.Pix)
	}
	if q.Rows != 1 || q.Cols != 2 || q.Channels != 3 {
		t.Errorf("wrong shape: %dx%dx%d", q.Rows, q.Cols, q.Channels)
	}
}
