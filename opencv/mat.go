package opencv

import (
	"github.com/pkg/errors"
	"github.com/sunshineplan/hdrkit"
	"gocv.io/x/gocv"
)

// toMat converts an RGB matrix to a BGR Mat.
func toMat(m *hdrkit.Matrix) (gocv.Mat, error) {
	if err := m.Validate(); err != nil {
		return gocv.Mat{}, err
	}
	if m.Channels != 3 {
		return gocv.Mat{}, errors.Errorf("unsupported channel count: %d", m.Channels)
	}

	rgb, err := gocv.NewMatFromBytes(m.Rows, m.Cols, gocv.MatTypeCV8UC3, m.Pix)
	if err != nil {
		return gocv.Mat{}, errors.Wrap(err, "Mat creation failed")
	}
	defer rgb.Close()

	bgr := gocv.NewMat()
	gocv.CvtColor(rgb, &bgr, gocv.ColorRGBToBGR)
	if bgr.Empty() {
		bgr.Close()
		return gocv.Mat{}, errors.New("color conversion failed")
	}
	return bgr, nil
}

func toMats(src []*hdrkit.Matrix) ([]gocv.Mat, error) {
	mats := make([]gocv.Mat, 0, len(src))
	for i, m := range src {
		mat, err := toMat(m)
		if err != nil {
			closeAll(mats)
			return nil, errors.Wrapf(err, "image %d", i)
		}
		mats = append(mats, mat)
	}
	return mats, nil
}

// fromMat converts an 8-bit BGR Mat to an RGB matrix.
func fromMat(bgr gocv.Mat) (*hdrkit.Matrix, error) {
	if bgr.Type() != gocv.MatTypeCV8UC3 {
		return nil, errors.Errorf("unsupported Mat type: %v", bgr.Type())
	}

	rgb := gocv.NewMat()
	defer rgb.Close()
	gocv.CvtColor(bgr, &rgb, gocv.ColorBGRToRGB)

	return &hdrkit.Matrix{
		Rows:     rgb.Rows(),
		Cols:     rgb.Cols(),
		Channels: rgb.Channels(),
		Pix:      rgb.ToBytes(),
	}, nil
}

// fromFloatMat converts a 32-bit float BGR Mat to an RGB float matrix.
func fromFloatMat(bgr gocv.Mat) (*hdrkit.FloatMatrix, error) {
	if bgr.Type() != gocv.MatTypeCV32FC3 {
		return nil, errors.Errorf("unsupported Mat type: %v", bgr.Type())
	}

	rgb := gocv.NewMat()
	defer rgb.Close()
	gocv.CvtColor(bgr, &rgb, gocv.ColorBGRToRGB)

	data, err := rgb.DataPtrFloat32()
	if err != nil {
		return nil, errors.Wrap(err, "float data access failed")
	}
	pix := make([]float32, len(data))
	copy(pix, data)

	return &hdrkit.FloatMatrix{
		Rows:     rgb.Rows(),
		Cols:     rgb.Cols(),
		Channels: rgb.Channels(),
		Pix:      pix,
	}, nil
}

func closeAll(mats []gocv.Mat) {
	for i := range mats {
		mats[i].Close()
	}
}
