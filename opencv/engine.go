// Package opencv runs hdrkit processing on OpenCV through gocv.
package opencv

import (
	"github.com/pkg/errors"
	"github.com/sunshineplan/hdrkit"
	"gocv.io/x/gocv"
)

var _ hdrkit.Engine = (*Engine)(nil)

// Engine implements hdrkit.Engine with OpenCV's MergeMertens, AlignMTB and Stitcher.
// OpenCV objects are created and released within each call.
type Engine struct{}

// NewEngine returns an OpenCV engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Fuse implements hdrkit.Engine.
func (*Engine) Fuse(src []*hdrkit.Matrix, option hdrkit.FusionOption) (*hdrkit.FloatMatrix, error) {
	if len(src) == 0 {
		return nil, errors.New("no input images")
	}

	mats, err := toMats(src)
	if err != nil {
		return nil, err
	}
	defer closeAll(mats)

	inputs := mats
	if option.Align {
		align := gocv.NewAlignMTB()
		defer align.Close()

		var aligned []gocv.Mat
		align.Process(mats, &aligned)
		defer closeAll(aligned)
		if len(aligned) != len(mats) {
			return nil, errors.Errorf("alignment returned %d images, want %d", len(aligned), len(mats))
		}
		inputs = aligned
	}

	merge := gocv.NewMergeMertensWithParams(option.ContrastWeight, option.SaturationWeight, option.ExposureWeight)
	defer merge.Close()

	fusion := gocv.NewMat()
	defer fusion.Close()
	merge.Process(inputs, &fusion)
	if fusion.Empty() {
		return nil, errors.New("merge mertens produced no output")
	}

	return fromFloatMat(fusion)
}

// Stitch implements hdrkit.Engine.
func (*Engine) Stitch(src []*hdrkit.Matrix, mode hdrkit.StitchMode) (*hdrkit.Matrix, hdrkit.StitchStatus, error) {
	mats, err := toMats(src)
	if err != nil {
		return nil, hdrkit.StitchFailed, err
	}
	defer closeAll(mats)

	stitcher := gocv.NewStitcher(gocv.StitcherMode(mode))
	defer stitcher.Close()

	pano := gocv.NewMat()
	defer pano.Close()
	if status := hdrkit.StitchStatus(stitcher.Stitch(mats, &pano)); status != hdrkit.StitchOK {
		return nil, status, nil
	}
	if pano.Empty() {
		return nil, hdrkit.StitchFailed, errors.New("stitcher produced no output")
	}

	m, err := fromMat(pano)
	if err != nil {
		return nil, hdrkit.StitchFailed, err
	}
	return m, hdrkit.StitchOK, nil
}
