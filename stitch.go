package hdrkit

import (
	"errors"
	"time"
)

// StitchStatus is the result code of a stitching attempt.
// Values match OpenCV's Stitcher::Status.
type StitchStatus int

// StitchFailed is reported together with an error when the inputs could not be
// converted or the engine could not run.
const StitchFailed StitchStatus = -1

// Stitch results.
const (
	StitchOK StitchStatus = iota
	StitchNeedMoreImages
	StitchHomographyFailure
	StitchCameraAdjustmentFailure
)

var stitchStatusNames = [...]string{
	StitchOK:                      "ok",
	StitchNeedMoreImages:          "need more images",
	StitchHomographyFailure:       "homography estimation failed",
	StitchCameraAdjustmentFailure: "camera parameters adjustment failed",
}

func (s StitchStatus) String() string {
	if s == StitchFailed {
		return "failed"
	}
	if s < StitchOK || int(s) >= len(stitchStatusNames) {
		return "unknown"
	}
	return stitchStatusNames[s]
}

// Err returns nil for StitchOK and an error describing s otherwise.
func (s StitchStatus) Err() error {
	if s == StitchOK {
		return nil
	}
	return errors.New("hdrkit: stitch failed: " + s.String())
}

// StitchMode selects the stitching pipeline.
type StitchMode int

const (
	// StitchPanorama creates photo panoramas, expecting images taken under a
	// perspective transformation (a rotating camera).
	StitchPanorama StitchMode = iota
	// StitchScans composes scans, expecting images under an affine transformation.
	StitchScans
)

func (m StitchMode) String() string {
	if m == StitchScans {
		return "scans"
	}
	return "panorama"
}

// Stitch combines overlapping images into a panorama.
//
// A non-OK status means no panorama could be produced: the returned image is nil
// and the error is nil. An error is returned only when an input cannot be converted
// or the engine could not run; the status is StitchFailed in that case.
// Fewer than two images report StitchNeedMoreImages without calling the engine.
func (p *Processor) Stitch(images []*Image) (*Image, StitchStatus, error) {
	if len(images) < 2 {
		p.logger().Warn().Int("images", len(images)).Msg("not enough images to stitch")
		p.metrics.countStatus(StitchNeedMoreImages)
		return nil, StitchNeedMoreImages, nil
	}

	mats, err := p.prepare(images, false)
	if err != nil {
		return nil, StitchFailed, err
	}

	start := time.Now()
	out, status, err := p.engine.Stitch(mats, p.opts.StitchMode)
	p.metrics.observe("stitch", start, err)
	if err != nil {
		p.logger().Error().Err(err).Msg("stitch engine failed")
		return nil, StitchFailed, err
	}
	p.metrics.countStatus(status)
	if status != StitchOK {
		p.logger().Warn().
			Int("images", len(mats)).
			Int("code", int(status)).
			Str("status", status.String()).
			Msg("can't stitch images")
		return nil, status, nil
	}
	p.logger().Debug().
		Dur("elapsed", time.Since(start)).
		Int("width", out.Cols).
		Int("height", out.Rows).
		Msg("stitched panorama")

	pano, err := ToImage(out)
	if err != nil {
		return nil, StitchFailed, err
	}
	return pano, StitchOK, nil
}
