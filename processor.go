package hdrkit

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// DefaultExposures is the exposure bracket, in EV, captured by default.
// Clone it before modifying.
var DefaultExposures = []float64{-3, 0, 3}

// Engine runs the image-processing algorithms on pixel matrices.
// Inputs are 3-channel matrices; implementations must not retain them.
type Engine interface {
	// Fuse merges the exposure sequence into one image with values in [0, 1].
	Fuse(src []*Matrix, option FusionOption) (*FloatMatrix, error)
	// Stitch combines overlapping images into a panorama. The result is only
	// meaningful when the status is StitchOK.
	Stitch(src []*Matrix, mode StitchMode) (*Matrix, StitchStatus, error)
}

// Processor marshals images to an Engine and back.
// It holds no per-call state and is safe for concurrent use.
type Processor struct {
	engine  Engine
	opts    Options
	metrics *metrics
}

// NewProcessor creates a processor running on engine with the given options.
func NewProcessor(engine Engine, opts Options) (*Processor, error) {
	if engine == nil {
		return nil, errors.New("hdrkit: nil engine")
	}
	p := &Processor{engine: engine, opts: opts}
	if opts.Registerer != nil {
		m, err := newMetrics(opts.Registerer)
		if err != nil {
			return nil, err
		}
		p.metrics = m
	}
	return p, nil
}

func (p *Processor) logger() *zerolog.Logger {
	return &p.opts.Logger
}

// prepare normalizes, resizes and converts the inputs to 3-channel matrices.
// With sameSize set, all inputs must share the pixel dimensions of the first one.
func (p *Processor) prepare(images []*Image, sameSize bool) ([]*Matrix, error) {
	prepared := make([]*Image, len(images))
	for i, img := range images {
		if img.Pixels() == nil {
			return nil, &ConversionError{Op: "prepare", Msg: fmt.Sprintf("image %d has no pixel buffer", i)}
		}
		if p.opts.AutoOrientation && img.Orientation() != Up {
			p.logger().Debug().Int("index", i).Stringer("orientation", img.Orientation()).Msg("normalize orientation")
			img = NormalizeUp(img)
		}
		if p.opts.Resize != nil {
			img = p.opts.Resize.do(img)
		}
		prepared[i] = img
	}

	if sameSize {
		size := prepared[0].Bounds().Size()
		for i, img := range prepared[1:] {
			if s := img.Bounds().Size(); s != size {
				return nil, &PreconditionError{
					Msg: fmt.Sprintf("image %d has size %v, want %v", i+1, s, size),
				}
			}
		}
	}

	mats := make([]*Matrix, len(prepared))
	for i, img := range prepared {
		m, err := ToMatrixNoAlpha(img)
		if err != nil {
			return nil, err
		}
		mats[i] = m
	}
	return mats, nil
}

// Fuse merges an exposure sequence into a single well-exposed image.
//
// images and exposures are matched by index and must have the same non-zero
// length; all images must share the same pixel dimensions. Those preconditions are
// checked before the engine runs and reported as *PreconditionError.
//
// Mertens fusion does not use exposure values: they are required for the
// sequence to be well formed but do not change the result.
func (p *Processor) Fuse(images []*Image, exposures []float64) (*Image, error) {
	if len(images) == 0 {
		return nil, &PreconditionError{Msg: "no images"}
	}
	if len(images) != len(exposures) {
		return nil, &PreconditionError{
			Msg: fmt.Sprintf("%d images but %d exposure values", len(images), len(exposures)),
		}
	}

	mats, err := p.prepare(images, true)
	if err != nil {
		return nil, err
	}
	p.logger().Debug().
		Int("images", len(mats)).
		Floats64("exposures", exposures).
		Int("width", mats[0].Cols).
		Int("height", mats[0].Rows).
		Msg("fuse exposures")

	start := time.Now()
	out, err := p.engine.Fuse(mats, p.opts.Fusion)
	if err == nil && out.Empty() {
		err = errors.New("empty result")
	}
	p.metrics.observe("fuse", start, err)
	if err != nil {
		p.logger().Error().Err(err).Msg("exposure fusion failed")
		return nil, &FusionError{Err: err}
	}
	p.logger().Debug().Dur("elapsed", time.Since(start)).Msg("fused exposures")

	return ToImage(out.Quantize())
}
