package hdrkit

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// Mertens weights used by OpenCV when none are given.
const (
	defaultContrastWeight   = 1
	defaultSaturationWeight = 1
	defaultExposureWeight   = 0
)

// FusionOption configures exposure fusion.
type FusionOption struct {
	ContrastWeight   float32
	SaturationWeight float32
	ExposureWeight   float32
	// Align runs median threshold bitmap alignment on the exposures before fusing.
	Align bool
}

// Options represents options that can be used to configure a Processor.
type Options struct {
	// AutoOrientation transforms every input to the Up orientation before processing.
	AutoOrientation bool
	Resize          *ResizeOption
	Fusion          FusionOption
	StitchMode      StitchMode
	Logger          zerolog.Logger
	// Registerer receives the processor metrics when set.
	Registerer prometheus.Registerer
}

// NewOptions creates a new option with default setting.
func NewOptions() Options {
	return Options{
		AutoOrientation: true,
		Fusion: FusionOption{
			ContrastWeight:   defaultContrastWeight,
			SaturationWeight: defaultSaturationWeight,
			ExposureWeight:   defaultExposureWeight,
		},
		StitchMode: StitchPanorama,
		Logger:     zerolog.Nop(),
	}
}

// SetAutoOrientation sets the value for the AutoOrientation field.
func (opts *Options) SetAutoOrientation(enabled bool) *Options {
	opts.AutoOrientation = enabled
	return opts
}

// SetResize sets the value for the Resize field.
func (opts *Options) SetResize(width, height int, percent float64) *Options {
	opts.Resize = &ResizeOption{Width: width, Height: height, Percent: percent}
	return opts
}

// SetMertens sets the Mertens contrast, saturation and well-exposedness weights.
func (opts *Options) SetMertens(contrast, saturation, exposure float32) *Options {
	opts.Fusion.ContrastWeight = contrast
	opts.Fusion.SaturationWeight = saturation
	opts.Fusion.ExposureWeight = exposure
	return opts
}

// SetAlign sets whether exposures are aligned before fusion.
func (opts *Options) SetAlign(align bool) *Options {
	opts.Fusion.Align = align
	return opts
}

// SetStitchMode sets the value for the StitchMode field.
func (opts *Options) SetStitchMode(mode StitchMode) *Options {
	opts.StitchMode = mode
	return opts
}

// SetLogger sets the value for the Logger field.
func (opts *Options) SetLogger(logger zerolog.Logger) *Options {
	opts.Logger = logger
	return opts
}

// SetRegisterer sets the value for the Registerer field.
func (opts *Options) SetRegisterer(reg prometheus.Registerer) *Options {
	opts.Registerer = reg
	return opts
}
