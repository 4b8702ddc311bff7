package opencv

import "github.com/sunshineplan/hdrkit"

var defaultProcessor, _ = hdrkit.NewProcessor(NewEngine(), hdrkit.NewOptions())

// NewProcessor returns a hdrkit.Processor running on OpenCV with the given options.
func NewProcessor(opts hdrkit.Options) (*hdrkit.Processor, error) {
	return hdrkit.NewProcessor(NewEngine(), opts)
}

// ProcessHDR fuses an exposure sequence with the default options.
func ProcessHDR(images []*hdrkit.Image, exposures []float64) (*hdrkit.Image, error) {
	return defaultProcessor.Fuse(images, exposures)
}

// ProcessStitch stitches images into a panorama with the default options.
// The image is nil unless the status is hdrkit.StitchOK.
func ProcessStitch(images []*hdrkit.Image) (*hdrkit.Image, hdrkit.StitchStatus, error) {
	return defaultProcessor.Stitch(images)
}
