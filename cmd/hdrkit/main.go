package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sunshineplan/hdrkit"
	"github.com/sunshineplan/hdrkit/opencv"
	"github.com/vharitonsky/iniflags"
	"golang.org/x/sync/errgroup"
)

var self string
var mode string
var exposures string
var dst string
var format = hdrkit.JPEG
var quality int
var width, height int
var percent float64
var align bool
var scans bool
var noOrientation bool
var worker int
var debug bool

func init() {
	var err error
	self, err = os.Executable()
	if err != nil {
		log.Fatalf("Failed to get self path: %v", err)
	}
}

const usageText = `
  --mode
		hdr or stitch (default: hdr)
  --exposures
		comma separated exposure values in EV, one per image (default: -3,0,3)
  --dst
		destination directory (default: output)
  --format
		output format (jpg, jpeg, png, gif, tif, tiff and bmp are supported, default: jpg)
  --quality
		set jpeg quality (range 1-100, default: 75)
  --width
		resize width, if one of width or height is 0, the image aspect ratio is preserved.
  --height
		resize height, if one of width or height is 0, the image aspect ratio is preserved.
  --percent
		resize percent, only when both of width and height are 0.
  --align
		align exposures before fusion
  --scans
		stitch in scans mode (affine model) instead of panorama mode
  --no-orientation
		ignore EXIF orientation of the inputs
  --worker
		number of images decoded concurrently (default: 5)
  --debug
		log at debug level`

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s: [options] image...\n", os.Args[0])
	fmt.Println(usageText)
}

func parseExposures(s string) ([]float64, error) {
	if s == "" {
		return slices.Clone(hdrkit.DefaultExposures), nil
	}
	var res []float64
	for _, i := range strings.Split(s, ",") {
		f, err := strconv.ParseFloat(strings.TrimSpace(i), 64)
		if err != nil {
			return nil, fmt.Errorf("bad exposure value %q: %w", i, err)
		}
		res = append(res, f)
	}
	return res, nil
}

func open(files []string) ([]*hdrkit.Image, error) {
	images := make([]*hdrkit.Image, len(files))
	var g errgroup.Group
	g.SetLimit(worker)
	for i, file := range files {
		g.Go(func() error {
			img, err := hdrkit.Open(file, hdrkit.AutoOrientation(!noOrientation))
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			images[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return images, nil
}

func registerFlags(fs *flag.FlagSet) {
	fs.StringVar(&mode, "mode", "hdr", "")
	fs.StringVar(&exposures, "exposures", "", "")
	fs.StringVar(&dst, "dst", "output", "")
	fs.TextVar(&format, "format", hdrkit.JPEG, "")
	fs.IntVar(&quality, "quality", 75, "")
	fs.IntVar(&width, "width", 0, "")
	fs.IntVar(&height, "height", 0, "")
	fs.Float64Var(&percent, "percent", 0, "")
	fs.BoolVar(&align, "align", false, "")
	fs.BoolVar(&scans, "scans", false, "")
	fs.BoolVar(&noOrientation, "no-orientation", false, "")
	fs.IntVar(&worker, "worker", 5, "")
	fs.BoolVar(&debug, "debug", false, "")
}

func main() {
	flag.Usage = usage
	registerFlags(flag.CommandLine)
	iniflags.SetConfigFile(filepath.Join(filepath.Dir(self), "config.ini"))
	iniflags.SetAllowMissingConfigFile(true)
	iniflags.Parse()

	f, err := os.OpenFile(filepath.Join(filepath.Dir(self), "hdrkit.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer f.Close()

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(io.MultiWriter(f, zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.DateTime})).
		Level(level).With().Timestamp().Logger()

	files := flag.Args()
	if len(files) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	opts := hdrkit.NewOptions()
	opts.SetAutoOrientation(!noOrientation).SetAlign(align).SetLogger(logger)
	if width != 0 || height != 0 || percent != 0 {
		opts.SetResize(width, height, percent)
	}
	if scans {
		opts.SetStitchMode(hdrkit.StitchScans)
	}
	p, err := opencv.NewProcessor(opts)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create processor")
	}

	start := time.Now()
	images, err := open(files)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open image")
	}
	logger.Info().Int("images", len(images)).Dur("elapsed", time.Since(start)).Msg("Decoded")

	var res *hdrkit.Image
	switch mode {
	case "hdr":
		ev, err := parseExposures(exposures)
		if err != nil {
			logger.Fatal().Err(err).Msg("Invalid exposures")
		}
		if res, err = p.Fuse(images, ev); err != nil {
			logger.Fatal().Err(err).Msg("Failed to fuse exposures")
		}
	case "stitch":
		var status hdrkit.StitchStatus
		res, status, err = p.Stitch(images)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to stitch images")
		}
		if status != hdrkit.StitchOK {
			logger.Fatal().Stringer("status", status).Msg("Stitching failed")
		}
	default:
		logger.Fatal().Str("mode", mode).Msg("Unknown mode")
	}

	if err := os.MkdirAll(dst, 0755); err != nil {
		logger.Fatal().Err(err).Send()
	}
	output := hdrkit.FormatOption{Format: format, EncodeOption: []hdrkit.EncodeOption{hdrkit.Quality(quality)}}
	path := filepath.Join(dst, mode+"."+output.Ext())
	if err := hdrkit.Save(path, res, &output); err != nil {
		logger.Fatal().Err(err).Msg("Failed to save result")
	}
	logger.Info().Str("output", path).Dur("elapsed", time.Since(start)).Msg("Job done")
}
