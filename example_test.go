package hdrkit_test

import (
	"fmt"
	"image"
	"log"

	"github.com/sunshineplan/hdrkit"
)

func Example() {
	// A 4x2 bitmap stored sideways: it must be rotated a quarter turn clockwise
	// to be displayed upright.
	src := hdrkit.New(image.NewNRGBA(image.Rect(0, 0, 4, 2)), hdrkit.Right)
	fmt.Println(src.Bounds().Size(), src.Size())

	// Rewrite the pixels so that the image displays the same with the up tag.
	up := hdrkit.NormalizeUp(src)
	fmt.Println(up.Bounds().Size(), up.Orientation())

	// Copy the pixels into a 3-channel matrix and back.
	m, err := hdrkit.ToMatrixNoAlpha(up)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(m.Rows, m.Cols, m.Channels)
	if _, err := hdrkit.ToImage(m); err != nil {
		log.Fatal(err)
	}
	// Output:
	// (4,2) (2,4)
	// (2,4) up
	// 4 2 3
}
