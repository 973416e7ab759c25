// Command planscan runs lot boundary detection on a site-plan image
// and prints the suggestions, optionally with OCR of printed labels.
package main

import (
	"flag"
	"fmt"
	"os"

	"gocv.io/x/gocv"

	"terranova/internal/plan"
	"terranova/pkg/geometry"
)

func main() {
	imagePath := flag.String("image", "", "Path to site-plan image (PNG, JPEG, TIFF, BMP)")
	minArea := flag.Float64("min-area", 400, "Minimum contour area in pixels")
	epsilon := flag.Float64("epsilon", 0.01, "Polygon approximation tolerance (fraction of perimeter)")
	withOCR := flag.Bool("ocr", false, "Read printed lot labels with Tesseract")
	lang := flag.String("lang", "spa", "Tesseract language")
	flag.Parse()

	if *imagePath == "" {
		fmt.Println("Usage: planscan -image <path> [-min-area 400] [-epsilon 0.01] [-ocr]")
		os.Exit(1)
	}

	mat := gocv.IMRead(*imagePath, gocv.IMReadColor)
	if mat.Empty() {
		fmt.Fprintf(os.Stderr, "Failed to read image: %s\n", *imagePath)
		os.Exit(1)
	}
	defer mat.Close()

	fmt.Printf("Loaded image: %dx%d pixels\n", mat.Cols(), mat.Rows())

	opts := plan.DefaultOptions()
	opts.MinLotArea = *minArea
	opts.Epsilon = *epsilon

	suggestions, err := plan.DetectBoundaries(mat, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Detection failed: %v\n", err)
		os.Exit(1)
	}

	var labeler *plan.Labeler
	if *withOCR {
		labeler, err = plan.NewLabeler(*lang)
		if err != nil {
			fmt.Fprintf(os.Stderr, "OCR unavailable: %v\n", err)
		} else {
			defer labeler.Close()
		}
	}

	fmt.Printf("\nDetected %d lot candidates:\n", len(suggestions))
	for i, s := range suggestions {
		boundary := plan.Simplify(s.Boundary, 0.8)
		if boundary == nil {
			fmt.Printf("%3d. discarded (degenerate after cleanup)\n", i+1)
			continue
		}

		area := geometry.PolygonArea(boundary)
		center := geometry.Centroid(boundary)
		fmt.Printf("%3d. %d vertices, area %.1f u², center (%.1f, %.1f)",
			i+1, len(boundary), area, center.X, center.Y)

		if labeler != nil {
			label, err := labeler.ReadLabel(mat, boundary)
			if err == nil && label != "" {
				fmt.Printf(", label %q", label)
			}
		}
		fmt.Println()
	}
}
