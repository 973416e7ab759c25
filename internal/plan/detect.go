// Package plan extracts lot boundary suggestions from scanned site
// plans: contour detection over the drawing plus OCR of printed lot
// labels.
package plan

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"terranova/pkg/geometry"
)

// DetectionOptions configures boundary detection.
type DetectionOptions struct {
	BlurKernel        int     // Gaussian blur kernel size, odd
	CleanupIterations int     // Morphological cleanup strength
	MinLotArea        float64 // Minimum contour area in pixels
	Epsilon           float64 // Polygon approximation tolerance, fraction of perimeter
	MaxVertices       int     // Suggestions with more vertices are discarded
}

// DefaultOptions returns detection options tuned for printed site plans.
func DefaultOptions() DetectionOptions {
	return DetectionOptions{
		BlurKernel:        5,
		CleanupIterations: 2,
		MinLotArea:        400,
		Epsilon:           0.01,
		MaxVertices:       24,
	}
}

// Suggestion is one candidate lot boundary in plan space.
type Suggestion struct {
	Boundary  []geometry.Point2D
	PixelArea float64
	Label     string
}

// DetectBoundaries finds closed lot outlines in a site plan image and
// returns them as plan-space polygons (coordinates in [0,100]).
func DetectBoundaries(img gocv.Mat, opts DetectionOptions) ([]Suggestion, error) {
	if img.Empty() {
		return nil, fmt.Errorf("plan: empty image")
	}

	gray := gocv.NewMat()
	defer gray.Close()
	if img.Channels() > 1 {
		gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)
	} else {
		img.CopyTo(&gray)
	}

	blurred := gocv.NewMat()
	defer blurred.Close()
	k := opts.BlurKernel
	if k%2 == 0 {
		k++
	}
	gocv.GaussianBlur(gray, &blurred, image.Point{k, k}, 0, 0, gocv.BorderDefault)

	// Line work is dark on a light background; invert so lots become
	// filled regions.
	binary := gocv.NewMat()
	defer binary.Close()
	gocv.Threshold(blurred, &binary, 0, 255, gocv.ThresholdBinaryInv|gocv.ThresholdOtsu)

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Point{3, 3})
	defer kernel.Close()
	for i := 0; i < opts.CleanupIterations; i++ {
		gocv.MorphologyEx(binary, &binary, gocv.MorphClose, kernel)
	}

	contours := gocv.FindContours(binary, gocv.RetrievalList, gocv.ChainApproxSimple)
	defer contours.Close()

	w := float64(img.Cols())
	h := float64(img.Rows())

	var out []Suggestion
	for i := 0; i < contours.Size(); i++ {
		contour := contours.At(i)
		area := gocv.ContourArea(contour)
		if area < opts.MinLotArea {
			continue
		}
		// The page border itself shows up as a giant contour.
		if area > 0.9*w*h {
			continue
		}

		perimeter := gocv.ArcLength(contour, true)
		approx := gocv.ApproxPolyDP(contour, opts.Epsilon*perimeter, true)
		if approx.Size() < 3 || approx.Size() > opts.MaxVertices {
			approx.Close()
			continue
		}

		boundary := make([]geometry.Point2D, 0, approx.Size())
		for j := 0; j < approx.Size(); j++ {
			pt := approx.At(j)
			boundary = append(boundary, geometry.Point2D{
				X: float64(pt.X) / w * 100,
				Y: float64(pt.Y) / h * 100,
			})
		}
		approx.Close()

		out = append(out, Suggestion{Boundary: boundary, PixelArea: area})
	}

	return out, nil
}
