package plan

import (
	"fmt"
	"image"
	"strings"

	"github.com/otiai10/gosseract/v2"
	"gocv.io/x/gocv"

	"terranova/pkg/geometry"
)

// LabelChars is the character set of printed lot labels. Uppercase
// only, digits and the dash of numbers like L-104.
const LabelChars = "0123456789LP-"

// Labeler reads printed lot numbers off a site plan with Tesseract.
type Labeler struct {
	client *gosseract.Client
}

// NewLabeler creates a label reader.
func NewLabeler(lang string) (*Labeler, error) {
	client := gosseract.NewClient()

	if lang == "" {
		lang = "spa"
	}
	if err := client.SetLanguage(lang); err != nil {
		client.Close()
		return nil, fmt.Errorf("plan: set OCR language: %w", err)
	}

	// Lot numbers are not dictionary words, disable word correction.
	_ = client.SetVariable("load_system_dawg", "false")
	_ = client.SetVariable("load_freq_dawg", "false")

	return &Labeler{client: client}, nil
}

// Close releases OCR resources.
func (l *Labeler) Close() error {
	if l.client != nil {
		return l.client.Close()
	}
	return nil
}

// ReadLabel runs OCR over the interior of one suggested boundary and
// returns a cleaned-up label, or "" when nothing legible was found.
func (l *Labeler) ReadLabel(img gocv.Mat, boundary []geometry.Point2D) (string, error) {
	if img.Empty() {
		return "", fmt.Errorf("plan: empty image")
	}
	if len(boundary) < 3 {
		return "", fmt.Errorf("plan: boundary too short")
	}

	box := geometry.BoundingBox(boundary)
	w := float64(img.Cols())
	h := float64(img.Rows())

	x0 := int(box.X / 100 * w)
	y0 := int(box.Y / 100 * h)
	x1 := int((box.X + box.Width) / 100 * w)
	y1 := int((box.Y + box.Height) / 100 * h)

	x0 = max(0, x0)
	y0 = max(0, y0)
	x1 = min(x1, img.Cols())
	y1 = min(y1, img.Rows())
	if x1-x0 <= 1 || y1-y0 <= 1 {
		return "", fmt.Errorf("plan: degenerate label region")
	}

	region := img.Region(image.Rect(x0, y0, x1, y1))
	defer region.Close()

	buf, err := gocv.IMEncode(gocv.PNGFileExt, region)
	if err != nil {
		return "", fmt.Errorf("plan: encode region: %w", err)
	}
	defer buf.Close()

	if err := l.client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		return "", fmt.Errorf("plan: set PSM: %w", err)
	}
	if err := l.client.SetWhitelist(LabelChars); err != nil {
		return "", fmt.Errorf("plan: set whitelist: %w", err)
	}
	if err := l.client.SetImageFromBytes(buf.GetBytes()); err != nil {
		return "", fmt.Errorf("plan: set image: %w", err)
	}

	text, err := l.client.Text()
	if err != nil {
		return "", fmt.Errorf("plan: OCR failed: %w", err)
	}

	return CleanLabel(text), nil
}

// CleanLabel normalizes raw OCR output into a lot label candidate.
func CleanLabel(raw string) string {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	raw = strings.Join(strings.Fields(raw), "")

	var b strings.Builder
	for _, r := range raw {
		if strings.ContainsRune(LabelChars, r) {
			b.WriteRune(r)
		}
	}

	label := strings.Trim(b.String(), "-")
	if len(label) < 2 {
		return ""
	}
	return label
}
