package division

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"strings"

	// Decoders for the common raster formats operators upload.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var errBadDataURL = errors.New("division: malformed data URL")

// EncodePlan wraps raw image bytes into a data URL for the snapshot.
func EncodePlan(data []byte, mime string) string {
	if mime == "" {
		mime = "image/png"
	}
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data))
}

// PlanBytes returns the raw encoded image bytes of a plan data URL,
// for pipelines that decode with OpenCV instead of image.Decode.
func PlanBytes(dataURL string) ([]byte, error) {
	const marker = ";base64,"
	idx := strings.Index(dataURL, marker)
	if !strings.HasPrefix(dataURL, "data:") || idx < 0 {
		return nil, errBadDataURL
	}
	raw, err := base64.StdEncoding.DecodeString(dataURL[idx+len(marker):])
	if err != nil {
		return nil, fmt.Errorf("division: decode base64: %w", err)
	}
	return raw, nil
}

// DecodePlan decodes a data URL back into an image. A decode failure
// leaves the plan unset; callers log and continue.
func DecodePlan(dataURL string) (image.Image, error) {
	const marker = ";base64,"
	idx := strings.Index(dataURL, marker)
	if !strings.HasPrefix(dataURL, "data:") || idx < 0 {
		return nil, errBadDataURL
	}

	raw, err := base64.StdEncoding.DecodeString(dataURL[idx+len(marker):])
	if err != nil {
		return nil, fmt.Errorf("division: decode base64: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("division: decode image: %w", err)
	}
	return img, nil
}
