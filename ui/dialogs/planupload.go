// Package dialogs contains the modal dialogs of the main window.
package dialogs

import (
	"io"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"github.com/rs/zerolog/log"
)

// ShowPlanUpload opens a file picker for a site-plan image and hands
// the raw bytes plus MIME type to the callback.
func ShowPlanUpload(win fyne.Window, cb func(data []byte, mime string)) {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		data, err := io.ReadAll(reader)
		if err != nil {
			log.Warn().Err(err).Msg("plan upload read failed")
			dialog.ShowError(err, win)
			return
		}

		cb(data, mimeForExt(reader.URI().Path()))
	}, win)

	fd.SetFilter(storage.NewExtensionFileFilter([]string{
		".png", ".jpg", ".jpeg", ".bmp", ".tiff", ".tif", ".webp",
	}))
	fd.Show()
}

func mimeForExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".bmp":
		return "image/bmp"
	case ".tiff", ".tif":
		return "image/tiff"
	case ".webp":
		return "image/webp"
	default:
		return "image/png"
	}
}
