package scan

import (
	"errors"
	"image"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder
	_ "golang.org/x/image/webp" // WebP decoder

	apperrors "github.com/GriffinCanCode/phash/pkg/errors"
)

// Decode reads and decodes the image at path.
func Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.Wrapf(err, apperrors.CodeNotFound, "open %s", path)
		}
		return nil, apperrors.Wrapf(err, apperrors.CodeInternal, "open %s", path)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.CodeInvalidImage, "decode %s", path)
	}
	return img, nil
}

// Walk returns every file under root whose extension is in exts, sorted.
// Extensions are matched case-insensitively, with or without a leading dot.
func Walk(root string, exts []string) ([]string, error) {
	want := make(map[string]bool, len(exts))
	for _, e := range exts {
		want[strings.TrimPrefix(strings.ToLower(e), ".")] = true
	}

	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
		if want[ext] {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.Wrapf(err, apperrors.CodeNotFound, "walk %s", root)
		}
		return nil, apperrors.Wrapf(err, apperrors.CodeInternal, "walk %s", root)
	}
	slices.Sort(paths)
	return paths, nil
}
