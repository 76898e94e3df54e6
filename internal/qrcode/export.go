package qrcode

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/makiuchi-d/gozxing"
	zxingqr "github.com/makiuchi-d/gozxing/qrcode"
)

// PNG encodes the artifact image.
func (a *Artifact) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, a.Image); err != nil {
		return nil, fmt.Errorf("encoding png: %w", err)
	}
	return buf.Bytes(), nil
}

// EnsurePNGExt appends ".png" when path has no extension.
func EnsurePNGExt(path string) string {
	if filepath.Ext(path) == "" {
		return path + ".png"
	}
	return path
}

// SavePNG writes img to path through a temporary file in the same directory
// followed by a rename, so a failed write never leaves a truncated file at
// path. It returns the path actually written.
func SavePNG(path string, img image.Image) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.New("save path is empty")
	}
	path = EnsurePNGExt(path)

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".link2qr-*.png")
	if err != nil {
		return "", fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	if err := png.Encode(tmp, img); err != nil {
		cleanup()
		return "", fmt.Errorf("writing png: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return "", fmt.Errorf("syncing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("closing %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("setting permissions on %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("moving png into place at %s: %w", path, err)
	}

	return path, nil
}

// ScanFile opens an image file and decodes the QR code in it.
func ScanFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening image file: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return "", fmt.Errorf("decoding image: %w", err)
	}

	return Decode(img)
}

// Decode reads the payload of the QR code in img.
func Decode(img image.Image) (string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("creating bitmap: %w", err)
	}

	reader := zxingqr.NewQRCodeReader()
	result, err := reader.Decode(bmp, nil)
	if err != nil {
		// Generated images are axis-aligned and unrotated; the pure-barcode
		// path copes with quiet zones below the recommended four modules.
		hints := map[gozxing.DecodeHintType]interface{}{
			gozxing.DecodeHintType_PURE_BARCODE: true,
		}
		var pureErr error
		result, pureErr = reader.Decode(bmp, hints)
		if pureErr != nil {
			return "", fmt.Errorf("no QR code found in image: %w", errors.Join(err, pureErr))
		}
	}

	return result.GetText(), nil
}

// SuggestFilename derives a file name from the host of a URL, falling back
// to "qrcode.png".
func SuggestFilename(text string) string {
	const fallback = "qrcode.png"

	text = strings.TrimSpace(text)
	if text == "" {
		return fallback
	}
	if !strings.Contains(text, "://") {
		text = "https://" + text
	}

	u, err := url.Parse(text)
	if err != nil || u.Hostname() == "" {
		return fallback
	}

	var b strings.Builder
	for _, r := range strings.ToLower(u.Hostname()) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	name := strings.Trim(b.String(), "._")
	if name == "" {
		return fallback
	}
	return name + ".png"
}
