package render

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ErrUnknownFormat is returned for image formats other than png, bmp and
// tiff.
var ErrUnknownFormat = errors.New("render: unknown image format")

// Formats lists the supported output formats.
var Formats = []string{"png", "bmp", "tiff"}

// ParseFormat normalizes an image format name.
func ParseFormat(format string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(format))
	switch f {
	case "png", "bmp", "tiff":
		return f, nil
	case "tif":
		return "tiff", nil
	}
	return "", fmt.Errorf(
		"%w '%s', must be one of [%s]",
		ErrUnknownFormat, format, strings.Join(Formats, " | "),
	)
}

// FormatExt returns the file extension, including the dot, for a format.
func FormatExt(format string) (string, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return "", err
	}
	return "." + f, nil
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, format string) error {
	f, err := ParseFormat(format)
	if err != nil {
		return err
	}

	switch f {
	case "png":
		return png.Encode(w, img)
	case "bmp":
		return bmp.Encode(w, img)
	default:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	}
}
