package imagecanvas

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

// Format is an image file format Present can write.
type Format uint8

const (
	FormatPNG Format = iota
	FormatBMP
	FormatTIFF
)

func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatBMP:
		return "bmp"
	case FormatTIFF:
		return "tiff"
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

// UnsupportedFormatError reports an output path whose extension does not
// name a known format.
type UnsupportedFormatError struct {
	Path string
}

func (e *UnsupportedFormatError) Error() string {
	return "imagecanvas: unsupported output format: " + e.Path
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, nil
	case ".bmp":
		return FormatBMP, nil
	case ".tif", ".tiff":
		return FormatTIFF, nil
	}
	return 0, &UnsupportedFormatError{Path: path}
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	}
	return fmt.Errorf("imagecanvas: unknown format %v", f)
}

// SaveFile writes img to path, choosing the format from the extension.
func SaveFile(path string, img image.Image) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	return saveFile(path, img, f)
}

func saveFile(path string, img image.Image, format Format) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return fmt.Errorf("imagecanvas: %w", err)
	}
	if err := Encode(f, img, format); err != nil {
		_ = f.Close()
		return fmt.Errorf("imagecanvas: encode %s: %w", format, err)
	}
	return f.Close()
}

// writeFrame encodes the current frame to the output path, scaled if a
// scale other than 1 was configured.
func (c *Canvas) writeFrame() error {
	var img image.Image = c.img
	if c.scale != 1 {
		b := c.img.Bounds()
		w := max(1, int(float64(b.Dx())*c.scale))
		h := max(1, int(float64(b.Dy())*c.scale))
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), c.img, b, xdraw.Src, nil)
		img = dst
	}
	if err := saveFile(c.output, img, c.format); err != nil {
		return err
	}
	c.log.Debug("imagecanvas: frame written", "path", c.output, "format", c.format)
	return nil
}
