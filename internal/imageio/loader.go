// Package imageio decodes input images and finds them on disk.
package imageio

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

type decoder struct {
	name   string
	match  func(raw []byte) bool
	decode func(r io.Reader) (image.Image, error)
}

func prefix(magic string) func([]byte) bool {
	return func(raw []byte) bool { return bytes.HasPrefix(raw, []byte(magic)) }
}

// TGA has no magic number and tga registers itself with an empty one, which
// makes image.Decode hand it every file. Formats are therefore sniffed here.
var decoders = []decoder{
	{"png", prefix("\x89PNG\r\n\x1a\n"), png.Decode},
	{"jpeg", prefix("\xff\xd8"), jpeg.Decode},
	{"gif", prefix("GIF8"), gif.Decode},
	{"bmp", prefix("BM"), bmp.Decode},
	{"tiff", func(raw []byte) bool {
		return bytes.HasPrefix(raw, []byte("II*\x00")) || bytes.HasPrefix(raw, []byte("MM\x00*"))
	}, tiff.Decode},
	{"webp", func(raw []byte) bool {
		return len(raw) >= 12 && string(raw[0:4]) == "RIFF" && string(raw[8:12]) == "WEBP"
	}, webp.Decode},
}

// Load reads and decodes the image at path. The returned string is the
// format name ("jpeg", "png", "tga", ...).
func Load(path string) (image.Image, string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("imageio: read %s: %w", path, err)
	}
	return Decode(raw, path)
}

// Decode decodes raw image bytes. name is used in error messages; a ".tga"
// extension forces the TGA decoder, which is also the fallback when no
// magic number matches.
func Decode(raw []byte, name string) (image.Image, string, error) {
	if len(raw) == 0 {
		return nil, "", fmt.Errorf("imageio: %s is empty", name)
	}

	d := decoder{name: "tga", decode: tga.Decode}
	if !strings.EqualFold(filepath.Ext(name), ".tga") {
		for _, c := range decoders {
			if c.match(raw) {
				d = c
				break
			}
		}
	}

	img, err := d.decode(bytes.NewReader(raw))
	if err != nil {
		return nil, "", fmt.Errorf("imageio: decode %s as %s: %w", name, d.name, err)
	}
	return img, d.name, nil
}
