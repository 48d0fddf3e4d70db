package imageio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Extensions lists the file extensions Discover picks up when walking a
// directory.
var Extensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".bmp": true, ".tif": true, ".tiff": true, ".webp": true, ".tga": true,
}

// Discover expands paths into image files. Directories are walked
// recursively for known extensions (sorted per directory); plain files are
// kept whatever their extension. Paths that do not exist are collected into
// the returned error while the rest are still returned.
func Discover(paths []string) ([]string, error) {
	var files []string
	var errs []error

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			errs = append(errs, fmt.Errorf("imageio: %s is not a file: %w", p, err))
			continue
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}

		var found []string
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if Extensions[strings.ToLower(filepath.Ext(path))] {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("imageio: walk %s: %w", p, err))
		}
		sort.Strings(found)
		files = append(files, found...)
	}

	return files, errors.Join(errs...)
}
