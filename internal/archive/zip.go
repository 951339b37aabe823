// Package archive packages a generated file map into a zip download.
// Output is deterministic: entries are written in sorted path order
// with a fixed timestamp, so the same file map always produces the
// same archive bytes.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"path"
	"sort"
	"time"
)

// epoch is the fixed modification time stamped on every entry.
var epoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Zip writes all files under a single top-level directory named root.
func Zip(files map[string]string, root string) ([]byte, error) {
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, p := range paths {
		hdr := &zip.FileHeader{
			Name:     path.Join(root, p),
			Method:   zip.Deflate,
			Modified: epoch,
		}
		f, err := w.CreateHeader(hdr)
		if err != nil {
			return nil, fmt.Errorf("archive %s: %w", p, err)
		}
		if _, err := f.Write([]byte(files[p])); err != nil {
			return nil, fmt.Errorf("archive %s: %w", p, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}
