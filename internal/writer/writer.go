// Package writer serializes assembled documents to disk atomically.
package writer

import (
	"fmt"
	"os"
	"path/filepath"
)

// IOFault indicates the document could not be written. The target path is
// never left with a partial file; the temporary file is removed on every
// failure path.
type IOFault struct {
	Path string
	Err  error
}

func (e *IOFault) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *IOFault) Unwrap() error {
	return e.Err
}

// Atomic writes data to path by writing a temporary file in the target
// directory and renaming it into place.
func Atomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &IOFault{Path: path, Err: err}
	}

	tmp, err := os.CreateTemp(dir, ".convert-*")
	if err != nil {
		return &IOFault{Path: path, Err: err}
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return &IOFault{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return &IOFault{Path: path, Err: err}
	}
	// Rename is atomic on the same filesystem, which the temp file
	// guarantees by living in the destination directory
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return &IOFault{Path: path, Err: err}
	}

	return nil
}
