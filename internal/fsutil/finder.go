// Package fsutil provides file system helpers for the bench loader.
package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FindFilesByExtension resolves a path to the list of files it names: a file
// path is returned as-is, a directory is walked recursively for files with
// the given extension. The extension must include the leading dot.
func FindFilesByExtension(path string, extension string) ([]string, error) {
	if extension == "" || !strings.HasPrefix(extension, ".") {
		panic(fmt.Sprintf("fsutil: extension must start with a dot, got %q", extension))
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("accessing path %s: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), extension) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
