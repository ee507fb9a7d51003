package files

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FindUp looks for the relative path rel in dir and each of its parents, returning the first match.
// It returns "" if no directory up to the filesystem root contains rel.
func FindUp(rel, dir string) (string, error) {
	curDir := dir
	for {
		candidate := filepath.Join(curDir, rel)
		_, err := os.Stat(candidate)
		if err == nil {
			return candidate, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("checking %q: %w", candidate, err)
		}
		newDir := filepath.Dir(curDir)
		if newDir == curDir {
			return "", nil
		}
		curDir = newDir
	}
}
