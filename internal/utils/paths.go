package utils

import "path/filepath"

// ResolvePath anchors a relative path at baseDir. Absolute and empty paths
// are returned unchanged, so an unset setting stays unset.
func ResolvePath(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
