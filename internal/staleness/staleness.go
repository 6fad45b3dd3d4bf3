// Package staleness answers "is target older than dep?" from filesystem
// modification times. This is the only place the tool consults mtimes;
// it deliberately never hashes file contents (content-hash-based
// staleness is an explicit non-goal).
package staleness

import "os"

// NeedsUpdate reports whether depPath is newer than targetPath, or
// either cannot be stat'd: a missing or unreadable path is treated
// conservatively as "newer" so the target rebuilds. Ties (equal mtimes)
// favor "up to date".
func NeedsUpdate(targetPath, depPath string) bool {
	targetInfo, err := os.Stat(targetPath)
	if err != nil {
		return true
	}
	depInfo, err := os.Stat(depPath)
	if err != nil {
		return true
	}
	return depInfo.ModTime().After(targetInfo.ModTime())
}

// Exists reports whether path can be stat'd.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
