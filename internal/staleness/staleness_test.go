package staleness

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func write(t *testing.T, dir, name string, mtime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	return path
}

func TestNeedsUpdateMissingTarget(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	dep := write(t, dir, "dep", now)

	require.True(t, NeedsUpdate(filepath.Join(dir, "missing-target"), dep))
}

func TestNeedsUpdateMissingDep(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	target := write(t, dir, "target", now)

	require.True(t, NeedsUpdate(target, filepath.Join(dir, "missing-dep")))
}

func TestNeedsUpdateDepNewer(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)
	target := write(t, dir, "target", base)
	dep := write(t, dir, "dep", base.Add(time.Minute))

	require.True(t, NeedsUpdate(target, dep))
}

func TestNeedsUpdateTargetNewer(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)
	dep := write(t, dir, "dep", base)
	target := write(t, dir, "target", base.Add(time.Minute))

	require.False(t, NeedsUpdate(target, dep))
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	present := write(t, dir, "present", time.Now())

	require.True(t, Exists(present))
	require.False(t, Exists(filepath.Join(dir, "absent")))
}
