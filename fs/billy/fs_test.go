package billy

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMkdirAllStat(t *testing.T, fs *FS, root string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Join(root, "a/b/c"), 0o755))

	info, err := fs.Stat(filepath.Join(root, "a/b"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func testWriteReadOpen(t *testing.T, fs *FS, root string) {
	t.Helper()
	p := filepath.Join(root, "index.html")
	require.NoError(t, fs.WriteFile(p, []byte("<html></html>"), 0o644))

	b, err := fs.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(b))

	f, err := fs.Open(p)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	content, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(content))

	info, err := f.Stat()
	require.NoError(t, err)
	assert.Equal(t, int64(13), info.Size())
}

func testMissing(t *testing.T, fs *FS, root string) {
	t.Helper()

	_, err := fs.Stat(filepath.Join(root, "absent.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = fs.ReadFile(filepath.Join(root, "absent.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = fs.Open(filepath.Join(root, "absent.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func testWalk(t *testing.T, fs *FS, root string) {
	t.Helper()
	base := filepath.Join(root, "walk")
	require.NoError(t, fs.MkdirAll(filepath.Join(base, "x/y"), 0o755))
	require.NoError(t, fs.MkdirAll(filepath.Join(base, "empty"), 0o755))
	require.NoError(t, fs.WriteFile(filepath.Join(base, "x/y/z.txt"), []byte("z"), 0o644))
	require.NoError(t, fs.WriteFile(filepath.Join(base, "top.txt"), []byte("t"), 0o644))

	var files []string
	err := fs.Walk(base, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			rel, relErr := filepath.Rel(base, path)
			require.NoError(t, relErr)
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	require.NoError(t, err)

	sort.Strings(files)
	assert.Equal(t, []string{"top.txt", "x/y/z.txt"}, files)
}

// runSuite runs a battery of consistency tests against one backing filesystem.
func runSuite(t *testing.T, fs *FS, root string) {
	t.Helper()
	testMkdirAllStat(t, fs, root)
	testWriteReadOpen(t, fs, root)
	testMissing(t, fs, root)
	testWalk(t, fs, root)
}

func TestInMemoryFS_Suite(t *testing.T) {
	runSuite(t, NewInMemoryFS(), "/")
}

func TestOSFS_Suite(t *testing.T) {
	root := t.TempDir()
	runSuite(t, NewOSFS(root), "/")
}

func TestNativeFS_Suite(t *testing.T) {
	root := t.TempDir()
	runSuite(t, NewNativeFS(), root)
}
