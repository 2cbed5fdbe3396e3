package processor

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressDir(t *testing.T) {
	root := t.TempDir()
	region := filepath.Join(root, "generated", "rudnik")
	require.NoError(t, os.MkdirAll(filepath.Join(region, "images"), 0755))

	files := map[string]string{
		"rudnik/data.json":       squareDataset,
		"rudnik/images/a.webp":   "RIFF",
		"rudnik/images/ic_b.png": "PNG",
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(root, "generated", filepath.FromSlash(name)), []byte(body), 0644))
	}

	archive := filepath.Join(root, "compressed", "rudnik.zip")
	count, err := CompressDir(region, archive)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	zr, err := zip.OpenReader(archive)
	require.NoError(t, err)
	defer func() { _ = zr.Close() }()

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)

		rc, err := f.Open()
		require.NoError(t, err)
		body, err := io.ReadAll(rc)
		require.NoError(t, rc.Close())
		require.NoError(t, err)
		assert.Equal(t, files[f.Name], string(body), f.Name)
	}
	assert.Equal(t, []string{"rudnik/data.json", "rudnik/images/a.webp", "rudnik/images/ic_b.png"}, names)
}

func TestCompressDirSkipsArchiveInside(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data.json"), []byte("{}"), 0644))

	count, err := CompressDir(dir, filepath.Join(dir, "out.zip"))
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCompressDirMissing(t *testing.T) {
	root := t.TempDir()
	archive := filepath.Join(root, "compressed", "absent.zip")

	_, err := CompressDir(filepath.Join(root, "generated", "absent"), archive)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.NoFileExists(t, archive)

	file := filepath.Join(root, "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	_, err = CompressDir(file, archive)
	assert.Error(t, err)
}
