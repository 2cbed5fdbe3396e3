package processor

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zip"
	"github.com/rs/zerolog/log"
)

// CompressDir writes every regular file under srcDir into a zip archive at
// archivePath. Entry names are relative to the parent of srcDir, so the
// archive of generated/rudnik holds rudnik/data.json and so on.
// It returns the number of files archived.
func CompressDir(srcDir, archivePath string) (int, error) {
	info, err := os.Stat(srcDir)
	if err != nil {
		return 0, err
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("%s is not a directory", srcDir)
	}

	if err := os.MkdirAll(filepath.Dir(archivePath), 0755); err != nil {
		return 0, err
	}

	f, err := os.Create(archivePath)
	if err != nil {
		return 0, err
	}

	// We care about write errors on close
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Error().Err(closeErr).Str("path", archivePath).Msg("Failed to close file")
		}
	}()

	zw := zip.NewWriter(f)
	base := filepath.Dir(filepath.Clean(srcDir))
	archive := filepath.Clean(archivePath)
	count := 0

	err = filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() || filepath.Clean(path) == archive {
			return nil
		}

		rel, err := filepath.Rel(base, path)
		if err != nil {
			return err
		}

		if err := addToZip(zw, path, filepath.ToSlash(rel)); err != nil {
			return fmt.Errorf("add %s: %w", path, err)
		}

		log.Debug().Int("n", count).Str("file", path).Msg("File compressed")
		count++
		return nil
	})
	if err != nil {
		_ = zw.Close()
		return count, err
	}

	if err := zw.Close(); err != nil {
		return count, err
	}

	log.Info().
		Str("source", srcDir).
		Str("archive", archivePath).
		Int("files", count).
		Msg("Directory compressed")

	return count, nil
}

func addToZip(zw *zip.Writer, path, name string) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	info, err := src.Stat()
	if err != nil {
		return err
	}

	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: info.ModTime(),
	})
	if err != nil {
		return err
	}

	_, err = io.Copy(w, src)
	return err
}
