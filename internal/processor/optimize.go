package processor

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/woozymasta/touristmeta/internal/config"

	"github.com/chai2010/webp"
	"github.com/rs/zerolog/log"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// IconSourceSize is the required width and height of an original place icon.
const IconSourceSize = 1024

// iconPrefix marks icon files among the place photos.
const iconPrefix = "ic_"

// sourceExts are the photo extensions that can be decoded, in lookup order.
var sourceExts = []string{".jpg", ".jpeg", ".png", ".webp"}

// OptimizeOptions controls OptimizeImages.
type OptimizeOptions struct {
	PlaceID   string
	SourceDir string
	OutputDir string

	// NoIcon skips the ic_<place>.* icon.
	NoIcon   bool
	IconSize int
	// Scale is the factor applied to photo dimensions.
	Scale   float64
	Quality float32
	Force   bool
}

// OptimizeOptionsFor builds optimize options for a place from the configuration.
func OptimizeOptionsFor(cfg config.Optimize, placeID string) OptimizeOptions {
	return OptimizeOptions{
		PlaceID:   placeID,
		SourceDir: cfg.SourceDir,
		OutputDir: cfg.OutputDir,
		IconSize:  cfg.IconSize,
		Scale:     cfg.Scale,
		Quality:   cfg.Quality,
	}
}

// OptimizeImages converts the original photos of a place into smaller lossy
// WebP files. The icon ic_<place> must be IconSourceSize pixels square and is
// resized to IconSize; other photos are scaled by Scale. Hidden files and
// files with an unknown extension are skipped. It returns the number of
// images written.
func OptimizeImages(opts OptimizeOptions) (int, error) {
	if opts.IconSize <= 0 {
		opts.IconSize = 512
	}
	if opts.Scale <= 0 || opts.Scale > 1 {
		return 0, fmt.Errorf("scale %v out of range (0, 1]", opts.Scale)
	}

	info, err := os.Stat(opts.SourceDir)
	if err != nil {
		return 0, err
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("%s is not a directory", opts.SourceDir)
	}

	var iconPath string
	if !opts.NoIcon {
		if opts.PlaceID == "" {
			return 0, errors.New("place id is required to locate the icon")
		}
		if iconPath, err = findIcon(opts.SourceDir, opts.PlaceID); err != nil {
			return 0, err
		}
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return 0, err
	}

	written := 0
	if iconPath != "" {
		ok, err := optimizeIcon(iconPath, opts)
		if err != nil {
			return written, err
		}
		if ok {
			written++
		}
	}

	entries, err := os.ReadDir(opts.SourceDir)
	if err != nil {
		return written, err
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || strings.HasPrefix(name, iconPrefix) {
			continue
		}

		ext := strings.ToLower(filepath.Ext(name))
		if !slices.Contains(sourceExts, ext) {
			log.Warn().Str("file", name).Msg("Unsupported image format, skipping")
			continue
		}

		src := filepath.Join(opts.SourceDir, name)
		dst := filepath.Join(opts.OutputDir, strings.TrimSuffix(name, filepath.Ext(name))+".webp")

		ok, err := convertImage(src, dst, opts.Force, opts.Quality, func(b image.Rectangle) image.Rectangle {
			return image.Rect(0, 0, scaled(b.Dx(), opts.Scale), scaled(b.Dy(), opts.Scale))
		})
		if err != nil {
			return written, fmt.Errorf("%s: %w", name, err)
		}
		if ok {
			written++
		}
	}

	return written, nil
}

// findIcon returns the path of the original icon of a place.
func findIcon(dir, placeID string) (string, error) {
	for _, ext := range sourceExts {
		path := filepath.Join(dir, iconPrefix+placeID+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("icon %s%s not found in %s", iconPrefix, placeID, dir)
}

func optimizeIcon(src string, opts OptimizeOptions) (bool, error) {
	dst := filepath.Join(opts.OutputDir, iconPrefix+opts.PlaceID+".webp")

	ok, err := convertImage(src, dst, opts.Force, opts.Quality, func(b image.Rectangle) image.Rectangle {
		return image.Rect(0, 0, opts.IconSize, opts.IconSize)
	}, checkIconSize)
	if err != nil {
		return false, fmt.Errorf("icon: %w", err)
	}

	return ok, nil
}

func checkIconSize(img image.Image) error {
	b := img.Bounds()
	if b.Dx() != IconSourceSize || b.Dy() != IconSourceSize {
		return fmt.Errorf("dimensions are %dx%d, want %dx%d", b.Dx(), b.Dy(), IconSourceSize, IconSourceSize)
	}
	return nil
}

// convertImage decodes src, resizes it to the rectangle returned by size and
// writes it to dst as lossy WebP. Existing non-empty files are kept unless
// force is set; the boolean result reports whether dst was written.
func convertImage(src, dst string, force bool, quality float32, size func(image.Rectangle) image.Rectangle, checks ...func(image.Image) error) (bool, error) {
	if !force {
		if info, err := os.Stat(dst); err == nil && info.Size() > 0 {
			log.Debug().Str("path", dst).Msg("Optimized image exists, skipping")
			return false, nil
		}
	}

	srcImg, err := decodeFile(src)
	if err != nil {
		return false, err
	}

	for _, check := range checks {
		if err := check(srcImg); err != nil {
			return false, err
		}
	}

	dstImg := image.NewRGBA(size(srcImg.Bounds()))
	xdraw.CatmullRom.Scale(dstImg, dstImg.Bounds(), srcImg, srcImg.Bounds(), xdraw.Over, nil)

	f, err := os.Create(dst)
	if err != nil {
		return false, err
	}
	defer func() { _ = f.Close() }()

	if err := webp.Encode(f, dstImg, &webp.Options{Lossless: false, Quality: quality}); err != nil {
		return false, err
	}

	log.Info().
		Str("source", src).
		Str("path", dst).
		Int("width", dstImg.Bounds().Dx()).
		Int("height", dstImg.Bounds().Dy()).
		Msg("Image optimized")

	return true, nil
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return img, nil
}

func scaled(n int, factor float64) int {
	return max(1, int(float64(n)*factor+0.5))
}
