package processor

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/woozymasta/touristmeta/internal/config"
	"github.com/woozymasta/touristmeta/internal/dataset"

	"github.com/chai2010/webp"
	"github.com/rs/zerolog/log"
	qrcode "github.com/skip2/go-qrcode"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const labelPadding = 6

// QROptions controls GenerateQRCodes.
type QROptions struct {
	// URLPrefix is joined with the place id to form the encoded URL.
	URLPrefix string
	OutputDir string
	Format    string
	Level     qrcode.RecoveryLevel
	Size      int
	Label     bool
	Force     bool
}

// QROptionsFor builds QR options for a region from the configuration.
func QROptionsFor(cfg config.QR, region string) (QROptions, error) {
	level, err := ParseRecoveryLevel(cfg.Level)
	if err != nil {
		return QROptions{}, err
	}

	return QROptions{
		URLPrefix: config.ForRegion(cfg.URLPrefix, region),
		OutputDir: config.ForRegion(cfg.OutputDir, region),
		Format:    cfg.Format,
		Level:     level,
		Size:      cfg.Size,
		Label:     cfg.Label,
	}, nil
}

// ParseRecoveryLevel maps a level name to a QR error correction level.
func ParseRecoveryLevel(name string) (qrcode.RecoveryLevel, error) {
	switch strings.ToLower(name) {
	case "low":
		return qrcode.Low, nil
	case "medium", "":
		return qrcode.Medium, nil
	case "high":
		return qrcode.High, nil
	case "highest":
		return qrcode.Highest, nil
	default:
		return qrcode.Medium, fmt.Errorf("unknown QR recovery level %q", name)
	}
}

// PlaceURL returns the public page URL of a place.
func PlaceURL(prefix, id string) string {
	return strings.TrimRight(prefix, "/") + "/" + url.PathEscape(id)
}

// GenerateQRCodes writes one QR code image per place of ds into
// opts.OutputDir, named <id>.<format>. Existing non-empty files are kept
// unless opts.Force is set. It returns the number of images written.
func GenerateQRCodes(ds *dataset.Dataset, opts QROptions) (int, error) {
	points, err := ds.Points()
	if err != nil {
		return 0, err
	}

	if opts.Format == "" {
		opts.Format = config.FormatPNG
	}
	if opts.Size <= 0 {
		opts.Size = 256
	}
	if err := checkFormat(opts.Format); err != nil {
		return 0, err
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return 0, err
	}

	written := 0
	for _, p := range points {
		outPath := filepath.Join(opts.OutputDir, p.ID+"."+opts.Format)
		link := PlaceURL(opts.URLPrefix, p.ID)

		if !opts.Force {
			if info, err := os.Stat(outPath); err == nil && info.Size() > 0 {
				log.Debug().Str("place", p.ID).Str("path", outPath).Msg("QR code exists, skipping")
				continue
			}
		}

		label := ""
		if opts.Label {
			label = p.ID
		}

		img, err := renderQR(link, label, opts.Level, opts.Size)
		if err != nil {
			return written, fmt.Errorf("place %s: %w", p.ID, err)
		}

		if err := saveImage(outPath, img, opts.Format); err != nil {
			return written, fmt.Errorf("place %s: %w", p.ID, err)
		}
		written++

		log.Info().
			Str("place", p.ID).
			Str("url", link).
			Str("path", outPath).
			Msg("QR code generated")
	}

	return written, nil
}

// renderQR encodes content as a QR code of size px. A non-empty label is
// drawn centered below the code.
func renderQR(content, label string, level qrcode.RecoveryLevel, size int) (image.Image, error) {
	q, err := qrcode.New(content, level)
	if err != nil {
		return nil, err
	}

	img := q.Image(size)
	if label == "" {
		return img, nil
	}

	return drawLabel(img, label), nil
}

// drawLabel returns a copy of img extended with a caption strip at the bottom.
func drawLabel(img image.Image, label string) image.Image {
	face := basicfont.Face7x13
	metrics := face.Metrics()

	d := &font.Drawer{Src: image.Black, Face: face}
	textWidth := d.MeasureString(label).Ceil()

	b := img.Bounds()
	width := max(b.Dx(), textWidth+2*labelPadding)
	height := b.Dy() + metrics.Height.Ceil() + 2*labelPadding

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, xdraw.Src)

	offset := image.Pt((width-b.Dx())/2, 0)
	xdraw.Draw(canvas, b.Sub(b.Min).Add(offset), img, b.Min, xdraw.Src)

	d.Dst = canvas
	d.Dot = fixed.P((width-textWidth)/2, b.Dy()+labelPadding+metrics.Ascent.Ceil())
	d.DrawString(label)

	return canvas
}

// saveImage encodes img into path using the given format.
func saveImage(path string, img image.Image, format string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := encodeImage(f, img, format); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

func checkFormat(format string) error {
	switch format {
	case config.FormatPNG, config.FormatWebP:
		return nil
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}
}

func encodeImage(w io.Writer, img image.Image, format string) error {
	switch format {
	case config.FormatPNG:
		return png.Encode(w, img)
	case config.FormatWebP:
		return webp.Encode(w, img, &webp.Options{Lossless: true})
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}
}
