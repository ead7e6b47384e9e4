// Package imaging checks downloaded bytes before they are cached and renders
// WebP previews of cached wallpapers.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/chai2010/webp"
	"github.com/nfnt/resize"

	// Register additional image decoders into the image.Decode registry.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"bingpaper/config"
	"bingpaper/utils"
)

func init() {
	// Register the WebP decoder so image.Decode handles WebP input.
	image.RegisterFormat("webp", "RIFF????WEBP", webp.Decode, webp.DecodeConfig)
}

// normalizeFormat maps image.Decode format names to file extensions.
func normalizeFormat(format string) string {
	switch format {
	case "jpeg":
		return "jpg"
	default:
		return format
	}
}

// checkImageDimensions peeks at the image config without a full decode and
// returns the detected format, or an error if the data is not a supported
// image or either dimension exceeds MaxImageDimension.
func checkImageDimensions(r io.Reader) (string, error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return "", fmt.Errorf("not a supported image: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return "", fmt.Errorf("image has empty dimensions %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Width > config.MaxImageDimension || cfg.Height > config.MaxImageDimension {
		return "", fmt.Errorf("image dimensions %dx%d exceed maximum allowed %dx%d",
			cfg.Width, cfg.Height, config.MaxImageDimension, config.MaxImageDimension)
	}
	return normalizeFormat(format), nil
}

// Validate reports whether data is a decodable image of sane size whose
// magic bytes agree with its decoded format.
func Validate(data []byte) error {
	ext, err := checkImageDimensions(bytes.NewReader(data))
	if err != nil {
		return err
	}
	return utils.ValidateFileType(data, ext)
}

// Preview decodes data and returns a WebP thumbnail that fits within
// maxW×maxH. Images already smaller are encoded at their own size.
func Preview(data []byte, maxW, maxH uint) ([]byte, error) {
	if _, err := checkImageDimensions(bytes.NewReader(data)); err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	thumb := resize.Thumbnail(maxW, maxH, img, resize.Bilinear)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, thumb, &webp.Options{Quality: config.WebPQuality}); err != nil {
		return nil, fmt.Errorf("encode preview: %w", err)
	}
	return buf.Bytes(), nil
}

// PreviewFile is Preview over the contents of path.
func PreviewFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return Preview(data, config.PreviewMaxWidth, config.PreviewMaxHeight)
}
