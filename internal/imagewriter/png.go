// Package imagewriter turns the coordinator's assembled pixel buffer into
// the one binary artifact this system produces: a PNG file (SPEC_FULL.md
// §6). The teacher never saved a frame to disk — it pushed completed
// frames into an SDL surface for live display (shared/screen) — so this
// package is grounded on the teacher's shared/colour clamping idiom plus
// the stdlib image/png encoder, the only PNG writer route any repo in the
// pack touches.
package imagewriter

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/jlowden/raytrace-partition/internal/config"
	"github.com/jlowden/raytrace-partition/internal/pixel"
)

// Writer persists an assembled pixel buffer. Exists so coordinator.Run can
// be driven by a fake in tests without touching a filesystem.
type Writer interface {
	Write(path string, buf []float32, cfg config.ConfigData) error
}

// PNG writes the buffer as an 8-bit PNG via the stdlib encoder.
type PNG struct{}

// Path builds the generated file name spec.md and SPEC_FULL.md §6 name:
// "<sceneID>_<width>x<height>_<partitioningMode>.png", joined under
// cfg.RenderDir.
func Path(cfg config.ConfigData) string {
	name := fmt.Sprintf("%s_%dx%d_%s.png", cfg.SceneID, cfg.Width, cfg.Height, cfg.Mode)
	return filepath.Join(cfg.RenderDir, name)
}

// Write converts buf's three float32 channels per pixel (clamped to
// [0,1], per the teacher's shared/colour.RGB.Clamp idiom) into an
// image.NRGBA and encodes it to path.
func (PNG) Write(path string, buf []float32, cfg config.ConfigData) error {
	img := image.NewNRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	for row := 0; row < cfg.Height; row++ {
		for col := 0; col < cfg.Width; col++ {
			idx := pixel.Offset(cfg.Width, row, col)
			c := pixel.RGB{C0: buf[idx], C1: buf[idx+1], C2: buf[idx+2]}.Clamp()
			offset := img.PixOffset(col, row)
			img.Pix[offset+0] = to8(c.C0)
			img.Pix[offset+1] = to8(c.C1)
			img.Pix[offset+2] = to8(c.C2)
			img.Pix[offset+3] = 0xff
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("imagewriter: creating %q: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imagewriter: creating %q: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("imagewriter: encoding %q: %w", path, err)
	}
	return nil
}

func to8(v float32) uint8 {
	return uint8(v*255 + 0.5)
}
