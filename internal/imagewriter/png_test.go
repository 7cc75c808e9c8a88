package imagewriter

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/jlowden/raytrace-partition/internal/config"
	"github.com/jlowden/raytrace-partition/internal/pixel"
)

func TestPathNaming(t *testing.T) {
	cfg := config.ConfigData{SceneID: "demo", Width: 64, Height: 32, Mode: config.ModeBlocks, RenderDir: "renders"}
	got := Path(cfg)
	want := filepath.Join("renders", "demo_64x32_STATIC_BLOCKS.png")
	if got != want {
		t.Fatalf("Path = %q, want %q", got, want)
	}
}

func TestWriteProducesDecodablePNG(t *testing.T) {
	cfg := config.ConfigData{SceneID: "demo", Width: 3, Height: 2, Mode: config.ModeNone, RenderDir: t.TempDir()}
	buf := pixel.New(cfg.Width, cfg.Height)
	// Paint pixel (0,0) pure red, everything else stays black.
	buf[pixel.Offset(cfg.Width, 0, 0)] = 1.0

	path := Path(cfg)
	if err := (PNG{}).Write(path, buf, cfg); err != nil {
		t.Fatalf("Write: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening written PNG: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding written PNG: %v", err)
	}
	if img.Bounds().Dx() != cfg.Width || img.Bounds().Dy() != cfg.Height {
		t.Fatalf("decoded dims = %dx%d, want %dx%d", img.Bounds().Dx(), img.Bounds().Dy(), cfg.Width, cfg.Height)
	}

	r, g, b, _ := img.At(0, 0).RGBA()
	if r>>8 != 0xff || g>>8 != 0 || b>>8 != 0 {
		t.Fatalf("pixel (0,0) = (%d,%d,%d), want pure red", r>>8, g>>8, b>>8)
	}
}
