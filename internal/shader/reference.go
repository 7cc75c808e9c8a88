package shader

import (
	"hash/fnv"

	"github.com/jlowden/raytrace-partition/internal/config"
)

// Reference is a small deterministic shader used by the test suite and by
// the CLI when no production shader is wired in. It deliberately contains
// no ray-object intersection math — that's the explicit Non-goal "no
// ray-tracing algorithms" — it just needs to be pure, deterministic, and
// cheap enough to drive the geometry/driver/coordinator/worker tests.
type Reference struct{}

// Shade returns a gradient over (row, col) seeded by the scene ID, so
// different scenes produce visibly different but still deterministic
// output.
func (Reference) Shade(row, col int, cfg config.ConfigData) (float32, float32, float32) {
	seed := sceneSeed(cfg.SceneID)
	width, height := float32(cfg.Width), float32(cfg.Height)
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}

	c0 := float32(col) / width
	c1 := float32(row) / height
	c2 := seed
	return c0, c1, c2
}

// sceneSeed derives a stable float32 in [0,1) from a scene ID so the
// reference shader's output varies by scene without depending on any
// external randomness source.
func sceneSeed(sceneID string) float32 {
	h := fnv.New32a()
	h.Write([]byte(sceneID))
	return float32(h.Sum32()%1000) / 1000.0
}
