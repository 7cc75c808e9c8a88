// Package config loads the scene configuration external collaborator
// (spec.md §1) and holds the ConfigData value everything downstream is
// dispatched from.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Mode is one of the five partitioning disciplines named in spec.md §3.
type Mode string

const (
	ModeNone            Mode = "NONE"
	ModeStripsVertical  Mode = "STATIC_STRIPS_VERTICAL"
	ModeBlocks          Mode = "STATIC_BLOCKS"
	ModeCyclesHorizontal Mode = "STATIC_CYCLES_HORIZONTAL"
	ModeDynamic         Mode = "DYNAMIC"
)

// knownModes is used only to validate input; order doesn't matter.
var knownModes = map[Mode]bool{
	ModeNone:             true,
	ModeStripsVertical:   true,
	ModeBlocks:           true,
	ModeCyclesHorizontal: true,
	ModeDynamic:          true,
}

// ConfigData is the value the scene loader produces and every role reads
// for the life of a run (spec.md §3: "created once and never mutated
// after dispatch").
type ConfigData struct {
	SceneID  string `json:"sceneID"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Mode     Mode   `json:"partitioningMode"`

	DynamicBlockWidth  int `json:"dynamicBlockWidth"`
	DynamicBlockHeight int `json:"dynamicBlockHeight"`
	CycleSize          int `json:"cycleSize"`

	// Rank and ProcCount come from the CLI, not the scene file — they
	// describe this invocation, not the scene (spec.md §3).
	Rank      int `json:"-"`
	ProcCount int `json:"-"`

	// SceneFile and RenderDir are expansion fields (SPEC_FULL.md §3):
	// SceneFile records where the scene document was read from, used
	// only to resolve the default RenderDir; RenderDir is
	// where the image writer persists the final picture, defaulting to a
	// "renders" directory beside the scene file (see ResolveRenderDir).
	SceneFile string `json:"-"`
	RenderDir string `json:"-"`
}

// Load reads and validates a scene document from path. It does not set
// Rank, ProcCount, or RenderDir — callers merge those in from the CLI
// (SPEC_FULL.md §9).
func Load(path string) (ConfigData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ConfigData{}, fmt.Errorf("config: reading %q: %w", path, err)
	}

	var cfg ConfigData
	if err := json.Unmarshal(data, &cfg); err != nil {
		return ConfigData{}, fmt.Errorf("config: parsing %q: %w", path, err)
	}
	cfg.SceneFile = path

	if cfg.Width <= 0 || cfg.Height <= 0 {
		return ConfigData{}, fmt.Errorf("config: %q: width and height must be positive", path)
	}
	if cfg.Mode == ModeDynamic && (cfg.DynamicBlockWidth <= 0 || cfg.DynamicBlockHeight <= 0) {
		return ConfigData{}, fmt.Errorf("config: %q: dynamicBlockWidth/dynamicBlockHeight must be positive for DYNAMIC", path)
	}
	if cfg.Mode == ModeCyclesHorizontal && cfg.CycleSize <= 0 {
		return ConfigData{}, fmt.Errorf("config: %q: cycleSize must be positive for STATIC_CYCLES_HORIZONTAL", path)
	}

	return cfg, nil
}

// Implemented reports whether mode is one of the five dispatchable
// strategies. An unrecognized mode is a Configuration error (spec.md §7):
// "This mode (X) is not currently implemented."
func Implemented(m Mode) bool {
	return knownModes[m]
}

// ResolveRenderDir returns dir if non-empty, otherwise "renders" resolved
// relative to the scene file's own directory. The join logic is adapted
// from the teacher's shared/state.relativePath (same
// TrimRightFunc/TrimLeft technique for joining a base directory to a
// relative path), repurposed from resolving a mesh's texture path onto
// resolving the render output directory against the scene file.
func ResolveRenderDir(dir, sceneFile string) string {
	if dir != "" {
		return dir
	}
	if sceneFile == "" {
		return "renders"
	}
	return relativePath(filepath.Dir(sceneFile)+string(filepath.Separator), "renders")
}

// relativePath joins a base directory (original, kept up to its final
// path separator) to other, trimming any leading separators from other
// first.
func relativePath(original, other string) string {
	return strings.Join([]string{
		strings.TrimRightFunc(original, func(ch rune) bool { return ch != '/' && ch != '\\' }),
		strings.TrimLeft(other, "/\\"),
	}, "")
}
