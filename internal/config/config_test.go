package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeScene(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "scene.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing scene file: %v", err)
	}
	return path
}

func TestLoadValidScene(t *testing.T) {
	dir := t.TempDir()
	path := writeScene(t, dir, `{
		"sceneID": "demo",
		"width": 256,
		"height": 128,
		"partitioningMode": "STATIC_BLOCKS"
	}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SceneID != "demo" || cfg.Width != 256 || cfg.Height != 128 || cfg.Mode != ModeBlocks {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if cfg.SceneFile != path {
		t.Fatalf("SceneFile = %q, want %q", cfg.SceneFile, path)
	}
}

func TestLoadRejectsNonPositiveDimensions(t *testing.T) {
	dir := t.TempDir()
	path := writeScene(t, dir, `{"sceneID":"x","width":0,"height":10,"partitioningMode":"NONE"}`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for width <= 0")
	}
}

func TestLoadRequiresDynamicBlockDimsForDynamicMode(t *testing.T) {
	dir := t.TempDir()
	path := writeScene(t, dir, `{"sceneID":"x","width":10,"height":10,"partitioningMode":"DYNAMIC"}`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error when dynamicBlockWidth/Height are missing for DYNAMIC")
	}
}

func TestLoadRequiresCycleSizeForCyclesMode(t *testing.T) {
	dir := t.TempDir()
	path := writeScene(t, dir, `{"sceneID":"x","width":10,"height":10,"partitioningMode":"STATIC_CYCLES_HORIZONTAL"}`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error when cycleSize is missing for STATIC_CYCLES_HORIZONTAL")
	}
}

func TestImplemented(t *testing.T) {
	if !Implemented(ModeDynamic) {
		t.Fatal("DYNAMIC should be implemented")
	}
	if Implemented(Mode("SOMETHING_FUTURE")) {
		t.Fatal("an unrecognized mode must not be implemented")
	}
}

func TestResolveRenderDirDefaultsNextToScene(t *testing.T) {
	got := ResolveRenderDir("", "/scenes/demo/scene.json")
	if got != "/scenes/demo/renders" {
		t.Fatalf("ResolveRenderDir = %q, want /scenes/demo/renders", got)
	}
}

func TestResolveRenderDirExplicitOverride(t *testing.T) {
	got := ResolveRenderDir("/tmp/out", "/scenes/demo/scene.json")
	if got != "/tmp/out" {
		t.Fatalf("ResolveRenderDir = %q, want /tmp/out", got)
	}
}
