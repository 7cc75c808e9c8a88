package worker

import (
	"testing"

	"github.com/jlowden/raytrace-partition/internal/config"
	"github.com/jlowden/raytrace-partition/internal/geometry"
	"github.com/jlowden/raytrace-partition/internal/shader"
	"github.com/jlowden/raytrace-partition/internal/transport"
)

func TestRunNoneModeDoesNothing(t *testing.T) {
	cfg := config.ConfigData{Mode: config.ModeNone, Width: 4, Height: 4, Rank: 1, ProcCount: 2}
	meshes := transport.NewLocalMesh(2)
	if err := Run(cfg, meshes[1], shader.Reference{}, nil); err != nil {
		t.Fatalf("Run returned error for NONE mode: %v", err)
	}
}

func TestRunStripsSendsOneStaticResult(t *testing.T) {
	cfg := config.ConfigData{Mode: config.ModeStripsVertical, SceneID: "s", Width: 8, Height: 4, Rank: 1, ProcCount: 2}
	meshes := transport.NewLocalMesh(2)

	done := make(chan error, 1)
	go func() { done <- Run(cfg, meshes[1], shader.Reference{}, nil) }()

	_, env, err := meshes[0].Recv(1, transport.StaticResult)
	if err != nil {
		t.Fatalf("Recv: %v", err)
	}
	if err := <-done; err != nil {
		t.Fatalf("Run: %v", err)
	}

	own := geometry.Strips(cfg.Width, cfg.Height, cfg.ProcCount, cfg.Rank)
	want := own.Area()*3 + 1
	if len(env.Floats) != want {
		t.Fatalf("payload length = %d, want %d", len(env.Floats), want)
	}
}

// TestRunDynamicObeysSentinel checks that the worker stops requesting
// work the instant it receives the (0,0,0,0) termination tile (spec.md
// §4.6/§4.5).
func TestRunDynamicObeysSentinel(t *testing.T) {
	cfg := config.ConfigData{Mode: config.ModeDynamic, SceneID: "s", Width: 4, Height: 4, Rank: 1, ProcCount: 2}
	meshes := transport.NewLocalMesh(2)

	done := make(chan error, 1)
	go func() { done <- Run(cfg, meshes[1], shader.Reference{}, nil) }()

	// First request: hand back one 2x2 tile.
	if _, _, err := meshes[0].Recv(1, transport.Request); err != nil {
		t.Fatalf("Recv request: %v", err)
	}
	assign := transport.Envelope{Tag: transport.Assign, Ints: []int32{0, 0, 2, 2}}
	if err := meshes[0].Send(1, assign); err != nil {
		t.Fatalf("Send assign: %v", err)
	}

	_, resultEnv, err := meshes[0].Recv(1, transport.Result)
	if err != nil {
		t.Fatalf("Recv result: %v", err)
	}
	if len(resultEnv.Floats) != 2*2*3+1 {
		t.Fatalf("result payload length = %d, want %d", len(resultEnv.Floats), 2*2*3+1)
	}

	// Second request: send the sentinel, worker must exit cleanly.
	if _, _, err := meshes[0].Recv(1, transport.Request); err != nil {
		t.Fatalf("Recv second request: %v", err)
	}
	sentinel := transport.Envelope{Tag: transport.Assign, Ints: []int32{0, 0, 0, 0}}
	if err := meshes[0].Send(1, sentinel); err != nil {
		t.Fatalf("Send sentinel: %v", err)
	}

	if err := <-done; err != nil {
		t.Fatalf("Run: %v", err)
	}
}
