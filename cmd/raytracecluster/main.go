// Command raytracecluster is one rank's entrypoint: it loads the scene
// document, dials the full mesh described by -peers, and runs either the
// coordinator or worker role depending on -rank. Grounded on
// original_source/main_mpi.cpp's main: the renders-directory bootstrap
// precedes any transport work, summary lines print before dispatch, and
// a barrier separates dispatch from shutdown.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jlowden/raytrace-partition/internal/config"
	"github.com/jlowden/raytrace-partition/internal/coordinator"
	"github.com/jlowden/raytrace-partition/internal/imagewriter"
	"github.com/jlowden/raytrace-partition/internal/shader"
	"github.com/jlowden/raytrace-partition/internal/transport"
	"github.com/jlowden/raytrace-partition/internal/worker"
)

func main() {
	configPath := flag.String("config", "", "path to the scene JSON document (required)")
	rank := flag.Int("rank", -1, "this process's rank (required)")
	procs := flag.Int("procs", 0, "total process count (required)")
	addr := flag.String("addr", "", "this rank's own listen address (required)")
	peersFlag := flag.String("peers", "", "other ranks as rank=host:port,rank=host:port,...")
	renderDir := flag.String("render-dir", "", "overrides the render output directory")
	flag.Parse()
	log.SetFlags(0)

	if err := run(*configPath, *rank, *procs, *addr, *peersFlag, *renderDir); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func run(configPath string, rank, procs int, addr, peersFlag, renderDir string) error {
	if configPath == "" || rank < 0 || procs <= 0 || addr == "" {
		return fmt.Errorf("raytracecluster: -config, -rank, -procs, and -addr are all required")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg.Rank = rank
	cfg.ProcCount = procs
	cfg.RenderDir = config.ResolveRenderDir(renderDir, cfg.SceneFile)

	if rank == 0 {
		// The renders directory must exist before any rank starts
		// dialing, matching main_mpi.cpp's ordering.
		if err := os.MkdirAll(cfg.RenderDir, 0o755); err != nil {
			return fmt.Errorf("raytracecluster: creating render directory %q: %w", cfg.RenderDir, err)
		}

		log.Printf("Scene: %s", cfg.SceneID)
		log.Printf("Width x Height: %d x %d", cfg.Width, cfg.Height)
		log.Printf("Partitioning scheme: %s", cfg.Mode)
		log.Printf("Number of Processes: %d", procs)
		log.Printf("Dynamic block size: %d x %d", cfg.DynamicBlockWidth, cfg.DynamicBlockHeight)
		log.Printf("Cycle Size: %d", cfg.CycleSize)
	}

	peers, err := transport.ParsePeers(peersFlag, rank)
	if err != nil {
		return err
	}

	tr, err := transport.Dial(rank, procs, addr, peers)
	if err != nil {
		return fmt.Errorf("raytracecluster: dialing mesh: %w", err)
	}

	s := shader.Reference{}

	if rank == 0 {
		logger := coordinator.NewReportLogger(os.Stdout)
		if err := coordinator.Run(cfg, tr, s, imagewriter.PNG{}, logger); err != nil {
			tr.Close()
			return err
		}
	} else {
		if err := worker.Run(cfg, tr, s, log.Default()); err != nil {
			tr.Close()
			return err
		}
	}

	if err := tr.Barrier(); err != nil {
		tr.Close()
		return fmt.Errorf("raytracecluster: barrier: %w", err)
	}

	return tr.Close()
}
