package transport

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"google.golang.org/grpc"
)

// Peer is one other rank's listen address, as supplied on the CLI.
type Peer struct {
	Rank int
	Addr string
}

// Internal control tags. These never appear in an Envelope handed back by
// Recv/Probe — deliver() intercepts them before they reach the inbox — so
// they sit outside the four-tag alphabet (spec.md §4.1) without needing an
// exception to it.
const (
	tagBarrierReady Tag = -1
	tagBarrierGo    Tag = -2
)

// grpcTransport is the full-mesh gRPC realization of Transport described
// in SPEC_FULL.md §4.1: one server per rank, one dialed stream per
// ordered (self, peer) pair, envelopes gob-encoded via the codec in
// codec.go.
type grpcTransport struct {
	rank, procCount int
	startedAt       time.Time

	server   *grpc.Server
	listener net.Listener
	outbound *pool
	in       *inbox

	barrierReady chan int
	barrierGo    chan struct{}
}

// Dial starts this rank's server on listenAddr and connects to every
// peer. Each outbound grpc.Dial blocks until its TCP handshake completes,
// so by the time Dial returns every stream this rank needs to Send on is
// already registered with its peer.
func Dial(rank, procCount int, listenAddr string, peers []Peer) (Transport, error) {
	lis, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return nil, fmt.Errorf("transport: listening on %q: %w", listenAddr, err)
	}

	t := &grpcTransport{
		rank:         rank,
		procCount:    procCount,
		startedAt:    time.Now(),
		server:       grpc.NewServer(),
		listener:     lis,
		outbound:     newPool(),
		in:           newInbox(),
		barrierReady: make(chan int, procCount),
		barrierGo:    make(chan struct{}),
	}

	grpc.RegisterService(t.server, &channelServiceDesc, t)
	go t.server.Serve(lis)

	// Dial every peer in peers, in the order the caller supplied them.
	// Each client-streaming channel only carries envelopes dialer to
	// dialee, so a full mesh needs every rank to dial every other rank.
	// No ordering rule lets one side skip its own dial.
	for _, peer := range peers {
		if err := t.outbound.dial(rank, peer.Rank, peer.Addr); err != nil {
			t.server.Stop()
			return nil, err
		}
	}

	return t, nil
}

// deliver implements channelHandler. It's called from each accepted
// stream's reader goroutine (one per peer), so it must not touch anything
// but the concurrency-safe inbox and barrier channels.
func (t *grpcTransport) deliver(source int, env *Envelope) {
	switch env.Tag {
	case tagBarrierReady:
		t.barrierReady <- source
	case tagBarrierGo:
		close(t.barrierGo)
	default:
		t.in.push(source, *env)
	}
}

func (t *grpcTransport) Rank() int      { return t.rank }
func (t *grpcTransport) ProcCount() int { return t.procCount }
func (t *grpcTransport) Now() float64   { return time.Since(t.startedAt).Seconds() }

func (t *grpcTransport) Send(dest int, env Envelope) error {
	if dest == t.rank {
		t.in.push(t.rank, env)
		return nil
	}
	return t.outbound.send(dest, env)
}

func (t *grpcTransport) Recv(src int, tag Tag) (int, Envelope, error) {
	e, err := t.in.wait(src, tag, true)
	return e.source, e.env, err
}

func (t *grpcTransport) Probe(src int, tag Tag) (int, Tag, error) {
	e, err := t.in.wait(src, tag, false)
	if err != nil {
		return 0, 0, err
	}
	return e.source, e.env.Tag, nil
}

// Barrier implements a centralized barrier: every non-coordinator rank
// tells rank 0 it's ready, rank 0 waits for all of them and broadcasts go.
// There's no teacher precedent for this (the live renderer has no
// barrier concept); the shape follows the rest of this repo's
// coordinator-centric protocols rather than any peer-to-peer consensus.
func (t *grpcTransport) Barrier() error {
	if t.rank == 0 {
		seen := make(map[int]bool)
		for len(seen) < t.procCount-1 {
			seen[<-t.barrierReady] = true
		}
		for r := 1; r < t.procCount; r++ {
			if err := t.outbound.send(r, Envelope{Tag: tagBarrierGo}); err != nil {
				return err
			}
		}
		return nil
	}

	if err := t.outbound.send(0, Envelope{Tag: tagBarrierReady}); err != nil {
		return err
	}
	<-t.barrierGo
	return nil
}

func (t *grpcTransport) Close() error {
	t.in.close()
	t.outbound.closeAll()
	t.server.GracefulStop()
	return nil
}

// ParsePeers parses a "rank=host:port,rank=host:port" CLI value into Peer
// values, skipping selfRank (a run's own address comes from -addr, not
// -peers).
func ParsePeers(spec string, selfRank int) ([]Peer, error) {
	var peers []Peer
	if spec == "" {
		return peers, nil
	}
	for _, entry := range strings.Split(spec, ",") {
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("transport: malformed peer entry %q, want rank=host:port", entry)
		}
		rank, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("transport: malformed peer rank in %q: %w", entry, err)
		}
		if rank == selfRank {
			continue
		}
		peers = append(peers, Peer{Rank: rank, Addr: parts[1]})
	}
	return peers, nil
}
