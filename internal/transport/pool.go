package transport

import (
	"fmt"
	"sync"

	"google.golang.org/grpc"
)

// pool is the registry of this rank's outbound connections, one per peer.
// It's a direct descendant of the teacher's master/pool.Pool: the same
// locking discipline and connect-once lifecycle, but without the
// least-busy heap or the heartbeat-eviction goroutine. Those existed to
// push work at whichever live-rendering worker had spare capacity and to
// evict one that stopped answering; this transport's dynamic strategy
// already load-balances by letting workers pull (spec.md §4.5), and
// spec.md §5 rules out building timeout-based eviction into the core.
type pool struct {
	mu    sync.RWMutex
	conns map[int]*peerConn
}

// peerConn is the outbound side of one directed rank pair: a dialed
// connection plus the single long-lived stream this rank sends envelopes
// to that peer on.
type peerConn struct {
	mu     sync.Mutex
	conn   *grpc.ClientConn
	stream grpc.ClientStream
}

func newPool() *pool {
	return &pool{conns: make(map[int]*peerConn)}
}

// dial connects to a peer rank at addr and performs the stream handshake.
func (p *pool) dial(selfRank, peerRank int, addr string) error {
	conn, err := grpc.Dial(addr, grpc.WithInsecure(), grpc.WithBlock())
	if err != nil {
		return fmt.Errorf("transport: dialing rank %d at %q: %w", peerRank, addr, err)
	}

	stream, err := dialChannel(conn, selfRank)
	if err != nil {
		conn.Close()
		return fmt.Errorf("transport: handshaking with rank %d at %q: %w", peerRank, addr, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.conns[peerRank] = &peerConn{conn: conn, stream: stream}
	return nil
}

// send writes env to the stream owned by peerRank.
func (p *pool) send(peerRank int, env Envelope) error {
	p.mu.RLock()
	pc, ok := p.conns[peerRank]
	p.mu.RUnlock()
	if !ok {
		return fmt.Errorf("transport: no connection to rank %d", peerRank)
	}

	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.stream.SendMsg(&env)
}

// closeAll closes every outbound stream and connection in the pool.
func (p *pool) closeAll() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, pc := range p.conns {
		pc.mu.Lock()
		pc.stream.CloseSend()
		pc.conn.Close()
		pc.mu.Unlock()
	}
}
