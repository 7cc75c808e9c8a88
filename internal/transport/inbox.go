package transport

import "sync"

// inboxEntry is one undelivered application message, tagged with the rank
// it actually arrived from.
type inboxEntry struct {
	source int
	env    Envelope
}

// inbox is the rank-local mailbox that every inbound stream's reader
// goroutine feeds into, and that Recv/Probe consult. It exists so the
// single cooperative "rank" goroutine never has to know how many peer
// connections are feeding it, matching the single-threaded-per-rank
// model in spec.md §5 even though the I/O plumbing underneath is
// goroutine-based.
type inbox struct {
	mu      sync.Mutex
	cond    *sync.Cond
	entries []inboxEntry
	closed  bool
}

func newInbox() *inbox {
	b := &inbox{}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// push appends a delivered envelope and wakes any blocked waiter.
func (b *inbox) push(source int, env Envelope) {
	b.mu.Lock()
	b.entries = append(b.entries, inboxEntry{source: source, env: env})
	b.mu.Unlock()
	b.cond.Broadcast()
}

// close wakes every blocked waiter so they can observe a transport failure.
func (b *inbox) close() {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
	b.cond.Broadcast()
}

func matches(entry inboxEntry, src int, tag Tag) bool {
	return (src == Any || entry.source == src) && (tag == Any || entry.env.Tag == tag)
}

// wait blocks until an entry matching (src, tag) is present, then returns
// it with consume controlling whether it's removed from the inbox.
func (b *inbox) wait(src int, tag Tag, consume bool) (inboxEntry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for {
		for i, e := range b.entries {
			if matches(e, src, tag) {
				if consume {
					b.entries = append(b.entries[:i], b.entries[i+1:]...)
				}
				return e, nil
			}
		}
		if b.closed {
			return inboxEntry{}, errTransportClosed
		}
		b.cond.Wait()
	}
}
