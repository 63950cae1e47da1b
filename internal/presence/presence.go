// Package presence tracks who is connected to the SSH server and fans out
// short notices, such as a new high score, to every other player.
package presence

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
)

const defaultBuffer = 16

// Notice is one message delivered to a member.
type Notice struct {
	From string
	Text string
}

func (n Notice) String() string {
	if n.From == "" {
		return n.Text
	}
	return fmt.Sprintf("%s %s", n.From, n.Text)
}

// Member is one connected player. Notices are buffered; when the buffer is
// full the oldest one is dropped so Broadcast never blocks.
type Member struct {
	id       uint64
	name     string
	notices  chan Notice
	done     chan struct{}
	doneOnce sync.Once
}

// Name returns the player name given to Join.
func (m *Member) Name() string {
	return m.name
}

// Notices returns the channel the member's UI reads from.
func (m *Member) Notices() <-chan Notice {
	return m.notices
}

// Done is closed when the member leaves.
func (m *Member) Done() <-chan struct{} {
	return m.done
}

func (m *Member) send(n Notice) {
	select {
	case <-m.done:
		return
	default:
	}

	select {
	case m.notices <- n:
		return
	default:
	}

	// Full: drop the oldest and retry once
	select {
	case <-m.notices:
	default:
	}
	select {
	case m.notices <- n:
	default:
	}
}

func (m *Member) close() {
	m.doneOnce.Do(func() { close(m.done) })
}

// Hub is the set of connected members. Safe for concurrent use.
type Hub struct {
	mu      sync.RWMutex
	members map[uint64]*Member
	nextID  atomic.Uint64
	buffer  int
}

// NewHub creates an empty hub. buffer is the per-member notice buffer; values
// below 1 use a default.
func NewHub(buffer int) *Hub {
	if buffer < 1 {
		buffer = defaultBuffer
	}
	return &Hub{
		members: make(map[uint64]*Member),
		buffer:  buffer,
	}
}

// Join adds a member. The same name may join more than once.
func (h *Hub) Join(name string) *Member {
	m := &Member{
		id:      h.nextID.Add(1),
		name:    name,
		notices: make(chan Notice, h.buffer),
		done:    make(chan struct{}),
	}

	h.mu.Lock()
	h.members[m.id] = m
	h.mu.Unlock()
	return m
}

// Leave removes m and closes its Done channel. Leaving twice is a no-op.
func (h *Hub) Leave(m *Member) {
	h.mu.Lock()
	delete(h.members, m.id)
	h.mu.Unlock()
	m.close()
}

// Count returns the number of connected members.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.members)
}

// Names returns the sorted names of connected members.
func (h *Hub) Names() []string {
	h.mu.RLock()
	names := make([]string, 0, len(h.members))
	for _, m := range h.members {
		names = append(names, m.name)
	}
	h.mu.RUnlock()

	sort.Strings(names)
	return names
}

// Broadcast delivers text to every member except from. from may be nil for
// server notices.
func (h *Hub) Broadcast(from *Member, text string) {
	n := Notice{Text: text}
	if from != nil {
		n.From = from.name
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, m := range h.members {
		if m != from {
			m.send(n)
		}
	}
}
