package app

import (
	"sort"
	"strconv"
	"sync"
)

// Lanes serializes operations that touch the same keys. An operation holds
// every lane it names for its whole duration; operations on disjoint lanes
// run concurrently. AcquireAll excludes every other operation.
type Lanes struct {
	world sync.RWMutex
	mu    sync.Mutex
	locks map[string]*lane
}

type lane struct {
	mu   sync.Mutex
	refs int
}

// NewLanes creates an empty lane set
func NewLanes() *Lanes {
	return &Lanes{locks: make(map[string]*lane)}
}

// Acquire locks the named lanes in sorted order and returns the release func
func (l *Lanes) Acquire(keys ...string) (release func()) {
	keys = dedupe(keys)

	l.world.RLock()
	held := make([]*lane, 0, len(keys))
	for _, key := range keys {
		ln := l.ref(key)
		ln.mu.Lock()
		held = append(held, ln)
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].mu.Unlock()
			l.unref(keys[i])
		}
		l.world.RUnlock()
	}
}

// AcquireAll waits for every running operation and blocks new ones until released
func (l *Lanes) AcquireAll() (release func()) {
	l.world.Lock()
	return l.world.Unlock
}

func (l *Lanes) ref(key string) *lane {
	l.mu.Lock()
	defer l.mu.Unlock()
	ln, ok := l.locks[key]
	if !ok {
		ln = &lane{}
		l.locks[key] = ln
	}
	ln.refs++
	return ln
}

func (l *Lanes) unref(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	ln := l.locks[key]
	ln.refs--
	if ln.refs == 0 {
		delete(l.locks, key)
	}
}

func dedupe(keys []string) []string {
	out := append([]string(nil), keys...)
	sort.Strings(out)
	n := 0
	for i, k := range out {
		if i == 0 || k != out[n-1] {
			out[n] = k
			n++
		}
	}
	return out[:n]
}

// Lane keys
const laneRegistry = "registry"

func poolLane(index uint64) string {
	return "pool/" + strconv.FormatUint(index, 10)
}

func accountLane(addr string) string {
	return "account/" + addr
}

func supplyLane(denom string) string {
	return "supply/" + denom
}
