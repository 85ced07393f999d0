package history

// Policy tags which tracker chose a victim.
type Policy uint8

const (
	LRU Policy = iota
	SRRIP
)

func (p Policy) String() string {
	switch p {
	case LRU:
		return "lru"
	case SRRIP:
		return "srrip"
	default:
		return "unknown"
	}
}

// Entry is one remembered eviction decision.
type Entry struct {
	Addr   uint64
	Policy Policy
	Cycle  uint64
}

// Ledger is a bounded FIFO of eviction decisions backed by a ring buffer.
// Entries are not deduplicated by address. Not safe for concurrent use.
type Ledger struct {
	buf  []Entry
	head int // oldest entry
	len  int
	refs map[uint64]int // address -> number of entries holding it
}

func New(capacity int) *Ledger {
	if capacity < 1 {
		capacity = 1
	}
	return &Ledger{
		buf:  make([]Entry, capacity),
		refs: make(map[uint64]int, capacity),
	}
}

// Record appends an entry, dropping the oldest one first when the ledger is full.
func (l *Ledger) Record(addr uint64, policy Policy, cycle uint64) {
	if l.Full() {
		l.PopFront()
	}
	l.buf[l.at(l.len)] = Entry{Addr: addr, Policy: policy, Cycle: cycle}
	l.len++
	l.refs[addr]++
}

// PopFront drops the oldest entry.
func (l *Ledger) PopFront() (Entry, bool) {
	if l.len == 0 {
		return Entry{}, false
	}
	e := l.buf[l.head]
	l.buf[l.head] = Entry{}
	l.head = l.at(1)
	l.len--
	l.release(e.Addr)
	return e, true
}

// Find returns the oldest surviving entry for addr and its position from the front.
func (l *Ledger) Find(addr uint64) (Entry, int, bool) {
	if l.refs[addr] == 0 {
		return Entry{}, -1, false
	}
	for i := 0; i < l.len; i++ {
		if e := l.buf[l.at(i)]; e.Addr == addr {
			return e, i, true
		}
	}
	return Entry{}, -1, false
}

// RemoveAt deletes the entry at position i (0 is the oldest), preserving order of the rest.
func (l *Ledger) RemoveAt(i int) bool {
	if i < 0 || i >= l.len {
		return false
	}
	removed := l.buf[l.at(i)]
	for j := i; j < l.len-1; j++ {
		l.buf[l.at(j)] = l.buf[l.at(j+1)]
	}
	l.buf[l.at(l.len-1)] = Entry{}
	l.len--
	l.release(removed.Addr)
	return true
}

// Entries returns a copy of the ledger from oldest to newest.
func (l *Ledger) Entries() []Entry {
	out := make([]Entry, 0, l.len)
	for i := 0; i < l.len; i++ {
		out = append(out, l.buf[l.at(i)])
	}
	return out
}

func (l *Ledger) Len() int   { return l.len }
func (l *Ledger) Cap() int   { return len(l.buf) }
func (l *Ledger) Full() bool { return l.len == len(l.buf) }

func (l *Ledger) at(i int) int {
	return (l.head + i) % len(l.buf)
}

func (l *Ledger) release(addr uint64) {
	if n := l.refs[addr]; n > 1 {
		l.refs[addr] = n - 1
	} else {
		delete(l.refs, addr)
	}
}
