package emitter

import "sync"

// registry holds listener records organized by event name, plus the
// wildcard sequence. Each sequence is kept sorted by descending priority;
// equal priorities preserve insertion order. It is safe for concurrent
// use.
type registry struct {
	mu       sync.RWMutex
	byName   map[string][]*listener
	wildcard []*listener
}

func newRegistry() *registry {
	return &registry{
		byName: make(map[string][]*listener),
	}
}

// insert adds a record at the position preserving the descending-priority
// invariant: before the first record with strictly lower priority, or at
// the end. The wildcard token targets the wildcard sequence.
func (r *registry) insert(event string, l *listener) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if event == Wildcard {
		r.wildcard = insertOrdered(r.wildcard, l)
		return
	}
	r.byName[event] = insertOrdered(r.byName[event], l)
}

func insertOrdered(seq []*listener, l *listener) []*listener {
	at := len(seq)
	for i, cur := range seq {
		if cur.priority < l.priority {
			at = i
			break
		}
	}
	seq = append(seq, nil)
	copy(seq[at+1:], seq[at:])
	seq[at] = l
	return seq
}

// snapshot returns a copy of the sequence for the given event name (or the
// wildcard sequence for the wildcard token), so mutation during dispatch
// cannot affect an in-flight pass.
func (r *registry) snapshot(event string) []*listener {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var seq []*listener
	if event == Wildcard {
		seq = r.wildcard
	} else {
		seq = r.byName[event]
	}
	if len(seq) == 0 {
		return nil
	}
	out := make([]*listener, len(seq))
	copy(out, seq)
	return out
}

// removeRecord removes a single record by identity from the live sequence.
// Used for once-listener pruning after invocation.
func (r *registry) removeRecord(event string, l *listener) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if event == Wildcard {
		r.wildcard = deleteRecord(r.wildcard, l)
		return
	}
	seq := deleteRecord(r.byName[event], l)
	if len(seq) == 0 {
		delete(r.byName, event)
	} else {
		r.byName[event] = seq
	}
}

func deleteRecord(seq []*listener, l *listener) []*listener {
	for i, cur := range seq {
		if cur == l {
			return append(seq[:i], seq[i+1:]...)
		}
	}
	return seq
}

// removeHandler removes every record whose handler identity matches id,
// preserving the relative order of the remaining records. A zero id never
// matches.
func (r *registry) removeHandler(event string, id uintptr) {
	if id == 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if event == Wildcard {
		r.wildcard = deleteByID(r.wildcard, id)
		return
	}
	seq := deleteByID(r.byName[event], id)
	if len(seq) == 0 {
		delete(r.byName, event)
	} else {
		r.byName[event] = seq
	}
}

func deleteByID(seq []*listener, id uintptr) []*listener {
	out := seq[:0]
	for _, cur := range seq {
		if cur.id != id {
			out = append(out, cur)
		}
	}
	return out
}

// deleteEvent drops an event's entire sequence (wildcard token drops the
// wildcard sequence).
func (r *registry) deleteEvent(event string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if event == Wildcard {
		r.wildcard = nil
		return
	}
	delete(r.byName, event)
}

// clear removes every record.
func (r *registry) clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byName = make(map[string][]*listener)
	r.wildcard = nil
}

// count returns the number of records for one event name.
func (r *registry) count(event string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if event == Wildcard {
		return len(r.wildcard)
	}
	return len(r.byName[event])
}

// total returns the record count across all events and the wildcard
// sequence.
func (r *registry) total() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := len(r.wildcard)
	for _, seq := range r.byName {
		n += len(seq)
	}
	return n
}

// names returns the event names with at least one record, excluding the
// wildcard token.
func (r *registry) names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.byName) == 0 {
		return nil
	}
	out := make([]string, 0, len(r.byName))
	for name := range r.byName {
		out = append(out, name)
	}
	return out
}
