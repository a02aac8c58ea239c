package collector

// Dispatcher owns the stack of currently-active collectors and broadcasts
// every SAX event to all of them (spec.md §4.6: "Every event received by
// the dispatcher is broadcast to every currently-registered collector;
// this is what lets sibling matches at different depths coexist"). A
// collector that completes removes itself before control returns to the
// context, so a single compaction pass after each broadcast is enough —
// no mid-broadcast mutation of the active set is needed because each
// collector only ever decides its own completion from the event it was
// just given.
type Dispatcher struct {
	active []*Collector
}

// New returns an empty dispatcher.
func New() *Dispatcher {
	return &Dispatcher{}
}

// Add registers a newly created collector. Per spec.md §5, the collector
// must be registered before the triggering start-event is forwarded, so
// that it observes its own opening delimiter; callers are responsible for
// that ordering (internal/surfer adds the collector, then forwards).
func (d *Dispatcher) Add(c *Collector) {
	d.active = append(d.active, c)
}

// IsEmpty reports whether any collector is currently recording — the
// signal skipOverlappedPath uses to suppress nested matches (spec.md
// §4.5, §9: an over-approximation checking only non-emptiness, not actual
// containment, by design).
func (d *Dispatcher) IsEmpty() bool {
	return len(d.active) == 0
}

func (d *Dispatcher) StartObject() {
	d.broadcast(func(c *Collector) { c.StartObject() })
}

func (d *Dispatcher) EndObject() {
	d.broadcast(func(c *Collector) { c.EndObject() })
}

func (d *Dispatcher) StartObjectEntry(key string) {
	d.broadcast(func(c *Collector) { c.StartObjectEntry(key) })
}

func (d *Dispatcher) StartArray() {
	d.broadcast(func(c *Collector) { c.StartArray() })
}

func (d *Dispatcher) EndArray() {
	d.broadcast(func(c *Collector) { c.EndArray() })
}

func (d *Dispatcher) Primitive(value any) {
	d.broadcast(func(c *Collector) { c.Primitive(value) })
}

func (d *Dispatcher) broadcast(fn func(*Collector)) {
	if len(d.active) == 0 {
		return
	}
	for _, c := range d.active {
		fn(c)
	}
	d.compact()
}

// compact drops every collector that completed during the last broadcast,
// preserving relative order (innermost-first completion drains from
// wherever it sits in the slice, not necessarily the end).
func (d *Dispatcher) compact() {
	n := 0
	for _, c := range d.active {
		if !c.Done() {
			d.active[n] = c
			n++
		}
	}
	for i := n; i < len(d.active); i++ {
		d.active[i] = nil
	}
	d.active = d.active[:n]
}
