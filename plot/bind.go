package plot

// Handler receives input events.
type Handler func(InputEvent)

// EventTarget is anything that listeners can be attached to: a chart
// container or the window holding it.
type EventTarget interface {
	// AddListener registers h for events of kind k and returns a function
	// that removes it.
	AddListener(k InputKind, h Handler) (remove func())
}

// containerKinds are the events a chart listens for on its container.
var containerKinds = []InputKind{
	PointerDown, PointerMove, Wheel, TouchStart, TouchMove, TouchEnd,
}

// Binding is an attached set of gesture listeners.
type Binding struct {
	removers []func()
	released bool
}

// Bind attaches h to the container events and to pointer release on the
// window, so that a drag ends even when the pointer is released outside of
// the container. The handler is never invoked after Release.
func Bind(container, window EventTarget, h Handler) *Binding {
	b := &Binding{}
	guarded := func(ev InputEvent) {
		if b.released {
			return
		}
		h(ev)
	}
	for _, k := range containerKinds {
		b.removers = append(b.removers, container.AddListener(k, guarded))
	}
	b.removers = append(b.removers, window.AddListener(PointerUp, guarded))
	return b
}

// Release detaches all listeners. It is safe to call more than once and on
// a nil Binding.
func (b *Binding) Release() {
	if b == nil || b.released {
		return
	}
	b.released = true
	for _, remove := range b.removers {
		remove()
	}
	b.removers = nil
}

// Released reports whether Release has been called.
func (b *Binding) Released() bool {
	return b == nil || b.released
}

// Hub is an EventTarget that hosts dispatch translated input events into.
// It must only be used from the goroutine that dispatches events.
type Hub struct {
	nextID    int
	listeners [numInputKinds][]hubListener
}

type hubListener struct {
	id int
	h  Handler
}

var _ EventTarget = (*Hub)(nil)

func (h *Hub) AddListener(k InputKind, fn Handler) func() {
	if k >= numInputKinds || fn == nil {
		return func() {}
	}
	h.nextID++
	id := h.nextID
	h.listeners[k] = append(h.listeners[k], hubListener{id: id, h: fn})
	return func() {
		ls := h.listeners[k]
		for i, l := range ls {
			if l.id == id {
				h.listeners[k] = append(ls[:i:i], ls[i+1:]...)
				return
			}
		}
	}
}

// Dispatch delivers ev to every listener registered for its kind.
func (h *Hub) Dispatch(ev InputEvent) {
	if ev.Kind >= numInputKinds {
		return
	}
	// Copy so listeners may detach themselves while being notified.
	ls := append([]hubListener(nil), h.listeners[ev.Kind]...)
	for _, l := range ls {
		l.h(ev)
	}
}

// Listeners returns the number of listeners attached for k.
func (h *Hub) Listeners(k InputKind) int {
	if k >= numInputKinds {
		return 0
	}
	return len(h.listeners[k])
}
