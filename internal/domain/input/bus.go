package input

import (
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
)

// Kind is the pointer event class a listener subscribes to
type Kind int

const (
	PointerDown Kind = iota
	PointerMove
	PointerUp
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case PointerDown:
		return "pointer_down"
	case PointerMove:
		return "pointer_move"
	case PointerUp:
		return "pointer_up"
	default:
		return "unknown"
	}
}

// Pointer is a pointer event in desktop coordinates
type Pointer struct {
	Kind     Kind
	Position types.Point
	Target   Target
}

// Handler receives pointer events
type Handler func(ev Pointer)

type listener struct {
	id      uint64
	handler Handler
}

// Bus is the shell-wide pointer listener table.
//
// Components attach global listeners only while they need them and detach
// through the returned function. Bus is not safe for concurrent use; the
// owning Shell serializes access.
type Bus struct {
	nextID    uint64
	listeners map[Kind][]listener
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{listeners: make(map[Kind][]listener)}
}

// On attaches h for kind and returns its detach function.
// Calling detach more than once is harmless.
func (b *Bus) On(kind Kind, h Handler) (detach func()) {
	b.nextID++
	id := b.nextID
	b.listeners[kind] = append(b.listeners[kind], listener{id: id, handler: h})

	return func() {
		ls := b.listeners[kind]
		for i, l := range ls {
			if l.id == id {
				b.listeners[kind] = append(ls[:i:i], ls[i+1:]...)
				return
			}
		}
	}
}

// Emit delivers ev to every listener attached for its kind at call time.
// Listeners may detach themselves or attach new ones while handling.
func (b *Bus) Emit(ev Pointer) {
	current := b.listeners[ev.Kind]
	if len(current) == 0 {
		return
	}
	snapshot := make([]listener, len(current))
	copy(snapshot, current)

	for _, l := range snapshot {
		l.handler(ev)
	}
}

// Count returns the number of listeners attached for kind
func (b *Bus) Count(kind Kind) int {
	return len(b.listeners[kind])
}
