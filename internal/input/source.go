// Package input provides the key event source that widgets subscribe to.
package input

// Kind distinguishes key-down from key-up events.
type Kind int

const (
	KeyDown Kind = iota
	KeyUp
)

func (k Kind) String() string {
	switch k {
	case KeyDown:
		return "down"
	case KeyUp:
		return "up"
	default:
		return "unknown"
	}
}

// Event is a single key transition. Key uses browser-style names:
// printable keys are the character itself, others are names such as
// "Enter", "Shift" or "F5".
type Event struct {
	Kind Kind
	Key  string
}

// Handler receives events from a Source.
type Handler func(Event)

// Source delivers key events to subscribers until they unsubscribe.
type Source interface {
	Subscribe(h Handler) (unsubscribe func())
}

// Bus is an in-process Source. It is not safe for concurrent use; all
// calls are expected to happen on the program's update loop.
type Bus struct {
	nextID   int
	handlers map[int]Handler
	order    []int
}

// NewBus returns an empty Bus.
func NewBus() *Bus {
	return &Bus{handlers: map[int]Handler{}}
}

// Subscribe registers h and returns a function that removes it. Calling the
// returned function more than once is a no-op.
func (b *Bus) Subscribe(h Handler) func() {
	id := b.nextID
	b.nextID++
	b.handlers[id] = h
	b.order = append(b.order, id)
	return func() {
		if _, ok := b.handlers[id]; !ok {
			return
		}
		delete(b.handlers, id)
		for i, v := range b.order {
			if v == id {
				b.order = append(b.order[:i], b.order[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers ev to every subscriber in subscription order.
func (b *Bus) Publish(ev Event) {
	// Handlers may unsubscribe while being called.
	ids := append([]int(nil), b.order...)
	for _, id := range ids {
		if h, ok := b.handlers[id]; ok {
			h(ev)
		}
	}
}

// Down publishes a key-down event.
func (b *Bus) Down(key string) {
	b.Publish(Event{Kind: KeyDown, Key: key})
}

// Up publishes a key-up event.
func (b *Bus) Up(key string) {
	b.Publish(Event{Kind: KeyUp, Key: key})
}

// Len returns the number of active subscribers.
func (b *Bus) Len() int {
	return len(b.handlers)
}
