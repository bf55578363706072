package event

import "sync"

// Kind identifies the class of a raw input event.
type Kind int

const (
	// PointerDown is a pointer press.
	PointerDown Kind = iota
	// Click is a pointer click.
	Click
	// Wheel is a mouse-wheel movement.
	Wheel
	// Key is a key press.
	Key
)

func (k Kind) String() string {
	switch k {
	case PointerDown:
		return "pointerdown"
	case Click:
		return "click"
	case Wheel:
		return "wheel"
	case Key:
		return "key"
	default:
		return "unknown"
	}
}

// TargetKind identifies the rendered element a pointer event hit.
type TargetKind int

const (
	// TargetNone is anything that is not part of a menu.
	TargetNone TargetKind = iota
	// TargetSector is a sector; Index carries its item index (-1 for fillers).
	TargetSector
	// TargetCenter is the center button.
	TargetCenter
)

// Target is the element under a pointer event.
type Target struct {
	Kind  TargetKind
	Index int
}

// Event is a raw input event. MenuID names the menu instance whose element was
// hit (pointer events) or which has focus (key and wheel events); empty means
// no menu, which for clicks means the click landed outside every menu.
type Event struct {
	Kind   Kind
	MenuID string
	Target Target
	DeltaY float64
	Key    string

	prevented bool
}

// PreventDefault marks the event handled so the host suppresses its default action.
func (e *Event) PreventDefault() {
	e.prevented = true
}

// DefaultPrevented reports whether a handler called PreventDefault.
func (e *Event) DefaultPrevented() bool {
	return e.prevented
}

// Handler consumes an event.
type Handler func(ev *Event)

// Source is anything handlers can subscribe to. The returned function removes
// the subscription; calling it more than once is harmless.
type Source interface {
	Subscribe(kind Kind, h Handler) (unsubscribe func())
}

type subscription struct {
	id uint64
	h  Handler
}

// Bus is an in-process Source. Handlers run synchronously in subscription order.
type Bus struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[Kind][]subscription
}

// NewBus returns an empty Bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[Kind][]subscription)}
}

// Subscribe registers h for events of kind.
func (b *Bus) Subscribe(kind Kind, h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs[kind] = append(b.subs[kind], subscription{id: id, h: h})

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(kind, id) })
	}
}

func (b *Bus) remove(kind Kind, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subs[kind]
	for k := range subs {
		if subs[k].id == id {
			b.subs[kind] = append(subs[:k:k], subs[k+1:]...)
			return
		}
	}
}

// Publish delivers ev to every handler subscribed to its kind at the time of the call.
// Handlers may subscribe or unsubscribe while the event is being delivered.
func (b *Bus) Publish(ev *Event) {
	b.mu.Lock()
	subs := append([]subscription(nil), b.subs[ev.Kind]...)
	b.mu.Unlock()

	for _, s := range subs {
		s.h(ev)
	}
}

// Count returns the number of live subscriptions for kind.
func (b *Bus) Count(kind Kind) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.subs[kind])
}
