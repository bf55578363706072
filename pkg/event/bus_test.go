package event

import "testing"

func TestBusDeliversByKind(t *testing.T) {
	b := NewBus()

	var keys, clicks int
	b.Subscribe(Key, func(*Event) { keys++ })
	b.Subscribe(Click, func(*Event) { clicks++ })

	b.Publish(&Event{Kind: Key, Key: "Enter"})
	b.Publish(&Event{Kind: Key, Key: "Escape"})
	b.Publish(&Event{Kind: Click})

	if keys != 2 || clicks != 1 {
		t.Fatalf("keys=%d clicks=%d, want 2 and 1", keys, clicks)
	}
}

func TestBusUnsubscribeIsIdempotent(t *testing.T) {
	b := NewBus()

	var a, c int
	unA := b.Subscribe(Wheel, func(*Event) { a++ })
	b.Subscribe(Wheel, func(*Event) { c++ })

	unA()
	unA()
	b.Publish(&Event{Kind: Wheel})

	if a != 0 || c != 1 {
		t.Fatalf("a=%d c=%d, want 0 and 1", a, c)
	}
	if n := b.Count(Wheel); n != 1 {
		t.Fatalf("Count() = %d, want 1", n)
	}
}

func TestBusSubscribeDuringPublish(t *testing.T) {
	b := NewBus()

	var late int
	b.Subscribe(Click, func(*Event) {
		b.Subscribe(Click, func(*Event) { late++ })
	})

	b.Publish(&Event{Kind: Click})
	if late != 0 {
		t.Fatalf("handler added during delivery saw the same event")
	}

	b.Publish(&Event{Kind: Click})
	if late != 1 {
		t.Fatalf("late = %d, want 1", late)
	}
}

func TestPreventDefault(t *testing.T) {
	b := NewBus()
	b.Subscribe(Key, func(ev *Event) {
		if ev.Key == "Enter" {
			ev.PreventDefault()
		}
	})

	enter := &Event{Kind: Key, Key: "Enter"}
	other := &Event{Kind: Key, Key: "a"}
	b.Publish(enter)
	b.Publish(other)

	if !enter.DefaultPrevented() {
		t.Error("Enter not prevented")
	}
	if other.DefaultPrevented() {
		t.Error("unbound key prevented")
	}
}

func TestKindString(t *testing.T) {
	if Wheel.String() != "wheel" || Kind(99).String() != "unknown" {
		t.Fatal("unexpected kind names")
	}
}
