package radial

import (
	"strings"

	"github.com/mchmarny/radial-menu/pkg/event"
)

// KeyAction is the navigation action bound to a key.
type KeyAction int

const (
	KeyNone KeyAction = iota
	KeyBack
	KeySelect
	KeyForward
	KeyBackward
)

// KeyActionFor resolves a key name against the configured bindings, case-insensitively.
func (e *Engine) KeyActionFor(key string) KeyAction {
	k := e.cfg.Keys
	switch {
	case matchKey(k.Back, key):
		return KeyBack
	case matchKey(k.Select, key):
		return KeySelect
	case matchKey(k.Forward, key):
		return KeyForward
	case matchKey(k.Backward, key):
		return KeyBackward
	default:
		return KeyNone
	}
}

func matchKey(set []string, key string) bool {
	for _, s := range set {
		if strings.EqualFold(s, key) {
			return true
		}
	}
	return false
}

// subscribe registers the listeners that live as long as the engine.
func (e *Engine) subscribe() {
	if e.source == nil {
		return
	}
	e.subscriptions = append(e.subscriptions,
		e.source.Subscribe(event.Key, e.HandleKey),
		e.source.Subscribe(event.Wheel, e.HandleWheel),
		e.source.Subscribe(event.PointerDown, e.HandlePointerDown),
		e.source.Subscribe(event.Click, e.HandleClick),
	)
}

// listenOutside registers the click-outside listener while the menu is open.
func (e *Engine) listenOutside() {
	if e.source == nil || !e.closeOnClickOutside || e.outside != nil {
		return
	}
	e.outside = e.source.Subscribe(event.Click, e.HandleClickOutside)
}

func (e *Engine) stopOutside() {
	if e.outside == nil {
		return
	}
	e.outside()
	e.outside = nil
}

// ours reports whether an event addressed to menuID concerns this instance.
// Key and wheel events without an address go to every open menu.
func (e *Engine) ours(menuID string) bool {
	return menuID == "" || menuID == e.id
}

// HandleKey runs the action bound to the key and prevents the default for bound keys.
func (e *Engine) HandleKey(ev *event.Event) {
	if !e.ours(ev.MenuID) || !e.IsOpen() {
		return
	}

	switch e.KeyActionFor(ev.Key) {
	case KeyBack:
		e.ActivateCenter()
	case KeySelect:
		e.ActivateSelection()
	case KeyForward:
		e.SelectDelta(1)
	case KeyBackward:
		e.SelectDelta(-1)
	default:
		return
	}
	ev.PreventDefault()
}

// HandleWheel moves the selection forward when scrolling up and backward when scrolling down.
func (e *Engine) HandleWheel(ev *event.Event) {
	if !e.ours(ev.MenuID) || !e.IsOpen() {
		return
	}

	switch {
	case ev.DeltaY < 0:
		e.SelectDelta(1)
	case ev.DeltaY > 0:
		e.SelectDelta(-1)
	}
}

// HandlePointerDown pre-selects the sector under the pointer.
func (e *Engine) HandlePointerDown(ev *event.Event) {
	if ev.MenuID != e.id || ev.Target.Kind != event.TargetSector {
		return
	}
	e.SelectIndex(ev.Target.Index)
}

// HandleClick activates the selection for sector clicks and the center action for center clicks.
// Clicks on filler sectors do nothing.
func (e *Engine) HandleClick(ev *event.Event) {
	if ev.MenuID != e.id || !e.IsOpen() {
		return
	}

	switch ev.Target.Kind {
	case event.TargetSector:
		if ev.Target.Index < 0 || ev.Target.Index >= len(e.items) {
			return
		}
		e.ActivateSelection()
	case event.TargetCenter:
		e.ActivateCenter()
	}
}

// HandleClickOutside force-closes the menu when a click lands outside it.
func (e *Engine) HandleClickOutside(ev *event.Event) {
	if ev.MenuID == e.id || !e.IsOpen() {
		return
	}

	if e.closeOnClickOutsideHook != nil {
		e.closeOnClickOutsideHook(e)
	}
	e.Close(true)
}
