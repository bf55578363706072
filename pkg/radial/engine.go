// Package radial implements the radial menu engine: the navigation stack over
// nested item lists, the open/close state machine with generation-tagged
// transitions, and the input dispatcher.
//
// An Engine is not safe for concurrent use. All calls, renderer completions
// and scheduler callbacks must happen on one goroutine (see package loop).
package radial

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mchmarny/radial-menu/pkg/config"
	"github.com/mchmarny/radial-menu/pkg/event"
	"github.com/mchmarny/radial-menu/pkg/layout"
	"github.com/mchmarny/radial-menu/pkg/logger"
	"github.com/mchmarny/radial-menu/pkg/menu"
	"github.com/mchmarny/radial-menu/pkg/metric"
)

// Navigation event names reported to the counter.
const (
	EventOpen     = "open"
	EventClose    = "close"
	EventSelect   = "select"
	EventDrillIn  = "drill_in"
	EventDrillOut = "drill_out"
	EventFallback = "fallback"
	EventStale    = "stale"
)

// Frame is one entry of the navigation stack: a parent level kept mounted
// while a nested level is shown.
type Frame struct {
	Handle   Handle
	Items    []menu.Item
	Parent   *menu.Item
	Selected int
	Layout   layout.Layout
}

// Engine is one radial menu instance.
type Engine struct {
	id        string
	cfg       config.LayoutConfig
	root      []menu.Item
	renderer  Renderer
	scheduler Scheduler
	source    event.Source
	log       *slog.Logger
	counter   metric.IncrementalCounter

	onSelect                func(menu.Item)
	closeOnClick            bool
	closeOnClickHook        func(menu.Item)
	closeOnClickOutside     bool
	closeOnClickOutsideHook func(*Engine)
	onClose                 func()
	onStateChange           func(from, to State)

	state    State
	items    []menu.Item
	parent   *menu.Item
	layout   layout.Layout
	selected int
	current  Handle
	stack    []Frame
	position *layout.Point

	generation uint64
	pending    *transition

	subscriptions []func()
	outside       func()
	destroyed     bool
}

// New creates a closed menu over items. The items are copied; later changes
// to the caller's slice do not affect the menu.
func New(items []menu.Item, cfg config.LayoutConfig, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	root := menu.CopyItems(items)
	if err := (&menu.Menu{Items: root}).Validate(); err != nil {
		return nil, fmt.Errorf("invalid menu items: %w", err)
	}

	e := &Engine{
		id:                  uuid.NewString(),
		cfg:                 cfg,
		root:                root,
		closeOnClick:        cfg.CloseOnClick,
		closeOnClickOutside: cfg.CloseOnClickOutside,
		selected:            -1,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.renderer == nil {
		e.renderer = &discardRenderer{}
	}
	if e.scheduler == nil {
		e.scheduler = noScheduler{}
	}
	if e.counter == nil {
		e.counter = metric.Discard{}
	}
	e.log = logger.ForMenu(e.log, e.id)

	if _, ok := e.renderer.(*discardRenderer); !ok {
		if _, ok := e.scheduler.(noScheduler); ok {
			e.log.Warn("renderer set without a scheduler, transition fallback is disabled")
		}
	}

	if cfg.MinSectors < 4 {
		e.log.Warn("minSectors below 4 renders very wide sectors", "min_sectors", cfg.MinSectors)
	}

	e.renderer.Mount(e.id, cfg.Size)
	e.subscribe()

	e.log.Debug("menu initialized",
		"items", len(root),
		"size", cfg.Size,
		"min_sectors", cfg.MinSectors)

	return e, nil
}

// ID returns the instance id.
func (e *Engine) ID() string { return e.id }

// Config returns the resolved configuration.
func (e *Engine) Config() config.LayoutConfig { return e.cfg }

// State returns the current state.
func (e *Engine) State() State { return e.state }

// IsOpen reports whether the menu is shown and not closing.
func (e *Engine) IsOpen() bool {
	switch e.state {
	case StateOpening, StateOpen, StateTransitioning:
		return true
	default:
		return false
	}
}

// Depth returns the current nesting depth; 0 at the root level.
func (e *Engine) Depth() int { return len(e.stack) }

// Selected returns the selected item index of the current level, or -1.
func (e *Engine) Selected() int { return e.selected }

// SelectedItem returns a copy of the selected item.
func (e *Engine) SelectedItem() (menu.Item, bool) {
	if e.selected < 0 || e.selected >= len(e.items) {
		return menu.Item{}, false
	}
	return e.items[e.selected].Copy(), true
}

// Items returns a copy of the current level's items; nil when closed.
func (e *Engine) Items() []menu.Item { return menu.CopyItems(e.items) }

// Layout returns the current level's layout.
func (e *Engine) Layout() layout.Layout { return e.layout }

// Parent returns a copy of the branch item whose level is shown, if nested.
func (e *Engine) Parent() (menu.Item, bool) {
	if e.parent == nil {
		return menu.Item{}, false
	}
	return e.parent.Copy(), true
}

// Generation returns the tag of the most recent transition.
func (e *Engine) Generation() uint64 { return e.generation }

// Open shows the root menu. It is a no-op unless the menu is closed.
func (e *Engine) Open() {
	e.open(nil)
}

// OpenAt shows the root menu centered on the page point (x, y).
func (e *Engine) OpenAt(x, y float64) {
	e.open(&layout.Point{X: x, Y: y})
}

func (e *Engine) open(pos *layout.Point) {
	if e.destroyed || e.state != StateClosed {
		return
	}

	e.stack = nil
	e.position = pos
	e.show(e.root, nil)
	e.current = e.renderer.Render(e.view())

	e.setState(StateOpening)
	e.counter.Increment(EventOpen)
	e.log.Debug("opening menu", "items", len(e.items))

	done := e.beginTransition(EventOpen, func() {
		e.setState(StateOpen)
		e.listenOutside()
	})
	e.renderer.SetPhase(e.current, PhaseActive, done)
}

// DrillIn shows the sub-items of a branch item. It is a no-op unless the menu is open.
func (e *Engine) DrillIn(item menu.Item) {
	if !item.IsBranch() {
		return
	}
	e.drillIn(item.Copy())
}

func (e *Engine) drillIn(item menu.Item) {
	if e.state != StateOpen {
		return
	}

	parentHandle := e.current
	e.stack = append(e.stack, Frame{
		Handle:   parentHandle,
		Items:    e.items,
		Parent:   e.parent,
		Selected: e.selected,
		Layout:   e.layout,
	})

	e.show(item.Items, &item)
	e.current = e.renderer.Render(e.view())

	e.setState(StateTransitioning)
	e.counter.Increment(EventDrillIn)
	e.log.Debug("drilling in", "item", item.ID, "depth", len(e.stack))

	done := e.beginTransition(EventDrillIn, func() {
		e.setState(StateOpen)
	})
	e.renderer.SetPhase(parentHandle, PhaseOuter, nil)
	e.renderer.SetPhase(e.current, PhaseActive, done)
}

// DrillOut returns to the parent level once the nested level has closed.
// It is a no-op at the root level or unless the menu is open.
func (e *Engine) DrillOut() {
	if e.state != StateOpen || len(e.stack) == 0 {
		return
	}

	child := e.current
	parent := e.stack[len(e.stack)-1]

	e.setState(StateTransitioning)
	e.counter.Increment(EventDrillOut)
	e.log.Debug("drilling out", "depth", len(e.stack))

	done := e.beginTransition(EventDrillOut, func() {
		e.renderer.Remove(child)
		e.stack = e.stack[:len(e.stack)-1]
		e.items = parent.Items
		e.parent = parent.Parent
		e.selected = parent.Selected
		e.layout = parent.Layout
		e.current = parent.Handle
		e.setState(StateOpen)
	})
	e.renderer.SetPhase(parent.Handle, PhaseActive, nil)
	e.renderer.SetPhase(child, PhaseInner, done)
}

// Close hides the menu and discards every level once the close transition
// finishes. Closing an already closing menu is ignored. With force set, closing
// a closed menu still runs teardown of anything left behind.
func (e *Engine) Close(force bool) {
	switch e.state {
	case StateClosed:
		if force {
			e.teardown()
		}
		return
	case StateClosing:
		return
	}

	e.cancelTransition()
	for k := len(e.stack) - 1; k >= 0; k-- {
		e.renderer.Remove(e.stack[k].Handle)
	}
	e.stack = nil

	handle := e.current
	e.setState(StateClosing)
	e.log.Debug("closing menu")

	done := e.beginTransition(EventClose, func() {
		e.renderer.Remove(handle)
		e.teardown()
		e.setState(StateClosed)
		e.counter.Increment(EventClose)
		e.log.Debug("menu closed")
		if e.onClose != nil {
			e.onClose()
		}
	})
	e.renderer.SetPhase(handle, PhaseInner, done)
}

// Destroy closes the menu immediately, removes every listener and unmounts
// the container. The engine cannot be reopened. Calling Destroy again is a no-op.
func (e *Engine) Destroy() {
	if e.destroyed {
		return
	}
	e.destroyed = true

	e.cancelTransition()
	for k := len(e.stack) - 1; k >= 0; k-- {
		e.renderer.Remove(e.stack[k].Handle)
	}
	e.stack = nil
	if e.current != 0 {
		e.renderer.Remove(e.current)
	}
	e.teardown()

	for _, unsubscribe := range e.subscriptions {
		unsubscribe()
	}
	e.subscriptions = nil

	e.renderer.Unmount()

	from := e.state
	e.state = StateClosed
	e.notify(from, StateClosed)
	e.log.Debug("menu destroyed")

	// A close in flight still reports completion.
	if from == StateClosing {
		e.counter.Increment(EventClose)
		if e.onClose != nil {
			e.onClose()
		}
	}
}

// SelectDelta moves the selection by delta, wrapping around both ends.
func (e *Engine) SelectDelta(delta int) {
	n := len(e.items)
	if !e.canSelect() || n == 0 {
		return
	}

	index := e.selected
	if index < 0 {
		index = 0
	}
	index = ((index+delta)%n + n) % n
	e.setSelected(index)
}

// SelectIndex selects the item at index. Out of range indexes are ignored.
func (e *Engine) SelectIndex(index int) {
	if !e.canSelect() || index < 0 || index >= len(e.items) {
		return
	}
	e.setSelected(index)
}

// ActivateSelection drills into the selected branch item, or fires the
// selection callback for a leaf item and closes if the policy says so.
func (e *Engine) ActivateSelection() {
	if !e.canSelect() || e.selected < 0 || e.selected >= len(e.items) {
		return
	}

	item := e.items[e.selected]
	if item.IsBranch() {
		e.drillIn(item)
		return
	}

	e.counter.Increment(EventSelect)
	payload := item.Copy()
	if e.onSelect == nil {
		e.log.Warn("selection callback is not configured", "item", item.ID)
	} else {
		e.onSelect(payload)
	}

	if e.closeOnClick {
		if e.closeOnClickHook != nil {
			e.closeOnClickHook(payload)
		}
		e.Close(true)
	}
}

// ActivateCenter drills out when nested, otherwise closes the menu.
func (e *Engine) ActivateCenter() {
	if !e.IsOpen() {
		return
	}
	if len(e.stack) > 0 {
		e.DrillOut()
		return
	}
	e.Close(false)
}

func (e *Engine) canSelect() bool {
	return e.state == StateOpening || e.state == StateOpen
}

// show makes items the current level and recomputes its layout.
func (e *Engine) show(items []menu.Item, parent *menu.Item) {
	e.items = items
	e.parent = parent
	e.layout = layout.Compute(items, e.cfg.MinSectors, layout.Geometry{
		Radius:      e.cfg.Radius,
		InnerRadius: e.cfg.InnerRadius,
		SectorSpace: e.cfg.SectorSpace,
	})
	e.selected = menu.PreselectedIndex(items)
}

func (e *Engine) view() View {
	v := View{
		Layout:   e.layout,
		Items:    e.items,
		Parent:   e.parent,
		Selected: e.selected,
		Depth:    len(e.stack),
	}
	if len(e.stack) == 0 {
		v.Position = e.position
	}
	return v
}

func (e *Engine) setSelected(index int) {
	e.selected = index
	e.renderer.Select(e.current, index)
}

// teardown drops level state and the click-outside listener. Safe to repeat.
func (e *Engine) teardown() {
	e.stopOutside()
	e.current = 0
	e.items = nil
	e.parent = nil
	e.layout = layout.Layout{}
	e.selected = -1
	e.position = nil
}

func (e *Engine) setState(to State) {
	from := e.state
	if from == to {
		return
	}
	if !CanTransition(from, to) {
		e.log.Error("invalid state transition", "from", from, "to", to)
		return
	}
	e.state = to
	e.log.Debug("state changed", "from", from, "to", to)
	e.notify(from, to)
}

func (e *Engine) notify(from, to State) {
	if from == to {
		return
	}
	if o, ok := e.renderer.(StateObserver); ok {
		o.StateChanged(from, to)
	}
	if e.onStateChange != nil {
		e.onStateChange(from, to)
	}
}
