package radial

import (
	"time"

	"github.com/mchmarny/radial-menu/pkg/layout"
	"github.com/mchmarny/radial-menu/pkg/menu"
)

// Handle identifies one rendered menu level. The zero Handle is never issued.
type Handle int

// Phase is the visual phase of a rendered menu level.
type Phase int

const (
	// PhaseInner is collapsed toward the center: freshly built, or closing.
	PhaseInner Phase = iota
	// PhaseActive is the visible, interactive level.
	PhaseActive
	// PhaseOuter is a parent level receding behind a nested menu.
	PhaseOuter
)

func (p Phase) String() string {
	switch p {
	case PhaseInner:
		return "inner"
	case PhaseActive:
		return "active"
	case PhaseOuter:
		return "outer"
	default:
		return "unknown"
	}
}

// View is everything a renderer needs to draw one menu level.
type View struct {
	Layout   layout.Layout
	Items    []menu.Item
	Parent   *menu.Item
	Selected int
	Depth    int

	// Position is the page point the menu is centered on; nil keeps the host's placement.
	Position *layout.Point
}

// Renderer draws menu levels. The engine only writes to it and never reads
// state back; completion of a phase change is reported through done.
type Renderer interface {
	// Mount creates the container for the menu instance.
	Mount(id string, size int)

	// Render builds a level in PhaseInner and returns its handle.
	Render(v View) Handle

	// SetPhase moves a level to phase p. When done is not nil the renderer calls it
	// once the visual transition has finished; it may call it more than once, or never.
	SetPhase(h Handle, p Phase, done func())

	// Select marks the item index as the level's selection.
	Select(h Handle, index int)

	// Remove discards a level. Unknown or already removed handles are ignored.
	Remove(h Handle)

	// Unmount discards the container.
	Unmount()
}

// StateObserver is implemented by renderers that want explicit state-change notifications.
type StateObserver interface {
	StateChanged(from, to State)
}

// Scheduler runs deferred callbacks on the engine's goroutine.
type Scheduler interface {
	After(d time.Duration, fn func()) (cancel func())
}

type discardRenderer struct {
	next Handle
}

func (r *discardRenderer) Mount(string, int) {}

func (r *discardRenderer) Render(View) Handle {
	r.next++
	return r.next
}

func (r *discardRenderer) SetPhase(_ Handle, _ Phase, done func()) {
	if done != nil {
		done()
	}
}

func (r *discardRenderer) Select(Handle, int) {}
func (r *discardRenderer) Remove(Handle)      {}
func (r *discardRenderer) Unmount()           {}

type noScheduler struct{}

func (noScheduler) After(time.Duration, func()) func() { return func() {} }
