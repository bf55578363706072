package radial

import (
	"bytes"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/mchmarny/radial-menu/pkg/config"
	"github.com/mchmarny/radial-menu/pkg/event"
	"github.com/mchmarny/radial-menu/pkg/menu"
)

// recordingRenderer remembers every call and holds completions until the test fires them.
type recordingRenderer struct {
	next      Handle
	mountedID string
	unmounted bool
	views     map[Handle]View
	phases    map[Handle]Phase
	dones     map[Handle]func()
	selected  map[Handle]int
	removed   []Handle
	renders   int
	states    []State
}

func newRecordingRenderer() *recordingRenderer {
	return &recordingRenderer{
		views:    make(map[Handle]View),
		phases:   make(map[Handle]Phase),
		dones:    make(map[Handle]func()),
		selected: make(map[Handle]int),
	}
}

func (r *recordingRenderer) Mount(id string, _ int) { r.mountedID = id }

func (r *recordingRenderer) Render(v View) Handle {
	r.next++
	r.renders++
	r.views[r.next] = v
	r.phases[r.next] = PhaseInner
	r.selected[r.next] = v.Selected
	return r.next
}

func (r *recordingRenderer) SetPhase(h Handle, p Phase, done func()) {
	r.phases[h] = p
	if done != nil {
		r.dones[h] = done
	}
}

func (r *recordingRenderer) Select(h Handle, index int) { r.selected[h] = index }

func (r *recordingRenderer) Remove(h Handle) {
	if _, ok := r.views[h]; !ok {
		return
	}
	delete(r.views, h)
	r.removed = append(r.removed, h)
}

func (r *recordingRenderer) Unmount() { r.unmounted = true }

func (r *recordingRenderer) StateChanged(_, to State) { r.states = append(r.states, to) }

// finish fires the held completion of h, as a transition-end event would.
func (r *recordingRenderer) finish(t *testing.T, h Handle) {
	t.Helper()
	done, ok := r.dones[h]
	if !ok {
		t.Fatalf("no pending completion for handle %d", h)
	}
	delete(r.dones, h)
	done()
}

func (r *recordingRenderer) mounted() []Handle {
	out := make([]Handle, 0, len(r.views))
	for h := range r.views {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// manualScheduler is a virtual clock; timers fire only from Advance.
type manualScheduler struct {
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	at       time.Duration
	fn       func()
	canceled bool
}

func (s *manualScheduler) After(d time.Duration, fn func()) func() {
	t := &manualTimer{at: s.now + d, fn: fn}
	s.timers = append(s.timers, t)
	return func() { t.canceled = true }
}

func (s *manualScheduler) Advance(d time.Duration) {
	s.now += d
	for {
		var due *manualTimer
		for _, t := range s.timers {
			if !t.canceled && t.at <= s.now && (due == nil || t.at < due.at) {
				due = t
			}
		}
		if due == nil {
			return
		}
		due.canceled = true
		due.fn()
	}
}

func (s *manualScheduler) live() int {
	n := 0
	for _, t := range s.timers {
		if !t.canceled {
			n++
		}
	}
	return n
}

func demoItems() []menu.Item {
	return []menu.Item{
		{ID: "walk", Title: "Walk", Icon: "#walk"},
		{ID: "run", Title: "Run", Icon: "#run"},
		{ID: "drive", Title: "Drive", Icon: "#drive", Selected: true},
		{ID: "fight", Title: "Fight", Icon: "#fight"},
		{ID: "more", Title: "More...", Icon: "#more", Items: []menu.Item{
			{ID: "eat", Title: "Eat"},
			{ID: "sleep", Title: "Sleep", Selected: true},
			{ID: "shower", Title: "Take Shower"},
			{ID: "workout", Title: "Work Out"},
		}},
		{ID: "weapon", Title: "Weapon...", Items: []menu.Item{
			{ID: "firearm", Title: "Firearm...", Items: []menu.Item{
				{ID: "glock", Title: "Glock 22"},
				{ID: "tt", Title: "TT"},
			}},
			{ID: "knife", Title: "Knife"},
		}},
	}
}

type harness struct {
	e     *Engine
	r     *recordingRenderer
	s     *manualScheduler
	bus   *event.Bus
	logs  *bytes.Buffer
	picks []menu.Item
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()

	h := &harness{
		r:    newRecordingRenderer(),
		s:    &manualScheduler{},
		bus:  event.NewBus(),
		logs: &bytes.Buffer{},
	}

	base := []Option{
		WithID("menu-1"),
		WithRenderer(h.r),
		WithScheduler(h.s),
		WithEventSource(h.bus),
		WithLogger(slog.New(slog.NewTextHandler(h.logs, &slog.HandlerOptions{Level: slog.LevelWarn}))),
		WithOnSelect(func(item menu.Item) { h.picks = append(h.picks, item) }),
	}

	e, err := New(demoItems(), config.Default(), append(base, opts...)...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	h.e = e
	return h
}

// openSettled opens the root menu and completes its open transition.
func (h *harness) openSettled(t *testing.T) {
	t.Helper()
	h.e.Open()
	h.r.finish(t, h.e.current)
	if h.e.State() != StateOpen {
		t.Fatalf("state = %s after open, want open", h.e.State())
	}
}

// indexOf returns the index of id in the current level.
func (h *harness) indexOf(t *testing.T, id string) int {
	t.Helper()
	for k, it := range h.e.Items() {
		if it.ID == id {
			return k
		}
	}
	t.Fatalf("item %q not in current level", id)
	return -1
}
