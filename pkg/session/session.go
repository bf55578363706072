// Package session exposes one radial menu instance over HTTP. The engine, its
// SVG renderer and the event bus are owned by a single event loop; every
// request is marshalled onto that loop.
package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mchmarny/radial-menu/pkg/config"
	"github.com/mchmarny/radial-menu/pkg/event"
	"github.com/mchmarny/radial-menu/pkg/loop"
	"github.com/mchmarny/radial-menu/pkg/menu"
	"github.com/mchmarny/radial-menu/pkg/metric"
	"github.com/mchmarny/radial-menu/pkg/radial"
	"github.com/mchmarny/radial-menu/pkg/svg"
)

// Option configures a Session.
type Option func(*Session)

// WithID sets the menu instance id.
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

// WithLogger sets the logger used by the session and its engine.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithCounter sets the navigation event counter.
func WithCounter(c metric.IncrementalCounter) Option {
	return func(s *Session) { s.counter = c }
}

// WithOnSelect is called on the loop with every selected leaf item.
func WithOnSelect(fn func(item menu.Item)) Option {
	return func(s *Session) { s.onSelect = fn }
}

// WithQueueSize sets the loop's queue size.
func WithQueueSize(n int) Option {
	return func(s *Session) { s.queueSize = n }
}

// WithImmediateTransitions completes every transition without waiting for /transitionend.
func WithImmediateTransitions() Option {
	return func(s *Session) { s.immediate = true }
}

// Session owns one engine and everything that drives it.
type Session struct {
	id        string
	log       *slog.Logger
	counter   metric.IncrementalCounter
	onSelect  func(menu.Item)
	queueSize int
	immediate bool

	loop     *loop.Loop
	bus      *event.Bus
	engine   *radial.Engine
	renderer *svg.Renderer

	// Only touched on the loop.
	last   *menu.Item
	closes int
}

// New builds the session. The engine is created closed; call Run to start the loop.
func New(items []menu.Item, cfg config.LayoutConfig, opts ...Option) (*Session, error) {
	s := &Session{
		log: slog.Default(),
		bus: event.NewBus(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.loop = loop.New(s.queueSize)

	var ropts []svg.Option
	if s.immediate {
		ropts = append(ropts, svg.WithImmediateTransitions())
	}
	s.renderer = svg.New(cfg, ropts...)

	eopts := []radial.Option{
		radial.WithRenderer(s.renderer),
		radial.WithScheduler(s.loop),
		radial.WithEventSource(s.bus),
		radial.WithLogger(s.log),
		radial.WithOnSelect(s.selected),
		radial.WithOnClose(func() { s.closes++ }),
	}
	if s.id != "" {
		eopts = append(eopts, radial.WithID(s.id))
	}
	if s.counter != nil {
		eopts = append(eopts, radial.WithCounter(s.counter))
	}

	e, err := radial.New(items, cfg, eopts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create menu: %w", err)
	}
	s.engine = e

	return s, nil
}

// ID returns the menu instance id.
func (s *Session) ID() string {
	return s.engine.ID()
}

// Run drives the loop until ctx is canceled, then destroys the engine.
func (s *Session) Run(ctx context.Context) error {
	s.log.Info("menu session started", "menu", s.engine.ID())
	err := s.loop.Run(ctx)
	s.engine.Destroy()
	s.log.Info("menu session stopped", "menu", s.engine.ID())
	return err
}

// Do runs fn on the loop with the engine and waits for it.
func (s *Session) Do(ctx context.Context, fn func(e *radial.Engine)) error {
	return s.loop.Do(ctx, func() { fn(s.engine) })
}

// Snapshot returns the current state, read on the loop.
func (s *Session) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	err := s.loop.Do(ctx, func() { snap = s.snapshot() })
	return snap, err
}

func (s *Session) selected(item menu.Item) {
	s.last = &item
	if s.onSelect != nil {
		s.onSelect(item)
	}
}

// Snapshot is the observable state of the menu.
type Snapshot struct {
	ID           string      `json:"id"`
	State        string      `json:"state"`
	Depth        int         `json:"depth"`
	Selected     int         `json:"selected"`
	Pending      bool        `json:"pending"`
	Closes       int         `json:"closes"`
	Items        []menu.Item `json:"items"`
	Parent       *menu.Item  `json:"parent,omitempty"`
	LastSelected *menu.Item  `json:"lastSelected,omitempty"`
}

func (s *Session) snapshot() Snapshot {
	e := s.engine
	snap := Snapshot{
		ID:       e.ID(),
		State:    e.State().String(),
		Depth:    e.Depth(),
		Selected: e.Selected(),
		Pending:  e.Pending(),
		Closes:   s.closes,
		Items:    e.Items(),
	}
	if snap.Items == nil {
		snap.Items = []menu.Item{}
	}
	if p, ok := e.Parent(); ok {
		snap.Parent = &p
	}
	if s.last != nil {
		last := s.last.Copy()
		snap.LastSelected = &last
	}
	return snap
}
