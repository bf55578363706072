// Package svg renders menu levels into an SVG element tree that a host page
// can serve as markup and style through class names.
package svg

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mchmarny/radial-menu/pkg/config"
	"github.com/mchmarny/radial-menu/pkg/layout"
	"github.com/mchmarny/radial-menu/pkg/menu"
	"github.com/mchmarny/radial-menu/pkg/radial"
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithImmediateTransitions makes every phase change complete synchronously,
// for hosts that do not animate.
func WithImmediateTransitions() Option {
	return func(r *Renderer) {
		r.immediate = true
	}
}

type level struct {
	el      *Element
	sectors map[int]*Element
	items   []menu.Item
}

// Renderer implements radial.Renderer and radial.StateObserver.
// It is not safe for concurrent use; drive it from the engine's goroutine.
type Renderer struct {
	cfg       config.LayoutConfig
	container *Element
	levels    map[radial.Handle]*level
	pending   map[radial.Handle]func()
	next      radial.Handle
	immediate bool
}

// New creates a renderer for menus resolved with cfg.
func New(cfg config.LayoutConfig, opts ...Option) *Renderer {
	r := &Renderer{
		cfg:     cfg,
		levels:  make(map[radial.Handle]*level),
		pending: make(map[radial.Handle]func()),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Mount creates the container holding the icon sprite.
func (r *Renderer) Mount(id string, size int) {
	px := strconv.Itoa(size) + "px"
	r.container = NewElement("div",
		"id", id,
		"class", joinClass(r.cfg.Classes.Container, r.cfg.Classes.Closed),
		"style", "width:"+px+";height:"+px,
	)
	r.container.Append(iconSymbols(r.cfg.Classes.Icons))
}

// Render builds the level collapsed toward the center.
func (r *Renderer) Render(v radial.View) radial.Handle {
	r.next++
	h := r.next

	g := v.Layout.Geometry
	radius := layout.FormatNumber(g.Radius)
	size := strconv.Itoa(r.cfg.Size)

	el := NewElement("svg",
		"class", r.menuClass(radial.PhaseInner),
		"xmlns", "http://www.w3.org/2000/svg",
		"viewBox", strings.Join([]string{"-" + radius, "-" + radius, layout.FormatNumber(2 * g.Radius), layout.FormatNumber(2 * g.Radius)}, " "),
		"width", size,
		"height", size,
		"data-depth", strconv.Itoa(v.Depth),
	)
	if v.Position != nil {
		half := float64(r.cfg.Size) / 2
		el.Set("style", fmt.Sprintf("position:absolute;left:%spx;top:%spx",
			layout.FormatNumber(v.Position.X-half), layout.FormatNumber(v.Position.Y-half)))
	}

	lvl := &level{el: el, sectors: make(map[int]*Element), items: v.Items}
	for _, s := range v.Layout.Sectors {
		group := r.sector(s, v.Selected)
		if !s.IsFiller() {
			lvl.sectors[s.Index] = group
		}
		el.Append(group)
	}
	el.Append(r.center(g, v.Parent))

	r.levels[h] = lvl
	if r.container != nil {
		r.container.Append(el)
	}
	return h
}

// SetPhase swaps the level's phase class. The completion is held until
// FinishTransitions unless transitions are immediate.
func (r *Renderer) SetPhase(h radial.Handle, p radial.Phase, done func()) {
	lvl, ok := r.levels[h]
	if !ok {
		return
	}
	lvl.el.Set("class", r.menuClass(p))

	if done == nil {
		return
	}
	if r.immediate {
		done()
		return
	}
	r.pending[h] = done
}

// Select moves the selected class to index.
func (r *Renderer) Select(h radial.Handle, index int) {
	lvl, ok := r.levels[h]
	if !ok {
		return
	}
	for i, group := range lvl.sectors {
		group.Set("class", r.sectorClass(&lvl.items[i], i == index))
	}
}

// Remove detaches the level; unknown handles are ignored.
func (r *Renderer) Remove(h radial.Handle) {
	lvl, ok := r.levels[h]
	if !ok {
		return
	}
	if r.container != nil {
		r.container.RemoveChild(lvl.el)
	}
	delete(r.levels, h)
	delete(r.pending, h)
}

// Unmount drops the container and every level.
func (r *Renderer) Unmount() {
	r.container = nil
	r.levels = make(map[radial.Handle]*level)
	r.pending = make(map[radial.Handle]func())
}

// StateChanged toggles the container between the open and closed classes.
func (r *Renderer) StateChanged(_, to radial.State) {
	if r.container == nil {
		return
	}
	class := r.cfg.Classes.Open
	if to == radial.StateClosing || to == radial.StateClosed {
		class = r.cfg.Classes.Closed
	}
	r.container.Set("class", joinClass(r.cfg.Classes.Container, class))
}

// FinishTransitions fires every held completion in handle order, as the
// host's transition-end events would, and returns how many fired.
func (r *Renderer) FinishTransitions() int {
	handles := make([]radial.Handle, 0, len(r.pending))
	for h := range r.pending {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })

	fired := 0
	for _, h := range handles {
		done, ok := r.pending[h]
		if !ok {
			continue
		}
		delete(r.pending, h)
		done()
		fired++
	}
	return fired
}

// Pending returns the number of held completions.
func (r *Renderer) Pending() int {
	return len(r.pending)
}

// Container returns the mounted root element, or nil.
func (r *Renderer) Container() *Element {
	return r.container
}

// Level returns the element of a rendered level.
func (r *Renderer) Level(h radial.Handle) (*Element, bool) {
	lvl, ok := r.levels[h]
	if !ok {
		return nil, false
	}
	return lvl.el, true
}

// Markup returns the container markup, or an empty string before Mount.
func (r *Renderer) Markup() string {
	if r.container == nil {
		return ""
	}
	return r.container.String()
}

func (r *Renderer) sector(s layout.Sector, selected int) *Element {
	group := NewElement("g",
		"transform", "translate("+layout.FormatNumber(s.Translate.X)+" "+layout.FormatNumber(s.Translate.Y)+") scale("+layout.FormatNumber(s.Scale)+")",
	)
	group.Append(NewElement("path", "d", s.Path))

	if s.IsFiller() {
		group.Set("class", r.cfg.Classes.Disabled)
		return group
	}

	item := s.Item
	group.Set("class", r.sectorClass(item, s.Index == selected))
	group.Set("data-id", item.ID)
	group.Set("data-index", strconv.Itoa(s.Index))

	cx := layout.FormatNumber(s.Center.X)
	cy := layout.FormatNumber(s.Center.Y)

	if item.Title != "" {
		fontSize := item.FontSize
		if fontSize == "" {
			fontSize = r.cfg.FontSize
		}
		text := NewElement("text",
			"x", cx,
			"y", cy,
			"font-size", fontSize,
			"text-anchor", "middle",
		)
		if item.Icon != "" {
			text.Set("transform", "translate(0 8)")
		} else {
			text.Set("transform", "translate(0 2)")
		}
		text.Text = item.Title
		group.Append(text)
	}

	if item.Icon != "" {
		use := NewElement("use",
			"href", item.Icon,
			"x", cx,
			"y", cy,
			"width", "10",
			"height", "10",
		)
		if item.Title != "" {
			use.Set("transform", "translate(-5 -8)")
		} else {
			use.Set("transform", "translate(-5 -5)")
		}
		group.Append(use)
	}

	return group
}

func (r *Renderer) center(g layout.Geometry, parent *menu.Item) *Element {
	group := NewElement("g", "class", r.cfg.Classes.Center)
	group.Append(NewElement("circle",
		"cx", "0",
		"cy", "0",
		"r", layout.FormatNumber(layout.CenterRadius(g)),
	))

	icon, size := r.cfg.Icons.Close, r.cfg.Icons.CloseSize
	if parent != nil {
		icon, size = r.cfg.Icons.Back, r.cfg.Icons.BackSize
		if r.cfg.Nested.UseParentIcon && parent.Icon != "" {
			icon = parent.Icon
		}
		if r.cfg.Nested.Title && parent.Title != "" {
			title := NewElement("text",
				"x", "0",
				"y", layout.FormatNumber(size),
				"font-size", r.cfg.FontSize,
				"text-anchor", "middle",
			)
			title.Text = parent.Title
			group.Append(title)
		}
	}

	if icon != "" {
		group.Append(NewElement("use",
			"href", icon,
			"width", layout.FormatNumber(size),
			"height", layout.FormatNumber(size),
			"transform", "translate("+layout.FormatNumber(-size/2)+" "+layout.FormatNumber(-size/2)+")",
		))
	}

	return group
}

func (r *Renderer) menuClass(p radial.Phase) string {
	switch p {
	case radial.PhaseInner:
		return joinClass(r.cfg.Classes.Menu, r.cfg.Classes.Inner)
	case radial.PhaseOuter:
		return joinClass(r.cfg.Classes.Menu, r.cfg.Classes.Outer)
	default:
		return r.cfg.Classes.Menu
	}
}

func (r *Renderer) sectorClass(item *menu.Item, selected bool) string {
	classes := []string{r.cfg.Classes.Sector}
	if item.IsBranch() {
		classes = append(classes, r.cfg.Classes.Nested)
	}
	if selected {
		classes = append(classes, r.cfg.Classes.Selected)
	}
	return joinClass(classes...)
}

func joinClass(names ...string) string {
	out := names[:0:0]
	for _, n := range names {
		if n != "" {
			out = append(out, n)
		}
	}
	return strings.Join(out, " ")
}
