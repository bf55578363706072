package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/mchmarny/radial-menu/pkg/event"
	"github.com/mchmarny/radial-menu/pkg/layout"
	"github.com/mchmarny/radial-menu/pkg/loop"
	"github.com/mchmarny/radial-menu/pkg/radial"
)

// maxEventBytes caps the size of an /events request body.
const maxEventBytes = 4 << 10

// EventRequest is the body of POST /events. X and Y are in menu coordinates,
// origin at the circle center; when both are set pointer events are hit-tested.
type EventRequest struct {
	Type   string   `json:"type"`
	Key    string   `json:"key,omitempty"`
	DeltaY float64  `json:"deltaY,omitempty"`
	X      *float64 `json:"x,omitempty"`
	Y      *float64 `json:"y,omitempty"`
	Menu   string   `json:"menu,omitempty"`
}

// EventResponse reports whether the event was consumed, plus the resulting state.
type EventResponse struct {
	Snapshot
	Prevented bool `json:"prevented"`
}

// TransitionResponse reports how many held completions fired.
type TransitionResponse struct {
	Snapshot
	Fired int `json:"fired"`
}

// Handler returns the HTTP surface of the session.
func (s *Session) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /menu", s.handleMenu)
	mux.HandleFunc("GET /state", s.handleState)
	mux.HandleFunc("POST /open", s.handleOpen)
	mux.HandleFunc("POST /close", s.handleClose)
	mux.HandleFunc("POST /transitionend", s.handleTransitionEnd)
	mux.HandleFunc("POST /events", s.handleEvents)
	return mux
}

func (s *Session) handleMenu(w http.ResponseWriter, r *http.Request) {
	var markup string
	if err := s.loop.Do(r.Context(), func() { markup = s.renderer.Markup() }); err != nil {
		s.writeLoopError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(markup)); err != nil {
		s.log.Error("failed to write menu markup", "error", err)
	}
}

func (s *Session) handleState(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Snapshot(r.Context())
	if err != nil {
		s.writeLoopError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, snap)
}

func (s *Session) handleOpen(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	xs, ys := q.Get("x"), q.Get("y")

	var pos *layout.Point
	if xs != "" || ys != "" {
		x, errX := strconv.ParseFloat(xs, 64)
		y, errY := strconv.ParseFloat(ys, 64)
		if errX != nil || errY != nil {
			s.writeError(w, http.StatusBadRequest, "x and y must both be numbers")
			return
		}
		pos = &layout.Point{X: x, Y: y}
	}

	s.respond(w, r, func(e *radial.Engine) {
		if pos != nil {
			e.OpenAt(pos.X, pos.Y)
			return
		}
		e.Open()
	})
}

func (s *Session) handleClose(w http.ResponseWriter, r *http.Request) {
	force, _ := strconv.ParseBool(r.URL.Query().Get("force"))
	s.respond(w, r, func(e *radial.Engine) { e.Close(force) })
}

func (s *Session) handleTransitionEnd(w http.ResponseWriter, r *http.Request) {
	var resp TransitionResponse
	err := s.loop.Do(r.Context(), func() {
		resp.Fired = s.renderer.FinishTransitions()
		resp.Snapshot = s.snapshot()
	})
	if err != nil {
		s.writeLoopError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Session) handleEvents(w http.ResponseWriter, r *http.Request) {
	var req EventRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEventBytes))
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid event: %v", err))
		return
	}

	kind, err := parseKind(req.Type)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var resp EventResponse
	err = s.loop.Do(r.Context(), func() {
		resp.Prevented = s.dispatch(kind, req)
		resp.Snapshot = s.snapshot()
	})
	if err != nil {
		s.writeLoopError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// dispatch publishes the event on the bus. A click with coordinates is
// preceded by a pointer-down on the same target, as a browser would deliver it.
func (s *Session) dispatch(kind event.Kind, req EventRequest) bool {
	ev := &event.Event{
		Kind:   kind,
		MenuID: req.Menu,
		Key:    req.Key,
		DeltaY: req.DeltaY,
	}

	if (kind == event.Click || kind == event.PointerDown) && req.X != nil && req.Y != nil {
		ev.MenuID, ev.Target = s.hitTest(layout.Point{X: *req.X, Y: *req.Y})
		if kind == event.Click && ev.Target.Kind == event.TargetSector {
			s.bus.Publish(&event.Event{Kind: event.PointerDown, MenuID: ev.MenuID, Target: ev.Target})
		}
	}

	s.log.Debug("dispatching event", "kind", kind, "menu", ev.MenuID, "target", ev.Target.Kind)
	s.bus.Publish(ev)
	return ev.DefaultPrevented()
}

// hitTest resolves p against the current level. Points inside the menu's
// square but off the ring and center button hit the menu with no target;
// only points beyond the square are outside clicks.
func (s *Session) hitTest(p layout.Point) (string, event.Target) {
	hit := layout.HitTest(s.engine.Layout(), p)
	switch hit.Kind {
	case layout.HitCenter:
		return s.engine.ID(), event.Target{Kind: event.TargetCenter}
	case layout.HitSector:
		index := hit.Sector.Index
		if hit.Sector.IsFiller() {
			index = -1
		}
		return s.engine.ID(), event.Target{Kind: event.TargetSector, Index: index}
	default:
		if half := s.engine.Config().Radius; math.Abs(p.X) <= half && math.Abs(p.Y) <= half {
			return s.engine.ID(), event.Target{Kind: event.TargetNone}
		}
		return "", event.Target{Kind: event.TargetNone}
	}
}

func parseKind(name string) (event.Kind, error) {
	switch strings.ToLower(name) {
	case "key", "keydown":
		return event.Key, nil
	case "wheel":
		return event.Wheel, nil
	case "pointerdown", "mousedown":
		return event.PointerDown, nil
	case "click":
		return event.Click, nil
	default:
		return 0, fmt.Errorf("unknown event type %q", name)
	}
}

func (s *Session) respond(w http.ResponseWriter, r *http.Request, fn func(e *radial.Engine)) {
	var snap Snapshot
	err := s.loop.Do(r.Context(), func() {
		fn(s.engine)
		snap = s.snapshot()
	})
	if err != nil {
		s.writeLoopError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, snap)
}

func (s *Session) writeLoopError(w http.ResponseWriter, err error) {
	if errors.Is(err, loop.ErrStopped) {
		s.writeError(w, http.StatusServiceUnavailable, "menu session stopped")
		return
	}
	s.writeError(w, http.StatusRequestTimeout, err.Error())
}

func (s *Session) writeError(w http.ResponseWriter, status int, message string) {
	s.log.Error("handling error response",
		"status", status,
		"message", message,
	)
	s.writeJSON(w, status, map[string]string{"error": message})
}

func (s *Session) writeJSON(w http.ResponseWriter, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		s.log.Error("failed to marshal JSON response", "error", err)
		http.Error(w, "error, see logs for details", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		s.log.Error("failed to write JSON response", "error", err)
		return
	}
	s.log.Debug("json response sent", "status", status)
}
