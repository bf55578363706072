package radial

// transition is a pending asynchronous state change. It settles at most once,
// either from the renderer's completion or from the fallback timer, and only
// while its generation is still the current one.
type transition struct {
	name   string
	gen    uint64
	finish func()
	cancel func()
}

// beginTransition supersedes any pending transition and schedules finish.
// The returned function is the completion to hand to the renderer.
func (e *Engine) beginTransition(name string, finish func()) func() {
	e.cancelTransition()

	e.generation++
	t := &transition{
		name:   name,
		gen:    e.generation,
		finish: finish,
	}
	e.pending = t

	t.cancel = e.scheduler.After(e.cfg.TransitionFallback, func() {
		if e.settle(t.gen) {
			e.counter.Increment(EventFallback)
			e.log.Debug("transition settled by fallback", "transition", t.name, "generation", t.gen)
		}
	})

	return func() { e.settle(t.gen) }
}

// settle runs the pending transition if gen is current. Completions of
// superseded or already settled transitions are dropped.
func (e *Engine) settle(gen uint64) bool {
	t := e.pending
	if t == nil || t.gen != gen {
		e.counter.Increment(EventStale)
		e.log.Debug("stale transition completion ignored", "generation", gen, "current", e.generation)
		return false
	}

	e.pending = nil
	if t.cancel != nil {
		t.cancel()
	}
	t.finish()
	return true
}

// cancelTransition drops the pending transition without running it.
func (e *Engine) cancelTransition() {
	t := e.pending
	if t == nil {
		return
	}
	e.pending = nil
	if t.cancel != nil {
		t.cancel()
	}
	e.log.Debug("transition superseded", "transition", t.name, "generation", t.gen)
}

// Pending reports whether a transition is waiting for completion.
func (e *Engine) Pending() bool {
	return e.pending != nil
}
