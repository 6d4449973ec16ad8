// Package lifecycle translates host-reported foreground/background phase
// changes into persistence triggers.
package lifecycle

import (
	"sync"

	"jokebox/pkg/logger"
)

type Phase string

const (
	PhaseActive     Phase = "active"
	PhaseInactive   Phase = "inactive"
	PhaseBackground Phase = "background"
)

// Observer receives phase transitions from the host environment. Only the
// edge into PhaseBackground has a side effect: the registered hooks run,
// in order. Transitions into active or inactive are logged only.
type Observer struct {
	mu           sync.Mutex
	phase        Phase
	onBackground []func()
}

func NewObserver() *Observer {
	return &Observer{phase: PhaseActive}
}

// OnBackground registers a hook to run when the app enters the background
// phase.
func (o *Observer) OnBackground(fn func()) {
	o.mu.Lock()
	o.onBackground = append(o.onBackground, fn)
	o.mu.Unlock()
}

// Phase returns the last observed phase.
func (o *Observer) Phase() Phase {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.phase
}

// Notify records a phase transition. Re-notifying the current phase is a
// no-op, so staying backgrounded never re-runs the hooks.
func (o *Observer) Notify(phase Phase) {
	o.mu.Lock()
	if phase == o.phase {
		o.mu.Unlock()
		return
	}
	o.phase = phase
	hooks := o.onBackground
	o.mu.Unlock()

	logger.Info("Lifecycle transition", logger.String("phase", string(phase)))

	if phase != PhaseBackground {
		return
	}
	for _, fn := range hooks {
		fn()
	}
}
