package windows

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/samber/lo"
)

const sendTimeout = 5 * time.Second

type Relation int

const (
	// RefocusParent focuses Target when Source is destroyed.
	RefocusParent Relation = iota
	// CascadeClose closes Target when Source receives a close request.
	CascadeClose
	// PairFocus focuses Target when Source gains focus.
	PairFocus
)

func (r Relation) trigger() EventKind {
	switch r {
	case RefocusParent:
		return EventDestroyed
	case CascadeClose:
		return EventCloseRequested
	default:
		return EventFocused
	}
}

// Subscription is one standing relation between two windows.
type Subscription struct {
	Source   string
	Target   string
	Relation Relation
}

type observer struct {
	navigate       chan<- string
	closeRequested chan<- struct{}
}

type action struct {
	target   string
	relation Relation
}

// Router reacts to window events on behalf of related windows. Targets are
// resolved through the registry when an action runs, so windows that are
// already gone are skipped.
type Router struct {
	mu        sync.Mutex
	subs      []Subscription
	observers map[string]observer

	registry *Registry
	tasks    *Tasks
	logger   *slog.Logger
}

func NewRouter(registry *Registry, tasks *Tasks, logger *slog.Logger) *Router {
	return &Router{
		observers: make(map[string]observer),
		registry:  registry,
		tasks:     tasks,
		logger:    logger,
	}
}

// Link installs the parent/child relations.
func (r *Router) Link(parent, child string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.add(Subscription{Source: child, Target: parent, Relation: RefocusParent})
	r.add(Subscription{Source: parent, Target: child, Relation: CascadeClose})
	r.add(Subscription{Source: parent, Target: child, Relation: PairFocus})
}

func (r *Router) add(s Subscription) {
	if lo.Contains(r.subs, s) {
		return
	}
	r.subs = append(r.subs, s)
}

// Observe forwards navigation and close requests for label to the channels
// that are non-nil.
func (r *Router) Observe(label string, navigate chan<- string, closeRequested chan<- struct{}) {
	if navigate == nil && closeRequested == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers[label] = observer{navigate: navigate, closeRequested: closeRequested}
}

// Forget drops every relation and observer involving label.
func (r *Router) Forget(label string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs = lo.Reject(r.subs, func(s Subscription, _ int) bool {
		return s.Source == label || s.Target == label
	})
	delete(r.observers, label)
}

func (r *Router) Subscriptions() []Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Subscription(nil), r.subs...)
}

func (r *Router) Route(ev Event) {
	actions, obs := r.match(ev)

	switch ev.Kind {
	case EventNavigation:
		if obs.navigate != nil {
			r.tasks.Go("navigation "+ev.Label, func(ctx context.Context) error {
				return sendWithin(ctx, obs.navigate, ev.URL)
			})
		}
	case EventCloseRequested:
		if obs.closeRequested != nil {
			r.tasks.Go("close "+ev.Label, func(ctx context.Context) error {
				return sendWithin(ctx, obs.closeRequested, struct{}{})
			})
		}
	}

	for _, a := range actions {
		r.apply(ev, a)
	}
}

func (r *Router) match(ev Event) ([]action, observer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ev.Kind == EventFocused && !ev.Focused {
		return nil, r.observers[ev.Label]
	}

	var actions []action
	for _, s := range r.subs {
		if s.Source == ev.Label && s.Relation.trigger() == ev.Kind {
			actions = append(actions, action{target: s.Target, relation: s.Relation})
		}
	}
	return actions, r.observers[ev.Label]
}

func (r *Router) apply(ev Event, a action) {
	target, ok := r.registry.Lookup(a.target)
	if !ok {
		r.logger.Debug("related window gone, skipping", "source", ev.Label, "target", a.target)
		return
	}

	var err error
	switch a.relation {
	case CascadeClose:
		r.logger.Debug("closing child with parent", "parent", ev.Label, "child", a.target)
		err = target.Close()
	default:
		err = target.Focus()
	}
	if err != nil {
		r.logger.Debug("related window action failed", "target", a.target, "error", err)
	}
}

func sendWithin[T any](ctx context.Context, ch chan<- T, v T) error {
	timer := time.NewTimer(sendTimeout)
	defer timer.Stop()
	select {
	case ch <- v:
		return nil
	case <-timer.C:
		return fmt.Errorf("send timed out after %s", sendTimeout)
	case <-ctx.Done():
		return ctx.Err()
	}
}
