package reference

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// State is the view of one reference list: its options, whether a fetch is pending, and a
// user-facing error when the last fetch failed.
type State struct {
	Entity    Entity `json:"entity"`
	Data      []Item `json:"data"`
	IsLoading bool   `json:"is_loading"`
	Error     string `json:"error,omitempty"`
}

// Loader turns Source results into States. It never returns an error.
type Loader struct {
	source Source
	log    *logrus.Logger
}

func NewLoader(source Source, log *logrus.Logger) *Loader {
	return &Loader{source: source, log: log}
}

// Load fetches entity once. On failure Data is empty and Error holds the message.
func (l *Loader) Load(ctx context.Context, entity Entity) State {
	items, err := l.source.Fetch(ctx, entity)
	if err != nil {
		fetchTotal.WithLabelValues(string(entity), "error").Inc()
		l.log.WithError(err).WithField("entity", entity).Warn("reference load failed")
		return State{
			Entity: entity,
			Data:   []Item{},
			Error:  "Error al cargar " + entity.Plural(),
		}
	}

	fetchTotal.WithLabelValues(string(entity), "ok").Inc()
	if items == nil {
		items = []Item{}
	}
	return State{Entity: entity, Data: items}
}

// Mount starts one concurrent Load per entity and returns immediately.
func (l *Loader) Mount(ctx context.Context, entities ...Entity) *Board {
	b := &Board{
		order:  entities,
		states: make(map[Entity]State, len(entities)),
		done:   make(chan struct{}),
	}
	for _, e := range entities {
		b.states[e] = State{Entity: e, Data: []Item{}, IsLoading: true}
	}

	var g errgroup.Group
	for _, e := range entities {
		e := e
		g.Go(func() error {
			b.set(l.Load(ctx, e))
			return nil
		})
	}
	go func() {
		_ = g.Wait()
		close(b.done)
	}()

	return b
}

// Board holds the States of a set of concurrently loading lists.
type Board struct {
	order []Entity
	done  chan struct{}

	mu     sync.RWMutex
	states map[Entity]State
}

func (b *Board) set(s State) {
	b.mu.Lock()
	b.states[s.Entity] = s
	b.mu.Unlock()
}

// State returns the current state of one entity.
func (b *Board) State(entity Entity) (State, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	s, ok := b.states[entity]
	return s, ok
}

// Snapshot returns every state in mount order.
func (b *Board) Snapshot() []State {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]State, 0, len(b.order))
	for _, e := range b.order {
		out = append(out, b.states[e])
	}
	return out
}

// Done is closed once every fetch has finished.
func (b *Board) Done() <-chan struct{} {
	return b.done
}

// Wait blocks until every fetch has finished or ctx ends, then returns the snapshot.
func (b *Board) Wait(ctx context.Context) []State {
	select {
	case <-b.done:
	case <-ctx.Done():
	}
	return b.Snapshot()
}
