package form

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"leadform/internal/domain/lead"
	"leadform/internal/domain/notification"
	"leadform/internal/domain/reference"
)

// EntitiesFor lists the reference lists a variant's dropdowns need.
func EntitiesFor(variant lead.Variant) []reference.Entity {
	if variant == lead.VariantCareer {
		return []reference.Entity{reference.EntityPais, reference.EntityCarrera}
	}
	return []reference.Entity{reference.EntityPais, reference.EntityProducto, reference.EntityOwner, reference.EntityStatus}
}

// Topics is the subset of the notification hub the registry uses.
type Topics interface {
	Publisher
	Drop(topic string)
}

// Registry keeps open form sessions by id.
type Registry struct {
	submitter Submitter
	loader    *reference.Loader
	topics    Topics
	errorTTL  time.Duration
	log       *logrus.Logger
	now       func() time.Time

	mu    sync.RWMutex
	forms map[string]*Controller
}

func NewRegistry(submitter Submitter, loader *reference.Loader, topics Topics, errorTTL time.Duration, log *logrus.Logger) *Registry {
	return &Registry{
		submitter: submitter,
		loader:    loader,
		topics:    topics,
		errorTTL:  errorTTL,
		log:       log,
		now:       time.Now,
		forms:     make(map[string]*Controller),
	}
}

// Open creates a session and starts loading its reference lists.
func (r *Registry) Open(ctx context.Context) *Controller {
	id := uuid.NewString()

	var board *reference.Board
	if r.loader != nil {
		// Reference loads outlive the request that opened the form.
		board = r.loader.Mount(context.WithoutCancel(ctx), EntitiesFor(r.submitter.Variant())...)
	}

	c := newController(id, r.submitter, r.topics, board, r.errorTTL, r.now)

	r.mu.Lock()
	r.forms[id] = c
	n := len(r.forms)
	r.mu.Unlock()

	openForms.Set(float64(n))
	r.log.WithFields(logrus.Fields{"form_id": id, "variant": r.submitter.Variant()}).Debug("form opened")
	return c
}

func (r *Registry) Get(id string) (*Controller, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.forms[id]
	if !ok {
		return nil, ErrFormNotFound
	}
	return c, nil
}

// Close discards a session. A submit still in flight finishes without publishing.
func (r *Registry) Close(id string) error {
	r.mu.Lock()
	c, ok := r.forms[id]
	if ok {
		delete(r.forms, id)
	}
	n := len(r.forms)
	r.mu.Unlock()

	if !ok {
		return ErrFormNotFound
	}

	c.close()
	openForms.Set(float64(n))
	if r.topics != nil {
		r.topics.Publish(id, notification.Message{Type: notification.TypeClosed, At: r.now()})
		r.topics.Drop(id)
	}
	r.log.WithField("form_id", id).Debug("form closed")
	return nil
}

// CloseIdle closes sessions untouched for longer than maxIdle and returns how many.
func (r *Registry) CloseIdle(maxIdle time.Duration) int {
	cutoff := r.now().Add(-maxIdle)

	r.mu.RLock()
	var stale []string
	for id, c := range r.forms {
		if c.idleSince().Before(cutoff) {
			stale = append(stale, id)
		}
	}
	r.mu.RUnlock()

	closed := 0
	for _, id := range stale {
		if err := r.Close(id); err == nil {
			closed++
		}
	}
	return closed
}

// Len reports open sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.forms)
}
