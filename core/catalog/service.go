package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/masomo-timetable/core"
)

const defaultPersistTimeout = 5 * time.Second

type (
	// Store is the key-value namespace the catalog axes are persisted in.
	// Each key holds an ordered list of labels.
	Store interface {
		// Get returns ErrKeyNotFound when nothing was saved under key.
		Get(ctx context.Context, key string) ([]string, error)
		Set(ctx context.Context, key string, values []string) error
	}

	// Service loads catalogs and applies mutations to them.
	// Mutating methods never modify the given Catalog: they return an updated copy
	// and persist it.
	Service interface {
		Load(ctx context.Context) (Catalog, error)
		AddDay(ctx context.Context, cat Catalog, label string) (Catalog, error)
		RemoveDay(ctx context.Context, cat Catalog, label string) (Catalog, error)
		AddSlot(ctx context.Context, cat Catalog, label string) (Catalog, error)
		AddSlotRange(ctx context.Context, cat Catalog, ns NewSlot) (Catalog, error)
		RemoveSlot(ctx context.Context, cat Catalog, label string) (Catalog, error)
	}

	service struct {
		store    Store
		logger   core.Logger
		defaults Catalog
		timeout  time.Duration
		persist  func(Catalog)
		saveMu   sync.Mutex // one save at a time
	}
)

var _ Service = (*service)(nil) // interface compliance check

// NewService returns a Service persisting catalogs in the background: mutations
// return without waiting for the Store. A single goroutine saves catalogs in
// mutation order; when several are queued behind a slow save only the newest is written.
// defaults is used for any axis the Store has no value for.
func NewService(store Store, logger core.Logger, defaults Catalog, timeout time.Duration) Service {
	svc := newService(store, logger, defaults, timeout)
	w := newBackgroundWriter(svc.save)
	svc.persist = w.enqueue
	return svc
}

// NewSyncService returns a Service persisting catalogs before returning from mutations.
// Used by short-lived processes and tests.
func NewSyncService(store Store, logger core.Logger, defaults Catalog, timeout time.Duration) Service {
	svc := newService(store, logger, defaults, timeout)
	svc.persist = svc.save
	return svc
}

func newService(store Store, logger core.Logger, defaults Catalog, timeout time.Duration) *service {
	if timeout <= 0 {
		timeout = defaultPersistTimeout
	}
	return &service{
		store:    store,
		logger:   logger,
		defaults: defaults.Clone(),
		timeout:  timeout,
	}
}

// backgroundWriter hands catalogs to save on its own goroutine, newest wins.
type backgroundWriter struct {
	mu   sync.Mutex
	next *Catalog
	wake chan struct{}
}

func newBackgroundWriter(save func(Catalog)) *backgroundWriter {
	w := &backgroundWriter{wake: make(chan struct{}, 1)}
	go w.run(save)
	return w
}

func (w *backgroundWriter) enqueue(cat Catalog) {
	cat = cat.Clone()
	w.mu.Lock()
	w.next = &cat
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default: // a wake-up is already pending and will pick up the newest catalog
	}
}

func (w *backgroundWriter) run(save func(Catalog)) {
	for range w.wake {
		w.mu.Lock()
		cat := w.next
		w.next = nil
		w.mu.Unlock()

		if cat != nil {
			save(*cat)
		}
	}
}

func (svc *service) save(cat Catalog) {
	svc.saveMu.Lock()
	defer svc.saveMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), svc.timeout)
	defer cancel()

	if err := svc.store.Set(ctx, DaysKey, cat.Days()); err != nil {
		svc.logger.Error(fmt.Sprintf("saving catalog days: %v", err), errors.Wrap(err, "saving catalog days"))
		return
	}
	if err := svc.store.Set(ctx, SlotsKey, cat.slots); err != nil {
		svc.logger.Error(fmt.Sprintf("saving catalog slots: %v", err), errors.Wrap(err, "saving catalog slots"))
	}
}

func (svc *service) loadAxis(ctx context.Context, key string, fallback []string) ([]string, error) {
	labels, err := svc.store.Get(ctx, key)
	if err != nil {
		if errors.Cause(err) == ErrKeyNotFound {
			return fallback, nil
		}
		return nil, errors.Wrapf(err, "loading %s", key)
	}
	return labels, nil
}

func (svc *service) Load(ctx context.Context) (Catalog, error) {
	days, err := svc.loadAxis(ctx, DaysKey, svc.defaults.days)
	if err != nil {
		return Catalog{}, err
	}
	slots, err := svc.loadAxis(ctx, SlotsKey, svc.defaults.slots)
	if err != nil {
		return Catalog{}, err
	}
	return New(days, slots), nil
}

func (svc *service) AddDay(_ context.Context, cat Catalog, label string) (Catalog, error) {
	cat = cat.Clone()
	if err := cat.AddDay(label); err != nil {
		return cat, labelError(err)
	}
	svc.persist(cat)
	return cat, nil
}

func (svc *service) RemoveDay(_ context.Context, cat Catalog, label string) (Catalog, error) {
	cat = cat.Clone()
	if cat.RemoveDay(label) {
		svc.persist(cat)
	}
	return cat, nil
}

func (svc *service) AddSlot(_ context.Context, cat Catalog, label string) (Catalog, error) {
	cat = cat.Clone()
	if err := cat.AddSlot(label); err != nil {
		return cat, labelError(err)
	}
	svc.persist(cat)
	return cat, nil
}

func (svc *service) AddSlotRange(ctx context.Context, cat Catalog, ns NewSlot) (Catalog, error) {
	label, err := SynthesizeSlot(ns.StartTime, ns.EndTime)
	if err != nil {
		var flds []core.FieldError
		if ns.StartTime == "" {
			flds = append(flds, core.FieldError{Field: "start_time", Error: "this field is required"})
		}
		if ns.EndTime == "" {
			flds = append(flds, core.FieldError{Field: "end_time", Error: "this field is required"})
		}
		return cat, core.NewValidationError(err, flds...)
	}
	return svc.AddSlot(ctx, cat, label)
}

func (svc *service) RemoveSlot(_ context.Context, cat Catalog, label string) (Catalog, error) {
	cat = cat.Clone()
	if cat.RemoveSlot(label) {
		svc.persist(cat)
	}
	return cat, nil
}

// labelError maps a DuplicateAxisLabelError to a validation error on the `label` field.
func labelError(err error) error {
	var dupErr *DuplicateAxisLabelError
	if errors.As(err, &dupErr) {
		return core.NewValidationError(err, core.FieldError{Field: "label", Error: err.Error()})
	}
	return err
}
