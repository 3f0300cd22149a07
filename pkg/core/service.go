package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// DefaultEventBuffer is the size of the event buffer used by Service.Watch.
const DefaultEventBuffer = 100

// Service wraps a RecordStore with identifier validation, update counting and
// event buffering. It is itself a RecordStore, so the mapper writes through it.
type Service struct {
	store           RecordStore
	eventBufferSize int

	mu      sync.RWMutex
	updates int
}

// NewService creates a new Service. A non-positive buffer means DefaultEventBuffer.
func NewService(store RecordStore, eventBuffer int) *Service {
	if eventBuffer <= 0 {
		eventBuffer = DefaultEventBuffer
	}
	return &Service{store: store, eventBufferSize: eventBuffer}
}

// Store returns the underlying record store.
func (s *Service) Store() RecordStore { return s.store }

// Get implements RecordStore.
func (s *Service) Get(ctx context.Context, id int64) (Record, error) {
	if id <= 0 {
		return Record{}, fmt.Errorf("%w: %d", ErrInvalidRecordID, id)
	}
	return s.store.Get(ctx, id)
}

// Update implements RecordStore. An empty patch is a no-op and is not counted.
func (s *Service) Update(ctx context.Context, p Patch) error {
	if p.ID <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidRecordID, p.ID)
	}
	if p.Empty() {
		return nil
	}
	if err := s.store.Update(ctx, p); err != nil {
		return err
	}
	s.mu.Lock()
	s.updates++
	s.mu.Unlock()
	return nil
}

// ListRecords returns all records if the store supports listing.
func (s *Service) ListRecords(ctx context.Context) ([]Record, error) {
	l, ok := s.store.(Lister)
	if !ok {
		return nil, errors.New("record store does not support listing")
	}
	return l.List(ctx)
}

// Watch observes changes in the store if supported.
// Events are buffered so a slow consumer never blocks the store.
func (s *Service) Watch(ctx context.Context, pattern string) (<-chan Event, error) {
	w, ok := s.store.(Watchable)
	if !ok {
		return nil, errors.New("record store does not support watching")
	}
	upstream, err := w.Watch(ctx, pattern)
	if err != nil {
		return nil, err
	}

	out := make(chan Event, s.eventBufferSize)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case e, ok := <-upstream:
				if !ok {
					return
				}
				select {
				case out <- e:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

var _ RecordStore = (*Service)(nil)
