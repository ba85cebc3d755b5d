package dungeonlayout

import (
	"context"
	"encoding/json"
	"slices"
	"sync"
	"time"

	"github.com/KirkDiggler/dungeon-api/internal/entities"
	"github.com/KirkDiggler/dungeon-api/internal/errors"
	"github.com/KirkDiggler/dungeon-api/internal/pkg/clock"
)

type storedLayout struct {
	data    []byte
	savedAt time.Time
	expires time.Time
}

// InMemoryRepository implements Repository in process memory. Layouts are
// kept serialized so callers never share state with the store.
type InMemoryRepository struct {
	mu    sync.RWMutex
	clock clock.Clock
	store map[string]storedLayout
}

// NewInMemory creates an in-memory repository. A nil clock uses system time.
func NewInMemory(c clock.Clock) *InMemoryRepository {
	if c == nil {
		c = clock.New()
	}
	return &InMemoryRepository{
		clock: c,
		store: make(map[string]storedLayout),
	}
}

var _ Repository = (*InMemoryRepository)(nil)

// Save stores a layout
func (r *InMemoryRepository) Save(_ context.Context, input *SaveInput) (*SaveOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	if input.Layout == nil {
		return nil, errors.InvalidArgument(errLayoutNil)
	}
	if input.Layout.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}
	if input.TTL < 0 {
		return nil, errors.InvalidArgument(errNegTTL)
	}

	ttl := input.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	now := r.clock.Now()
	layout := *input.Layout
	if layout.CreatedAt.IsZero() {
		layout.CreatedAt = now
	}
	layout.UpdatedAt = now
	layout.ExpiresAt = now.Add(ttl)

	data, err := json.Marshal(&layout)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal layout")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[layout.ID] = storedLayout{data: data, savedAt: now, expires: layout.ExpiresAt}

	return &SaveOutput{Layout: &layout}, nil
}

// Get retrieves a layout by ID
func (r *InMemoryRepository) Get(_ context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.liveLocked(input.ID)
	if !ok {
		return nil, errors.NotFoundf(errNotFoundFm, input.ID)
	}

	var layout entities.DungeonLayout
	if err := json.Unmarshal(stored.data, &layout); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal layout")
	}

	return &GetOutput{Layout: &layout}, nil
}

// Delete removes a layout
func (r *InMemoryRepository) Delete(_ context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.liveLocked(input.ID); !ok {
		return nil, errors.NotFoundf(errNotFoundFm, input.ID)
	}
	delete(r.store, input.ID)

	return &DeleteOutput{Deleted: true}, nil
}

// List returns live layout IDs, most recently saved first
func (r *InMemoryRepository) List(_ context.Context, input *ListInput) (*ListOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	if input.Limit < 0 {
		return nil, errors.InvalidArgument(errNegLimit)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	type entry struct {
		id      string
		savedAt time.Time
	}
	entries := make([]entry, 0, len(r.store))
	for id := range r.store {
		if stored, ok := r.liveLocked(id); ok {
			entries = append(entries, entry{id: id, savedAt: stored.savedAt})
		}
	}

	slices.SortFunc(entries, func(a, b entry) int {
		if c := b.savedAt.Compare(a.savedAt); c != 0 {
			return c
		}
		// Same instant: fall back to ID so listings are stable.
		if a.id < b.id {
			return 1
		}
		if a.id > b.id {
			return -1
		}
		return 0
	})

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.id)
	}
	if input.Limit > 0 && len(ids) > input.Limit {
		ids = ids[:input.Limit]
	}

	return &ListOutput{IDs: ids}, nil
}

// liveLocked returns the entry for id, evicting it if expired. Caller holds mu.
func (r *InMemoryRepository) liveLocked(id string) (storedLayout, bool) {
	stored, ok := r.store[id]
	if !ok {
		return storedLayout{}, false
	}
	if !r.clock.Now().Before(stored.expires) {
		delete(r.store, id)
		return storedLayout{}, false
	}
	return stored, true
}
