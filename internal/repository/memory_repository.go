package repository

import (
	"context"
	"sync"

	"menu-app/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// memoryMenuRepository implements MenuItemRepository in process memory.
type memoryMenuRepository struct {
	mu     sync.RWMutex
	items  []model.MenuItem
	ids    map[string]struct{}
	newID  IDGenerator
	logger zerolog.Logger
}

// NewMemoryMenuRepository creates an empty in-memory menu repository.
func NewMemoryMenuRepository(logger zerolog.Logger) MenuItemRepository {
	return &memoryMenuRepository{
		ids:    make(map[string]struct{}),
		newID:  uuid.NewString,
		logger: logger.With().Str("repository", "menu-memory").Logger(),
	}
}

// Append assigns a fresh ID to item and stores it after every existing item.
func (r *memoryMenuRepository) Append(ctx context.Context, item model.NewMenuItem) (*model.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.newID()
	if _, exists := r.ids[id]; exists {
		r.logger.Error().Str("item_id", id).Msg("generated duplicate item ID")
		return nil, model.ErrDuplicateID
	}

	stored := model.MenuItem{
		ID:          id,
		Name:        item.Name,
		Description: item.Description,
		Course:      item.Course,
		Price:       item.Price,
	}
	r.items = append(r.items, stored)
	r.ids[id] = struct{}{}

	r.logger.Debug().
		Str("item_id", id).
		Str("course", string(item.Course)).
		Int("total", len(r.items)).
		Msg("menu item appended")

	return &stored, nil
}

// Remove deletes the item with the given ID, keeping the order of the rest.
func (r *memoryMenuRepository) Remove(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.ids[id]; !exists {
		r.logger.Debug().Str("item_id", id).Msg("menu item not present, nothing removed")
		return false, nil
	}

	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			break
		}
	}
	delete(r.ids, id)

	return true, nil
}

// List returns a copy of all items, oldest first.
func (r *memoryMenuRepository) List(ctx context.Context) ([]model.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]model.MenuItem, len(r.items))
	copy(items, r.items)
	return items, nil
}

// ListByCourse returns a copy of the items of one course, oldest first.
func (r *memoryMenuRepository) ListByCourse(ctx context.Context, course model.Course) ([]model.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]model.MenuItem, 0)
	for _, item := range r.items {
		if item.Course == course {
			items = append(items, item)
		}
	}
	return items, nil
}

// GetByID retrieves a single item by its ID.
func (r *memoryMenuRepository) GetByID(ctx context.Context, id string) (*model.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, exists := r.ids[id]; !exists {
		return nil, nil
	}
	for _, item := range r.items {
		if item.ID == id {
			found := item
			return &found, nil
		}
	}
	return nil, nil
}

// Count returns the number of stored items.
func (r *memoryMenuRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items), nil
}

// Reset drops every item.
func (r *memoryMenuRepository) Reset(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.logger.Info().Int("dropped", len(r.items)).Msg("menu reset")
	r.items = nil
	r.ids = make(map[string]struct{})
	return nil
}
