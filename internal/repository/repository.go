package repository

import (
	"context"

	"menu-app/internal/model"
)

// MenuItemRepository stores the ordered sequence of menu items for one session.
// Implementations must preserve insertion order and keep ids unique.
type MenuItemRepository interface {
	// Append assigns a fresh ID to item and stores it after every existing item.
	Append(ctx context.Context, item model.NewMenuItem) (*model.MenuItem, error)

	// Remove deletes the item with the given ID.
	// It reports false, with no error, when no such item exists.
	Remove(ctx context.Context, id string) (bool, error)

	// List returns all items, oldest first.
	List(ctx context.Context) ([]model.MenuItem, error)

	// ListByCourse returns the items of one course, oldest first.
	ListByCourse(ctx context.Context, course model.Course) ([]model.MenuItem, error)

	// GetByID retrieves a single item. Returns nil, nil when absent.
	GetByID(ctx context.Context, id string) (*model.MenuItem, error)

	// Count returns the number of stored items.
	Count(ctx context.Context) (int, error)

	// Reset drops every item, ending the session.
	Reset(ctx context.Context) error
}

// IDGenerator produces item identifiers.
type IDGenerator func() string
