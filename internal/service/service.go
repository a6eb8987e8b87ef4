package service

import (
	"context"

	"menu-app/internal/model"
)

// MenuService owns the session menu: the only way to change it and the
// source of every derived statistic.
type MenuService interface {
	// AddItem validates item, assigns it an ID and appends it to the menu.
	AddItem(ctx context.Context, item model.NewMenuItem) (*model.MenuItem, error)

	// RemoveItem removes the item with the given ID.
	// An unknown ID is not an error; removed is false and the menu is unchanged.
	RemoveItem(ctx context.Context, id string) (removed bool, err error)

	// GetAll returns every item in insertion order.
	GetAll(ctx context.Context) ([]model.MenuItem, error)

	// GetByID returns a single item or model.ErrItemNotFound.
	GetByID(ctx context.Context, id string) (*model.MenuItem, error)

	// GetItemsByCourse returns the items of one course in insertion order.
	GetItemsByCourse(ctx context.Context, course model.Course) ([]model.MenuItem, error)

	// GetTotalItems returns the number of items on the menu.
	GetTotalItems(ctx context.Context) (int, error)

	// GetAllAveragePrices returns one entry per course in canonical order.
	GetAllAveragePrices(ctx context.Context) ([]model.CourseAverage, error)

	// GetStats returns the total item count together with the course averages.
	GetStats(ctx context.Context) (*model.MenuStats, error)

	// Reset empties the menu at the end of a session.
	Reset(ctx context.Context) error
}
