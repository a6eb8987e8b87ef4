package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"menu-app/internal/model"
	"menu-app/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// menuService implements MenuService.
type menuService struct {
	repo   repository.MenuItemRepository
	logger zerolog.Logger
}

// NewMenuService creates a new menu service.
func NewMenuService(repo repository.MenuItemRepository, logger zerolog.Logger) MenuService {
	return &menuService{
		repo:   repo,
		logger: logger.With().Str("service", "menu").Logger(),
	}
}

// AddItem validates item, assigns it an ID and appends it to the menu.
// Input that did not go through ParseForm is held to the same rules.
func (s *menuService) AddItem(ctx context.Context, item model.NewMenuItem) (*model.MenuItem, error) {
	if err := s.validateNewItem(&item); err != nil {
		return nil, err
	}

	stored, err := s.repo.Append(ctx, item)
	if err != nil {
		var domainErr *model.DomainError
		if errors.As(err, &domainErr) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("name", item.Name).Msg("failed to add menu item")
		return nil, fmt.Errorf("failed to add menu item: %w", err)
	}

	s.logger.Info().
		Str("item_id", stored.ID).
		Str("name", stored.Name).
		Str("course", string(stored.Course)).
		Str("price", stored.Price).
		Msg("menu item added")

	return stored, nil
}

// RemoveItem removes the item with the given ID.
func (s *menuService) RemoveItem(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, nil
	}

	removed, err := s.repo.Remove(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("item_id", id).Msg("failed to remove menu item")
		return false, fmt.Errorf("failed to remove menu item: %w", err)
	}

	if removed {
		s.logger.Info().Str("item_id", id).Msg("menu item removed")
	} else {
		s.logger.Debug().Str("item_id", id).Msg("menu item not found, nothing removed")
	}

	return removed, nil
}

// GetAll returns every item in insertion order.
func (s *menuService) GetAll(ctx context.Context) ([]model.MenuItem, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list menu items")
		return nil, fmt.Errorf("failed to get menu items: %w", err)
	}

	return items, nil
}

// GetByID returns a single item.
func (s *menuService) GetByID(ctx context.Context, id string) (*model.MenuItem, error) {
	if id == "" {
		s.logger.Warn().Msg("menu item ID is empty")
		return nil, model.ErrItemNotFound
	}

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("item_id", id).Msg("failed to get menu item by ID")
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}

	if item == nil {
		s.logger.Debug().Str("item_id", id).Msg("menu item not found")
		return nil, model.ErrItemNotFound
	}

	return item, nil
}

// GetItemsByCourse returns the items of one course in insertion order.
func (s *menuService) GetItemsByCourse(ctx context.Context, course model.Course) ([]model.MenuItem, error) {
	if !course.IsValid() {
		return nil, model.ErrInvalidCourse
	}

	items, err := s.repo.ListByCourse(ctx, course)
	if err != nil {
		s.logger.Error().Err(err).Str("course", string(course)).Msg("failed to list menu items by course")
		return nil, fmt.Errorf("failed to get menu items: %w", err)
	}

	return items, nil
}

// GetTotalItems returns the number of items on the menu.
func (s *menuService) GetTotalItems(ctx context.Context) (int, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to count menu items")
		return 0, fmt.Errorf("failed to count menu items: %w", err)
	}

	return count, nil
}

// GetAllAveragePrices returns the mean price and item count of every course,
// in canonical course order. A course without items averages 0.
func (s *menuService) GetAllAveragePrices(ctx context.Context) ([]model.CourseAverage, error) {
	items, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	return averagePrices(items)
}

// GetStats returns the total item count together with the course averages,
// both derived from the same snapshot of the menu.
func (s *menuService) GetStats(ctx context.Context) (*model.MenuStats, error) {
	items, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	averages, err := averagePrices(items)
	if err != nil {
		return nil, err
	}

	return &model.MenuStats{
		TotalItems: len(items),
		Averages:   averages,
	}, nil
}

// Reset empties the menu.
func (s *menuService) Reset(ctx context.Context) error {
	if err := s.repo.Reset(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to reset menu")
		return fmt.Errorf("failed to reset menu: %w", err)
	}

	return nil
}

// validateNewItem trims text fields in place and checks the item against the
// store invariants.
func (s *menuService) validateNewItem(item *model.NewMenuItem) error {
	item.Name = strings.TrimSpace(item.Name)
	item.Description = strings.TrimSpace(item.Description)

	if item.Name == "" || item.Description == "" || item.Price == "" {
		s.logger.Warn().
			Bool("has_name", item.Name != "").
			Bool("has_description", item.Description != "").
			Bool("has_price", item.Price != "").
			Msg("menu item missing required field")
		return model.ErrMissingField
	}

	if !item.Course.IsValid() {
		s.logger.Warn().Str("course", string(item.Course)).Msg("invalid course")
		return model.ErrInvalidCourse
	}

	if !isCanonicalPrice(item.Price) {
		s.logger.Warn().Str("price", item.Price).Msg("price is not a positive two-decimal amount")
		return model.ErrInvalidPrice
	}

	return nil
}

// averagePrices groups items by course and computes each course mean.
func averagePrices(items []model.MenuItem) ([]model.CourseAverage, error) {
	sums := make(map[model.Course]decimal.Decimal, len(model.AllCourses))
	counts := make(map[model.Course]int, len(model.AllCourses))

	for _, item := range items {
		price, err := decimal.NewFromString(item.Price)
		if err != nil {
			return nil, fmt.Errorf("menu item %s has unparseable price %q: %w", item.ID, item.Price, err)
		}
		sums[item.Course] = sums[item.Course].Add(price)
		counts[item.Course]++
	}

	averages := make([]model.CourseAverage, 0, len(model.AllCourses))
	for _, course := range model.AllCourses {
		entry := model.CourseAverage{Course: course, Count: counts[course]}
		if entry.Count > 0 {
			entry.Average = sums[course].Div(decimal.NewFromInt(int64(entry.Count))).InexactFloat64()
		}
		averages = append(averages, entry)
	}

	return averages, nil
}
