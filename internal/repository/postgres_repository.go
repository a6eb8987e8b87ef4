package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"menu-app/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

const uniqueViolation = "23505"

// menuTableSchema is a TEMPORARY table: PostgreSQL drops it when the
// owning connection closes, so menu data never outlives the session.
const menuTableSchema = `
	CREATE TEMPORARY TABLE IF NOT EXISTS menu_items (
		seq BIGSERIAL NOT NULL,
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL CHECK (name <> ''),
		description TEXT NOT NULL CHECK (description <> ''),
		course TEXT NOT NULL CHECK (course IN ('Starters', 'Mains', 'Dessert', 'Drinks')),
		price TEXT NOT NULL
	)
`

// postgresMenuRepository implements MenuItemRepository on a session-scoped
// PostgreSQL table. A pgx.Conn is not safe for concurrent use, hence the mutex.
type postgresMenuRepository struct {
	mu     sync.Mutex
	conn   *pgx.Conn
	newID  IDGenerator
	logger zerolog.Logger
}

// NewPostgresMenuRepository creates the session table on conn and returns a
// repository backed by it.
func NewPostgresMenuRepository(ctx context.Context, conn *pgx.Conn, logger zerolog.Logger) (MenuItemRepository, error) {
	logger = logger.With().Str("repository", "menu-postgres").Logger()

	if _, err := conn.Exec(ctx, menuTableSchema); err != nil {
		logger.Error().Err(err).Msg("failed to create session menu table")
		return nil, fmt.Errorf("failed to create session menu table: %w", err)
	}

	return &postgresMenuRepository{
		conn:   conn,
		newID:  uuid.NewString,
		logger: logger,
	}, nil
}

// Append assigns a fresh ID to item and stores it after every existing item.
func (r *postgresMenuRepository) Append(ctx context.Context, item model.NewMenuItem) (*model.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `
		INSERT INTO menu_items (id, name, description, course, price)
		VALUES ($1, $2, $3, $4, $5)
	`

	stored := model.MenuItem{
		ID:          r.newID(),
		Name:        item.Name,
		Description: item.Description,
		Course:      item.Course,
		Price:       item.Price,
	}

	_, err := r.conn.Exec(ctx, query, stored.ID, stored.Name, stored.Description, string(stored.Course), stored.Price)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			r.logger.Error().Str("item_id", stored.ID).Msg("generated duplicate item ID")
			return nil, model.ErrDuplicateID
		}
		r.logger.Error().Err(err).Str("item_id", stored.ID).Msg("failed to insert menu item")
		return nil, fmt.Errorf("failed to insert menu item: %w", err)
	}

	return &stored, nil
}

// Remove deletes the item with the given ID.
func (r *postgresMenuRepository) Remove(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tag, err := r.conn.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("item_id", id).Msg("failed to delete menu item")
		return false, fmt.Errorf("failed to delete menu item: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// List returns all items, oldest first.
func (r *postgresMenuRepository) List(ctx context.Context) ([]model.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `
		SELECT id, name, description, course, price
		FROM menu_items
		ORDER BY seq
	`

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query menu items")
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}

	return r.collect(rows)
}

// ListByCourse returns the items of one course, oldest first.
func (r *postgresMenuRepository) ListByCourse(ctx context.Context, course model.Course) ([]model.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `
		SELECT id, name, description, course, price
		FROM menu_items
		WHERE course = $1
		ORDER BY seq
	`

	rows, err := r.conn.Query(ctx, query, string(course))
	if err != nil {
		r.logger.Error().Err(err).Str("course", string(course)).Msg("failed to query menu items by course")
		return nil, fmt.Errorf("failed to query menu items by course: %w", err)
	}

	return r.collect(rows)
}

// GetByID retrieves a single item by its ID.
func (r *postgresMenuRepository) GetByID(ctx context.Context, id string) (*model.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `
		SELECT id, name, description, course, price
		FROM menu_items
		WHERE id = $1
	`

	var item model.MenuItem
	var course string
	err := r.conn.QueryRow(ctx, query, id).Scan(&item.ID, &item.Name, &item.Description, &course, &item.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("item_id", id).Msg("menu item not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("item_id", id).Msg("failed to query menu item")
		return nil, fmt.Errorf("failed to query menu item: %w", err)
	}
	item.Course = model.Course(course)

	return &item, nil
}

// Count returns the number of stored items.
func (r *postgresMenuRepository) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int
	if err := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM menu_items`).Scan(&count); err != nil {
		r.logger.Error().Err(err).Msg("failed to count menu items")
		return 0, fmt.Errorf("failed to count menu items: %w", err)
	}

	return count, nil
}

// Reset drops every item.
func (r *postgresMenuRepository) Reset(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.conn.Exec(ctx, `TRUNCATE menu_items`); err != nil {
		r.logger.Error().Err(err).Msg("failed to reset menu")
		return fmt.Errorf("failed to reset menu: %w", err)
	}

	r.logger.Info().Msg("menu reset")
	return nil
}

// collect scans menu item rows and closes them.
func (r *postgresMenuRepository) collect(rows pgx.Rows) ([]model.MenuItem, error) {
	defer rows.Close()

	items := make([]model.MenuItem, 0)
	for rows.Next() {
		var item model.MenuItem
		var course string
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &course, &item.Price); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan menu item row")
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		item.Course = model.Course(course)
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating menu item rows")
		return nil, fmt.Errorf("error iterating menu items: %w", err)
	}

	return items, nil
}
