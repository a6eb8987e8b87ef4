package importer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"menu-app/internal/model"
	"menu-app/internal/service"

	"github.com/rs/zerolog"
)

// Record is one line of a menu file.
type Record struct {
	Line int
	Form model.MenuItemForm
	// Err is set when the line could not be decoded.
	Err error
}

// Loader defines the interface for loading menu files.
type Loader interface {
	// Load reads a JSON Lines menu file, gzip-compressed or plain.
	Load(ctx context.Context, path string) ([]Record, error)
}

// Rejection describes a line that was not added to the menu.
type Rejection struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

// Result summarises an import run.
type Result struct {
	Added    int         `json:"added"`
	Rejected []Rejection `json:"rejected"`
}

// Importer feeds menu files through the same validation as interactive input.
type Importer struct {
	loader Loader
	menu   service.MenuService
	logger zerolog.Logger
}

// NewImporter creates a new menu importer.
func NewImporter(loader Loader, menu service.MenuService, logger zerolog.Logger) *Importer {
	return &Importer{
		loader: loader,
		menu:   menu,
		logger: logger.With().Str("component", "menu-importer").Logger(),
	}
}

// Import loads every file concurrently and then adds their items in file
// order, line by line, so the resulting menu order is deterministic.
// Invalid lines are reported in the result; a file that cannot be loaded
// aborts the import before anything is added.
func (i *Importer) Import(ctx context.Context, paths ...string) (*Result, error) {
	i.logger.Info().Int("file_count", len(paths)).Msg("starting menu import")

	type loadResult struct {
		index   int
		records []Record
		err     error
	}

	resultChan := make(chan loadResult, len(paths))
	var wg sync.WaitGroup

	for idx, path := range paths {
		wg.Add(1)
		go func(index int, path string) {
			defer wg.Done()

			records, err := i.loader.Load(ctx, path)
			resultChan <- loadResult{
				index:   index,
				records: records,
				err:     err,
			}
		}(idx, path)
	}

	wg.Wait()
	close(resultChan)

	// Collect results in order
	loaded := make([]loadResult, len(paths))
	for result := range resultChan {
		loaded[result.index] = result
	}

	for idx, result := range loaded {
		if result.err != nil {
			i.logger.Error().Err(result.err).Str("file", paths[idx]).Msg("failed to load menu file")
			return nil, fmt.Errorf("failed to load menu file %s: %w", paths[idx], result.err)
		}
	}

	result := &Result{Rejected: []Rejection{}}
	for idx, file := range loaded {
		for _, record := range file.records {
			if err := ctx.Err(); err != nil {
				return result, err
			}

			if err := i.apply(ctx, record); err != nil {
				var domainErr *model.DomainError
				if !errors.As(err, &domainErr) {
					return result, fmt.Errorf("failed to import %s line %d: %w", paths[idx], record.Line, err)
				}
				result.Rejected = append(result.Rejected, Rejection{
					File:   paths[idx],
					Line:   record.Line,
					Code:   domainErr.Code,
					Reason: domainErr.Message,
				})
				continue
			}
			result.Added++
		}
	}

	i.logger.Info().
		Int("added", result.Added).
		Int("rejected", len(result.Rejected)).
		Msg("menu import finished")

	return result, nil
}

func (i *Importer) apply(ctx context.Context, record Record) error {
	if record.Err != nil {
		return model.NewDomainError(model.ErrCodeInvalidJSON, record.Err.Error())
	}

	item, err := service.ParseForm(record.Form)
	if err != nil {
		return err
	}

	_, err = i.menu.AddItem(ctx, *item)
	return err
}
