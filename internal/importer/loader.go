package importer

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"menu-app/internal/model"

	"github.com/rs/zerolog"
)

// gzipMagic is the two-byte header of every gzip stream.
var gzipMagic = []byte{0x1f, 0x8b}

// fileLoader implements Loader for menu files on the local file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based menu loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "menu-file-loader").Logger(),
	}
}

// Load reads a menu file with one JSON object per line.
func (l *fileLoader) Load(ctx context.Context, path string) ([]Record, error) {
	l.logger.Info().Str("file", path).Msg("loading menu file")

	file, err := os.Open(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to open menu file")
		return nil, fmt.Errorf("failed to open menu file %s: %w", path, err)
	}
	defer file.Close()

	records, err := readRecords(ctx, file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("error reading menu file")
		return nil, fmt.Errorf("error reading menu file %s: %w", path, err)
	}

	l.logger.Info().
		Str("file", path).
		Int("records", len(records)).
		Msg("menu file loaded successfully")

	return records, nil
}

// readRecords decodes JSON Lines from r, transparently decompressing gzip
// input. Blank lines are skipped but still counted for line numbers.
func readRecords(ctx context.Context, r io.Reader) ([]Record, error) {
	buffered := bufio.NewReader(r)

	var src io.Reader = buffered
	if header, err := buffered.Peek(len(gzipMagic)); err == nil && bytes.Equal(header, gzipMagic) {
		gzipReader, err := gzip.NewReader(buffered)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gzipReader.Close()
		src = gzipReader
	}

	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var records []Record
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++

		if lineNumber%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		record := Record{Line: lineNumber}
		var form model.MenuItemForm
		if err := json.Unmarshal(line, &form); err != nil {
			record.Err = fmt.Errorf("line %d is not a valid menu item: %w", lineNumber, err)
		} else {
			record.Form = form
		}
		records = append(records, record)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
