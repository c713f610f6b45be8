// Package ingest loads raw records, themes and external dimension scores from disk.
package ingest

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/painscope/internal/models"
)

// ErrUnsupportedFormat is returned for record files that are neither JSON nor JSON Lines
var ErrUnsupportedFormat = errors.New("unsupported record format")

// Format is a record file encoding
type Format string

const (
	FormatJSON  Format = "json"  // one JSON array of records
	FormatJSONL Format = "jsonl" // one JSON record per line
)

// maxLineSize bounds a single JSON Lines record
const maxLineSize = 4 * 1024 * 1024

var validate = validator.New()

// FormatForPath picks the record format from a file extension
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".jsonl", ".ndjson":
		return FormatJSONL, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// LoadRecords reads and normalizes records from a .json, .jsonl or .ndjson file.
func LoadRecords(path string, logger arbor.ILogger) ([]models.RawRecord, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open records file %s: %w", path, err)
	}
	defer file.Close()

	records, err := ReadRecords(file, format, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to read records from %s: %w", path, err)
	}
	return records, nil
}

// ReadRecords decodes records in the given format and normalizes each one:
// HTML is stripped from text and title, invalid engagement becomes 0 and an
// out-of-range rating is dropped. Records are never rejected for content.
func ReadRecords(r io.Reader, format Format, logger arbor.ILogger) ([]models.RawRecord, error) {
	var records []models.RawRecord

	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&records); err != nil {
			return nil, fmt.Errorf("failed to decode JSON records: %w", err)
		}
	case FormatJSONL:
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 64*1024), maxLineSize)
		line := 0
		for scanner.Scan() {
			line++
			raw := strings.TrimSpace(scanner.Text())
			if raw == "" {
				continue
			}
			var record models.RawRecord
			if err := json.Unmarshal([]byte(raw), &record); err != nil {
				return nil, fmt.Errorf("failed to decode record on line %d: %w", line, err)
			}
			records = append(records, record)
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to scan records: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	for i := range records {
		normalizeRecord(&records[i], i, logger)
	}

	if logger != nil {
		logger.Debug().
			Str("format", string(format)).
			Int("records", len(records)).
			Msg("Records loaded")
	}

	return records, nil
}

func normalizeRecord(record *models.RawRecord, index int, logger arbor.ILogger) {
	record.Text = NormalizeText(record.Text)
	record.Title = NormalizeText(record.Title)

	if math.IsNaN(record.EngagementScore) || record.EngagementScore < 0 {
		record.EngagementScore = 0
	}

	if err := validate.Struct(record); err != nil {
		if logger != nil {
			logger.Warn().
				Err(err).
				Int("index", index).
				Str("source_id", record.SourceID).
				Msg("Dropping invalid rating from record")
		}
		record.Rating = nil
	}
}
