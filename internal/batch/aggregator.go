// Package batch merges the title files of a directory into one batch.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"fjacquet/boleto-cnab/internal/cnaberror"
	"fjacquet/boleto-cnab/internal/dateutils"
	"fjacquet/boleto-cnab/internal/logging"
	"fjacquet/boleto-cnab/internal/models"
)

// DateRange represents a date range with start and end dates
type DateRange struct {
	Start time.Time
	End   time.Time
}

// String returns the date range in the format "YYYY-MM-DD_YYYY-MM-DD"
func (dr DateRange) String() string {
	if dr.Start.IsZero() || dr.End.IsZero() {
		return ""
	}
	return dateutils.ToISODate(dr.Start) + "_" + dateutils.ToISODate(dr.End)
}

// Merge combines this date range with another, returning the overall range
func (dr DateRange) Merge(other DateRange) DateRange {
	start := dr.Start
	end := dr.End

	if dr.Start.IsZero() {
		start = other.Start
	} else if !other.Start.IsZero() && other.Start.Before(start) {
		start = other.Start
	}

	if dr.End.IsZero() {
		end = other.End
	} else if !other.End.IsZero() && other.End.After(end) {
		end = other.End
	}

	return DateRange{Start: start, End: end}
}

// DueDateRange spans the due dates of titles.
func DueDateRange(titles []models.Title) DateRange {
	var dr DateRange
	for _, t := range titles {
		dr = dr.Merge(DateRange{Start: t.DueDate, End: t.DueDate})
	}
	return dr
}

// TitleReader reads the titles of one file.
type TitleReader interface {
	ReadTitles(path string) ([]models.Title, error)
}

// BatchAggregator merges several title files into one batch.
type BatchAggregator struct {
	logger logging.Logger
}

// NewBatchAggregator creates a new BatchAggregator instance
func NewBatchAggregator(logger logging.Logger) *BatchAggregator {
	return &BatchAggregator{
		logger: logger,
	}
}

// TitleFiles lists the CSV and YAML files of dir, sorted by name.
func (ba *BatchAggregator) TitleFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".csv", ".yaml", ".yml":
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// Aggregate reads every file with reader and returns the titles ordered by
// due date. Files keep their relative order for titles due the same day. A
// nosso número repeated within a wallet is rejected.
func (ba *BatchAggregator) Aggregate(files []string, reader TitleReader) ([]models.Title, error) {
	var titles []models.Title
	seen := make(map[string]string)

	for _, file := range files {
		fileTitles, err := reader.ReadTitles(file)
		if err != nil {
			return nil, err
		}
		for _, t := range fileTitles {
			key := t.Wallet + "/" + t.NossoNumero
			if first, ok := seen[key]; ok {
				return nil, cnaberror.Field("nosso_numero", t.NossoNumero,
					fmt.Sprintf("repeated in %s and %s", filepath.Base(first), filepath.Base(file)))
			}
			seen[key] = file
		}

		ba.logger.Debug("Title file read",
			logging.F(logging.FieldInputFile, filepath.Base(file)),
			logging.F(logging.FieldCount, len(fileTitles)))
		titles = append(titles, fileTitles...)
	}

	sort.SliceStable(titles, func(i, j int) bool {
		return titles[i].DueDate.Before(titles[j].DueDate)
	})

	ba.logger.Info("Aggregated title files",
		logging.F("total_files", len(files)),
		logging.F(logging.FieldCount, len(titles)),
		logging.F("due_dates", DueDateRange(titles).String()))
	return titles, nil
}

// AggregateDirectory aggregates every title file of dir.
func (ba *BatchAggregator) AggregateDirectory(dir string, reader TitleReader) ([]models.Title, error) {
	files, err := ba.TitleFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no title files in %s", dir)
	}
	return ba.Aggregate(files, reader)
}
