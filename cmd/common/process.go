// Package common contains shared functionality for command handlers
package common

import (
	"errors"
	"fmt"
	"io"
	"time"

	"fjacquet/boleto-cnab/internal/batch"
	"fjacquet/boleto-cnab/internal/dateutils"
	"fjacquet/boleto-cnab/internal/fileutils"
	"fjacquet/boleto-cnab/internal/logging"
	"fjacquet/boleto-cnab/internal/models"
	"fjacquet/boleto-cnab/internal/titleio"
	"fjacquet/boleto-cnab/internal/validation"
)

// Sentinel errors for command input.
var (
	ErrMissingInput  = errors.New("input file is required (-i)")
	ErrMissingSender = errors.New("sender file is required (-s)")
	ErrNoTitles      = errors.New("input file has no titles")
)

// Batch is a title batch together with the company remitting it.
type Batch struct {
	Titles []models.Title
	Sender models.Sender
}

// LoadBatch reads the titles of inputFile and the sender of senderFile. A
// directory input merges every title file it holds.
func LoadBatch(store *titleio.Store, inputFile, senderFile string, log logging.Logger) (*Batch, error) {
	if inputFile == "" {
		return nil, ErrMissingInput
	}
	if senderFile == "" {
		return nil, ErrMissingSender
	}
	isDir := fileutils.DirectoryExists(inputFile)
	if !isDir {
		if err := validation.IsValidInputFile(inputFile); err != nil {
			return nil, err
		}
	}
	if err := validation.IsValidInputFile(senderFile); err != nil {
		return nil, err
	}

	var titles []models.Title
	var err error
	if isDir {
		titles, err = batch.NewBatchAggregator(log).AggregateDirectory(inputFile, store)
	} else {
		titles, err = store.ReadTitles(inputFile)
	}
	if err != nil {
		return nil, fmt.Errorf("error reading titles: %w", err)
	}
	if len(titles) == 0 {
		return nil, fmt.Errorf("%s: %w", inputFile, ErrNoTitles)
	}

	sender, err := store.ReadSenderYAML(senderFile)
	if err != nil {
		return nil, fmt.Errorf("error reading sender: %w", err)
	}

	log.Debug("Batch loaded",
		logging.F(logging.FieldInputFile, inputFile),
		logging.F(logging.FieldCount, len(titles)))
	return &Batch{Titles: titles, Sender: sender}, nil
}

// ParseGeneratedAt returns now for an empty value, otherwise the parsed date
// at midnight.
func ParseGeneratedAt(value string, now time.Time) (time.Time, error) {
	if value == "" {
		return now, nil
	}
	t, _, err := dateutils.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date: %w", err)
	}
	return t, nil
}

// SplitLots cuts titles into consecutive lots of at most size titles; a size
// of zero or less keeps a single lot.
func SplitLots(titles []models.Title, size int) [][]models.Title {
	if size <= 0 || len(titles) <= size {
		return [][]models.Title{titles}
	}
	lots := make([][]models.Title, 0, (len(titles)+size-1)/size)
	for start := 0; start < len(titles); start += size {
		end := start + size
		if end > len(titles) {
			end = len(titles)
		}
		lots = append(lots, titles[start:end])
	}
	return lots
}

// WriteLines prints lines to out, one per line.
func WriteLines(out io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}
