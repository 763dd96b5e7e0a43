// Package titleio reads title batches from CSV or YAML files and writes the
// generated boletos and remittance files.
package titleio

import (
	"encoding/csv"
	"fmt"
	"path/filepath"

	"fjacquet/boleto-cnab/internal/dateutils"
	"fjacquet/boleto-cnab/internal/fileutils"
	"fjacquet/boleto-cnab/internal/logging"
	"fjacquet/boleto-cnab/internal/models"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"
)

// DefaultDelimiter separates CSV columns unless configured otherwise.
const DefaultDelimiter = ','

// Store reads and writes batch files, logging every file it touches.
type Store struct {
	logger    logging.Logger
	Delimiter rune
}

// NewStore creates a Store using the default delimiter.
func NewStore(logger logging.Logger) *Store {
	return &Store{logger: logger, Delimiter: DefaultDelimiter}
}

// titlesFile is the layout of a YAML title batch.
type titlesFile struct {
	Titles []TitleRow `yaml:"titles"`
}

// ReadTitlesCSV reads a CSV batch with a header line naming TitleRow columns.
func (s *Store) ReadTitlesCSV(path string) ([]models.Title, error) {
	rows, err := readCSVFile[TitleRow](s, path)
	if err != nil {
		return nil, err
	}
	return s.toTitles(path, rows)
}

// ReadTitlesYAML reads a YAML batch: a "titles" list of TitleRow mappings.
func (s *Store) ReadTitlesYAML(path string) ([]models.Title, error) {
	log := s.logger.WithField(logging.FieldInputFile, path)
	log.Info("Reading YAML title batch")

	data, err := fileutils.ReadFile(path)
	if err != nil {
		log.WithError(err).Error("Failed to read YAML file")
		return nil, fmt.Errorf("error reading YAML file: %w", err)
	}

	var doc titlesFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		log.WithError(err).Error("Failed to parse YAML file")
		return nil, fmt.Errorf("error parsing YAML file %s: %w", path, err)
	}
	return s.toTitles(path, doc.Titles)
}

// ReadTitles picks the reader from the file extension: .yaml/.yml or CSV.
func (s *Store) ReadTitles(path string) ([]models.Title, error) {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return s.ReadTitlesYAML(path)
	default:
		return s.ReadTitlesCSV(path)
	}
}

// ReadSenderYAML reads the remitting company and its bank account.
func (s *Store) ReadSenderYAML(path string) (models.Sender, error) {
	log := s.logger.WithField(logging.FieldInputFile, path)

	data, err := fileutils.ReadFile(path)
	if err != nil {
		log.WithError(err).Error("Failed to read sender file")
		return models.Sender{}, fmt.Errorf("error reading sender file: %w", err)
	}

	var sender models.Sender
	if err := yaml.Unmarshal(data, &sender); err != nil {
		log.WithError(err).Error("Failed to parse sender file")
		return models.Sender{}, fmt.Errorf("error parsing sender file %s: %w", path, err)
	}
	sender.Party = sender.Party.WithDefaults()
	if err := sender.Party.Validate(); err != nil {
		return models.Sender{}, fmt.Errorf("invalid sender in %s: %w", path, err)
	}

	log.Debug("Loaded sender", logging.F("sender", sender.Party.String()))
	return sender, nil
}

// WriteBoletosCSV writes one row per boleto, creating the directory if needed.
func (s *Store) WriteBoletosCSV(path string, rows []BoletoRow) error {
	if rows == nil {
		return fmt.Errorf("cannot write nil boletos to CSV")
	}
	log := s.logger.WithFields(
		logging.F(logging.FieldOutputFile, path),
		logging.F(logging.FieldCount, len(rows)),
	)

	file, err := fileutils.CreateFile(path)
	if err != nil {
		log.WithError(err).Error("Failed to create CSV file")
		return err
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	w := csv.NewWriter(file)
	w.Comma = s.Delimiter
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(w)); err != nil {
		log.WithError(err).Error("Failed to marshal boletos to CSV")
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	log.Info("Successfully wrote boletos to CSV file")
	return nil
}

func (s *Store) toTitles(path string, rows []TitleRow) ([]models.Title, error) {
	titles := make([]models.Title, 0, len(rows))
	for i, row := range rows {
		title, err := row.ToTitle()
		if err != nil {
			// i+2: one for the header, one for 1-based numbering
			return nil, fmt.Errorf("%s: record %d: %w", path, i+2, err)
		}
		if dateutils.IsWeekend(title.DueDate) {
			s.logger.Warn("Due date falls on a weekend",
				logging.F(logging.FieldNossoNumero, title.NossoNumero),
				logging.F("due_date", dateutils.ToISODate(title.DueDate)))
		}
		titles = append(titles, title)
	}

	s.logger.Info("Loaded title batch",
		logging.F(logging.FieldInputFile, path),
		logging.F(logging.FieldCount, len(titles)))
	return titles, nil
}

// readCSVFile reads CSV data into a slice of row structs using gocsv.
func readCSVFile[TRow any](s *Store, path string) ([]TRow, error) {
	log := s.logger.WithField(logging.FieldInputFile, path)
	log.Info("Reading CSV file")

	file, err := fileutils.OpenFile(path)
	if err != nil {
		log.WithError(err).Error("Failed to open CSV file")
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	r := csv.NewReader(file)
	r.Comma = s.Delimiter
	r.TrimLeadingSpace = true

	var rows []TRow
	if err := gocsv.UnmarshalCSV(r, &rows); err != nil {
		log.WithError(err).Error("Failed to parse CSV file")
		return nil, fmt.Errorf("error parsing CSV file %s: %w", path, err)
	}

	log.Debug("Successfully read CSV data", logging.F(logging.FieldCount, len(rows)))
	return rows, nil
}
