package titleio

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"fjacquet/boleto-cnab/internal/fileutils"
	"fjacquet/boleto-cnab/internal/logging"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Charsets accepted for remittance files.
const (
	CharsetISO88591    = "iso-8859-1"
	CharsetWindows1252 = "windows-1252"
	CharsetASCII       = "ascii"

	DefaultCharset = CharsetISO88591
)

// Encode converts UTF-8 content to charset; an empty name is DefaultCharset.
// A character the charset cannot represent is an error.
func Encode(content, charset string) ([]byte, error) {
	var enc *encoding.Encoder
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", CharsetISO88591, "latin1", "latin-1":
		enc = charmap.ISO8859_1.NewEncoder()
	case CharsetWindows1252, "cp1252":
		enc = charmap.Windows1252.NewEncoder()
	case CharsetASCII, "us-ascii":
		for i, r := range content {
			if r >= utf8.RuneSelf {
				return nil, fmt.Errorf("non-ASCII character %q at byte %d", r, i)
			}
		}
		return []byte(content), nil
	default:
		return nil, fmt.Errorf("unsupported charset '%s'", charset)
	}
	return enc.Bytes([]byte(content))
}

// WriteRemittance encodes content to charset, then writes it. Content the
// charset cannot represent fails before the file is created.
func (s *Store) WriteRemittance(path, content, charset string) error {
	log := s.logger.WithFields(
		logging.F(logging.FieldOutputFile, path),
		logging.F(logging.FieldCharset, charset),
	)

	encoded, err := Encode(content, charset)
	if err != nil {
		log.WithError(err).Error("Failed to encode remittance")
		return fmt.Errorf("remittance cannot be encoded as %s: %w", charset, err)
	}

	if fileutils.FileExists(path) {
		log.Warn("Overwriting existing remittance file")
	}
	file, err := fileutils.CreateFile(path)
	if err != nil {
		log.WithError(err).Error("Failed to create remittance file")
		return err
	}
	if _, err := file.Write(encoded); err != nil {
		_ = file.Close()
		log.WithError(err).Error("Failed to write remittance file")
		return fmt.Errorf("error writing remittance file: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("error closing remittance file: %w", err)
	}

	log.Info("Successfully wrote remittance file", logging.F("bytes", len(encoded)))
	return nil
}
