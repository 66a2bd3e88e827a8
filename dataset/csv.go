package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// csvReader yields dataset rows from a semicolon-separated file with a
// header row, optionally gzip-compressed.
type csvReader struct {
	cr     *csv.Reader
	header []string
	file   *os.File
	gz     *gzip.Reader // nil for plain files
}

func newCSVReader(path string) (*csvReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	var src io.Reader = file
	var gz *gzip.Reader
	if strings.HasSuffix(path, ".gz") {
		gz, err = gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		src = gz
	}

	cr := csv.NewReader(src)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1 // row width is checked per record instead

	header, err := cr.Read()
	if err != nil {
		if gz != nil {
			gz.Close()
		}
		file.Close()
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	return &csvReader{cr: cr, header: header, file: file, gz: gz}, nil
}

func (r *csvReader) Next() (map[string]string, error) {
	record, err := r.cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return nil, fmt.Errorf("%w: %v", errMalformedRow, err)
		}
		return nil, err
	}
	if len(record) != len(r.header) {
		return nil, fmt.Errorf("%w: got %d fields, want %d", errMalformedRow, len(record), len(r.header))
	}

	row := make(map[string]string, len(r.header))
	for i, name := range r.header {
		row[name] = record[i]
	}
	return row, nil
}

func (r *csvReader) Close() error {
	if r.gz != nil {
		r.gz.Close()
	}
	return r.file.Close()
}
