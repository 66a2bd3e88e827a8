package dataset

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/segmentio/parquet-go"
)

// parquetReader yields dataset rows from a parquet file. Column values are
// flattened to their string form so the loaders validate one shape
// regardless of the source format.
type parquetReader struct {
	file   *os.File
	reader *parquet.Reader
}

func newParquetReader(path string) (*parquetReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	return &parquetReader{file: file, reader: parquet.NewReader(pqFile)}, nil
}

func (r *parquetReader) Next() (map[string]string, error) {
	raw := make(map[string]interface{})
	if err := r.reader.Read(&raw); err != nil {
		if errors.Is(err, io.EOF) || err.Error() == "EOF" {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	row := make(map[string]string, len(raw))
	for name, value := range raw {
		row[name] = flattenValue(value)
	}
	return row, nil
}

func flattenValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

func (r *parquetReader) Close() error {
	r.reader.Close()
	return r.file.Close()
}
