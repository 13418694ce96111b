package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
)

// MissingColumnError reports an input file without the expected column.
type MissingColumnError struct {
	Path   string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("csvio: %s has no %q column", e.Path, e.Column)
}

// ReadColumn returns the non-empty values of one column of a CSV file.
func ReadColumn(path, column string) ([]string, error) {
	values, err := readColumn(path, column)
	if err != nil {
		return nil, err
	}
	if values == nil {
		return nil, &MissingColumnError{Path: path, Column: column}
	}
	return values, nil
}

// ReadColumnIfPresent behaves like ReadColumn but returns nil instead of an
// error when the column does not exist, for inputs that may carry either an
// ID column or a URL column.
func ReadColumnIfPresent(path, column string) ([]string, error) {
	return readColumn(path, column)
}

func readColumn(path, column string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read %s header", path)
	}

	index := -1
	for i, name := range header {
		if name == column {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, nil
	}

	values := []string{}
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", path)
		}
		if index < len(row) && row[index] != "" {
			values = append(values, row[index])
		}
	}
	return values, nil
}
