package storage

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/san-kum/gdesim/internal/field"
)

// ReadTable reads a two-column (position, value) table.
func ReadTable(path string) ([]float64, []float64, error) {
	cols, err := ReadColumns(path, 2)
	if err != nil {
		return nil, nil, err
	}
	return cols[0], cols[1], nil
}

// ReadColumns reads the first n columns of a whitespace or comma separated
// table. Blank lines and lines starting with '#' are skipped; extra columns
// are ignored.
func ReadColumns(path string, n int) ([][]float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &field.InputFileError{Path: path, Err: err}
	}
	defer file.Close()

	cols := make([][]float64, n)
	sc := bufio.NewScanner(file)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.FieldsFunc(text, func(r rune) bool {
			return unicode.IsSpace(r) || r == ','
		})
		if len(fields) < n {
			return nil, &field.InputFileError{Path: path, Err: fmt.Errorf("line %d: expected %d columns, got %d", line, n, len(fields))}
		}

		for j := 0; j < n; j++ {
			v, err := strconv.ParseFloat(fields[j], 64)
			if err != nil {
				return nil, &field.InputFileError{Path: path, Err: fmt.Errorf("line %d: %v", line, err)}
			}
			cols[j] = append(cols[j], v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, &field.InputFileError{Path: path, Err: err}
	}
	if len(cols[0]) == 0 {
		return nil, &field.InputFileError{Path: path, Err: fmt.Errorf("no data rows")}
	}

	return cols, nil
}

// WriteTable writes equal-length columns, tab separated, one row per point.
func WriteTable(path string, cols ...[]float64) error {
	if len(cols) == 0 {
		return fmt.Errorf("%w: no columns to write", field.ErrInvalidInput)
	}
	for i, c := range cols[1:] {
		if len(c) != len(cols[0]) {
			return fmt.Errorf("%w: column %d has %d rows, expected %d", field.ErrInvalidInput, i+1, len(c), len(cols[0]))
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	row := make([]string, len(cols))
	for i := range cols[0] {
		for j, c := range cols {
			row[j] = strconv.FormatFloat(c[i], 'e', 10, 64)
		}
		if _, err := w.WriteString(strings.Join(row, "\t") + "\n"); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return file.Close()
}
