// Package roster reads league member lists.
package roster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"draft-order/internal/domain"
)

type Row struct {
	Name string
}

// ParseCSV reads rows from a CSV file whose header contains a "name" column
// (case-insensitive). Other columns are ignored.
func ParseCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, domain.ErrMissingColumn
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read roster header: %v", domain.ErrValidation, err)
	}

	col := -1
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")), "name") {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, domain.ErrMissingColumn
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read roster row: %v", domain.ErrValidation, err)
		}
		if col >= len(record) {
			continue
		}
		rows = append(rows, Row{Name: record[col]})
	}
	return rows, nil
}

// Normalize trims names and drops blanks and case-insensitive duplicates,
// keeping the first spelling seen.
func Normalize(rows []Row) []string {
	seen := make(map[string]bool, len(rows))
	names := make([]string, 0, len(rows))
	for _, r := range rows {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			continue
		}
		key := domain.NameKey(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		names = append(names, name)
	}
	return names
}
