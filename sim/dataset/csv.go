// Package dataset loads the dealership's initial inventory and market-trend
// reference from CSV exports.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// table is a parsed CSV file addressed by header name.
type table struct {
	columns map[string]int
	rows    [][]string
}

func readTable(r io.Reader, required ...string) (*table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv has no header row")
	}
	t := &table{columns: make(map[string]int), rows: records[1:]}
	for i, name := range records[0] {
		t.columns[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, name := range required {
		if _, ok := t.columns[name]; !ok {
			return nil, fmt.Errorf("csv is missing column %q", name)
		}
	}
	return t, nil
}

func (t *table) get(row []string, column string) string {
	i, ok := t.columns[column]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (t *table) float(row []string, column string, line int) (float64, error) {
	v, err := strconv.ParseFloat(t.get(row, column), 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: column %q: %w", line, column, err)
	}
	return v, nil
}

func (t *table) integer(row []string, column string, line int) (int, error) {
	v, err := strconv.Atoi(t.get(row, column))
	if err != nil {
		return 0, fmt.Errorf("line %d: column %q: %w", line, column, err)
	}
	return v, nil
}

// ParsePrice converts a display price such as "£23,450" into a number.
// Pound signs (including the mis-encoded "Â£"), thousands separators and
// surrounding whitespace are removed.
func ParsePrice(s string) (float64, error) {
	cleaned := strings.NewReplacer("Â£", "", "£", "", ",", "").Replace(s)
	cleaned = strings.TrimSpace(cleaned)
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing price %q: %w", s, err)
	}
	return v, nil
}
