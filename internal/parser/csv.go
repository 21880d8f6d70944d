package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roster-manager/backend/internal/models"
	"github.com/roster-manager/backend/internal/roster"
)

// ErrParse marks input that cannot be read as a roster.
var ErrParse = errors.New("unable to parse roster")

// Recognized roster columns.
const (
	ColumnName     = "Name"
	ColumnState    = "State"
	ColumnSalary   = "Salary"
	ColumnGrade    = "Grade"
	ColumnRoom     = "Room"
	ColumnTelnum   = "Telnum"
	ColumnPicture  = "Picture"
	ColumnKeywords = "Keywords"
)

// nullTokens are the cell values spreadsheet exports use for a missing value.
var nullTokens = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// IsNullToken reports whether a raw cell denotes a missing value.
func IsNullToken(v string) bool {
	_, ok := nullTokens[v]
	return ok
}

// ParseRoster reads a CSV roster with a header row. Rows without a usable
// name are skipped; a later row with the same name overwrites an earlier one.
// Any structural problem is reported as ErrParse.
func ParseRoster(r io.Reader) (*roster.Roster, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: reading input: %v", ErrParse, err)
	}

	decoded, _, err := DetectAndDecode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: no columns to parse from file", ErrParse)
		}
		return nil, fmt.Errorf("%w: reading header row: %v", ErrParse, err)
	}

	cols := indexColumns(headers)
	out := roster.New()

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		if len(row) > len(headers) {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("%w: line %d: expected %d fields, saw %d", ErrParse, line, len(headers), len(row))
		}

		name, ok := cols.name(row)
		if !ok {
			continue
		}

		out.Put(name, models.Person{
			State:    cols.value(row, ColumnState),
			Salary:   cols.value(row, ColumnSalary),
			Grade:    cols.value(row, ColumnGrade),
			Room:     cols.value(row, ColumnRoom),
			Telnum:   cols.value(row, ColumnTelnum),
			Picture:  cols.value(row, ColumnPicture),
			Keywords: cols.value(row, ColumnKeywords),
		})
	}

	return out, nil
}

// columns maps a recognized column name to its position in the header.
type columns map[string]int

func indexColumns(headers []string) columns {
	cols := make(columns, len(headers))
	for i, h := range headers {
		h = norm.NFC.String(strings.TrimSpace(h))
		if _, seen := cols[h]; !seen {
			cols[h] = i
		}
	}
	return cols
}

// name returns the trimmed name of a row and whether the row is usable.
func (c columns) name(row []string) (string, bool) {
	i, ok := c[ColumnName]
	if !ok || i >= len(row) {
		return "", false
	}
	raw := row[i]
	if IsNullToken(raw) {
		return "", false
	}
	name := strings.TrimSpace(raw)
	if name == "" || name == models.NullMarker {
		return "", false
	}
	return name, true
}

// value coerces a cell to text. Absent columns give "", missing cells in a
// present column give the null marker.
func (c columns) value(row []string, column string) string {
	i, ok := c[column]
	if !ok {
		return ""
	}
	if i >= len(row) || IsNullToken(row[i]) {
		return models.NullMarker
	}
	return row[i]
}
