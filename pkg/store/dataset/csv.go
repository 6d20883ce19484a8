package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// sentinelMissing marks absent numeric values in the upstream exports.
const sentinelMissing = -999999.9

type table struct {
	index map[string]int
	rows  [][]string
}

func readTable(src Source, name string) (*table, error) {
	f, err := src.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := decodeAll(f)
	if err != nil {
		return nil, err
	}

	return parseTable(data)
}

func parseTable(data []byte) (*table, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.TrimLeadingSpace = true

	headers, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("no header row")
	}
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.TrimSpace(h)] = i
	}

	var rows [][]string
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	return &table{index: index, rows: rows}, nil
}

func (t *table) require(columns ...string) error {
	for _, c := range columns {
		if _, ok := t.index[c]; !ok {
			return fmt.Errorf("missing column %q", c)
		}
	}
	return nil
}

func (t *table) cell(row []string, column string) string {
	i, ok := t.index[column]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// text returns the cell as a categorical value, mapping the numeric missing
// sentinel to empty.
func (t *table) text(row []string, column string) string {
	v := t.cell(row, column)
	if v == "-999999.9" {
		return ""
	}
	return v
}

// number returns the cell as a float, NaN when empty, unparsable or equal to
// the missing sentinel. Thousands separators are tolerated.
func (t *table) number(row []string, column string) float64 {
	v := strings.ReplaceAll(t.cell(row, column), ",", "")
	if v == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f == sentinelMissing {
		return math.NaN()
	}
	return f
}
