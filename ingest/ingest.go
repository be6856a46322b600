// Package ingest reads DNA match segments from CSV or XLSX exports.
//
// The first row must name the columns; the required ones are listed in
// Columns, in any order, and extra columns are ignored. Rows repeating an
// earlier (match name, chromosome, start, end) are skipped and counted.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"

	"github.com/katalvlaran/triangulation/segment"
)

var (
	// ErrMissingColumn is returned when the header lacks a required column.
	ErrMissingColumn = errors.New("ingest: missing required column")

	// ErrBadRow is returned for a row whose fields cannot form a valid segment.
	ErrBadRow = errors.New("ingest: bad row")

	// ErrUnsupportedFormat is returned by ReadFile for unknown file extensions.
	ErrUnsupportedFormat = errors.New("ingest: unsupported file format")
)

// Column names, as written by the common match-list exports.
const (
	ColMatchName    = "Match Name"
	ColChromosome   = "Chromosome"
	ColStart        = "Start Location"
	ColEnd          = "End Location"
	ColCentimorgans = "Centimorgans"
	ColMatchingSNPs = "Matching SNPs"
)

// Columns lists the required header names.
var Columns = []string{ColMatchName, ColChromosome, ColStart, ColEnd, ColCentimorgans, ColMatchingSNPs}

// Batch is the result of one import.
type Batch struct {
	Segments   []segment.Segment
	Duplicates int
}

type key struct {
	name, chr  string
	start, end int64
}

// ReadCSV parses a CSV export.
func ReadCSV(r io.Reader) (*Batch, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("ingest: read csv: %w", err)
	}
	return fromRows(rows)
}

// ReadXLSX parses the first sheet of an XLSX workbook.
func ReadXLSX(r io.Reader) (*Batch, error) {
	xlsx, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("ingest: open xlsx: %w", err)
	}
	defer xlsx.Close()

	sheets := xlsx.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrMissingColumn)
	}
	rows, err := xlsx.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("ingest: read sheet %q: %w", sheets[0], err)
	}
	return fromRows(rows)
}

// ReadFile picks the reader from the file extension (.csv or .xlsx).
func ReadFile(path string) (*Batch, error) {
	var read func(io.Reader) (*Batch, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		read = ReadCSV
	case ".xlsx":
		read = ReadXLSX
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}
	defer f.Close()
	return read(f)
}

func fromRows(rows [][]string) (*Batch, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrMissingColumn)
	}
	header := lo.Map(rows[0], func(h string, _ int) string { return strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")) })
	col := make(map[string]int, len(Columns))
	for _, name := range Columns {
		i := lo.IndexOf(header, name)
		if i < 0 {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
		col[name] = i
	}

	b := &Batch{}
	seen := make(map[key]struct{}, len(rows))
	for n, row := range rows[1:] {
		line := n + 2
		if lo.EveryBy(row, func(f string) bool { return strings.TrimSpace(f) == "" }) {
			continue
		}
		s, err := parseRow(row, col)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrBadRow, line, err)
		}
		k := key{s.MatchName, s.Chromosome, s.Start, s.End}
		if _, dup := seen[k]; dup {
			b.Duplicates++
			continue
		}
		seen[k] = struct{}{}
		b.Segments = append(b.Segments, s)
	}
	return b, nil
}

func parseRow(row []string, col map[string]int) (segment.Segment, error) {
	field := func(name string) string {
		if i := col[name]; i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	var (
		s   = segment.Segment{MatchName: field(ColMatchName), Chromosome: field(ColChromosome)}
		err error
	)
	if s.Start, err = parseInt(field(ColStart)); err != nil {
		return s, fmt.Errorf("%s: %w", ColStart, err)
	}
	if s.End, err = parseInt(field(ColEnd)); err != nil {
		return s, fmt.Errorf("%s: %w", ColEnd, err)
	}
	if s.Centimorgans, err = strconv.ParseFloat(field(ColCentimorgans), 64); err != nil {
		return s, fmt.Errorf("%s: %w", ColCentimorgans, err)
	}
	if s.MatchingSNPs, err = parseInt(field(ColMatchingSNPs)); err != nil {
		return s, fmt.Errorf("%s: %w", ColMatchingSNPs, err)
	}
	return s, s.Validate()
}

// parseInt accepts plain integers, comma-grouped integers and integral
// floats such as "1500000.0".
func parseInt(v string) (int64, error) {
	v = strings.ReplaceAll(v, ",", "")
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	if f != float64(int64(f)) {
		return 0, fmt.Errorf("not an integer: %q", v)
	}
	return int64(f), nil
}
