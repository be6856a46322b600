package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/katalvlaran/triangulation/group"
)

// ExportRecord is one (group, member) row of the flat interchange format.
type ExportRecord struct {
	GroupID       int
	GroupSize     int
	GroupLengthMb float64
	GroupStart    int64
	GroupEnd      int64
	MatchName     string
	Surname       string
	Chromosome    string
	Start         int64
	End           int64
	Centimorgans  float64
	MatchingSNPs  int64
}

// ExportHeader names the columns of WriteCSV and the records sheet of WriteXLSX.
var ExportHeader = []string{
	"Group_ID", "Group_Size", "Group_Length_Mb", "Group_Start", "Group_End",
	"Match_Name", "Surname", "Chromosome", "Start_Location", "End_Location",
	"Centimorgans", "Matching_SNPs",
}

// ExportRecords flattens groups in the given order. Groups without an ID are
// numbered by position, starting at 1. The group length is rounded to 2 decimals.
func ExportRecords(groups []group.Group) []ExportRecord {
	var out []ExportRecord
	for i, g := range groups {
		id := g.ID
		if id == 0 {
			id = i + 1
		}
		start, end := g.Bounds()
		length := math.Round(g.SpanMb()*100) / 100
		for _, m := range g.Members {
			out = append(out, ExportRecord{
				GroupID:       id,
				GroupSize:     g.Size(),
				GroupLengthMb: length,
				GroupStart:    start,
				GroupEnd:      end,
				MatchName:     m.MatchName,
				Surname:       Surname(m.MatchName),
				Chromosome:    m.Chromosome,
				Start:         m.Start,
				End:           m.End,
				Centimorgans:  m.Centimorgans,
				MatchingSNPs:  m.MatchingSNPs,
			})
		}
	}
	return out
}

func (r ExportRecord) strings() []string {
	return []string{
		strconv.Itoa(r.GroupID),
		strconv.Itoa(r.GroupSize),
		decimal(r.GroupLengthMb),
		strconv.FormatInt(r.GroupStart, 10),
		strconv.FormatInt(r.GroupEnd, 10),
		r.MatchName,
		r.Surname,
		r.Chromosome,
		strconv.FormatInt(r.Start, 10),
		strconv.FormatInt(r.End, 10),
		decimal(r.Centimorgans),
		strconv.FormatInt(r.MatchingSNPs, 10),
	}
}

func (r ExportRecord) cells() []any {
	return []any{
		r.GroupID, r.GroupSize, r.GroupLengthMb, r.GroupStart, r.GroupEnd,
		r.MatchName, r.Surname, r.Chromosome, r.Start, r.End,
		r.Centimorgans, r.MatchingSNPs,
	}
}

// WriteCSV writes a header line and one line per record.
func WriteCSV(w io.Writer, records []ExportRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeader); err != nil {
		return fmt.Errorf("report: write csv header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(r.strings()); err != nil {
			return fmt.Errorf("report: write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Sheet names used by WriteXLSX.
const (
	RecordsSheet = "Triangulation"
	GroupsSheet  = "Groups"
)

var groupsHeader = []string{
	"Group_ID", "Chromosome", "Group_Size", "Group_Start", "Group_End",
	"Group_Length_Mb", "Total_cM", "Average_cM", "Families",
}

// WriteXLSX writes a workbook with the records on one sheet and a per-group
// summary on another.
func WriteXLSX(w io.Writer, records []ExportRecord, groups []group.Group) error {
	xlsx := excelize.NewFile()
	defer xlsx.Close()

	if err := xlsx.SetSheetName("Sheet1", RecordsSheet); err != nil {
		return fmt.Errorf("report: xlsx: %w", err)
	}
	if _, err := xlsx.NewSheet(GroupsSheet); err != nil {
		return fmt.Errorf("report: xlsx: %w", err)
	}

	if err := xlsx.SetSheetRow(RecordsSheet, "A1", &ExportHeader); err != nil {
		return fmt.Errorf("report: xlsx: %w", err)
	}
	for i, r := range records {
		row := r.cells()
		if err := xlsx.SetSheetRow(RecordsSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return fmt.Errorf("report: xlsx row %d: %w", i+2, err)
		}
	}

	if err := xlsx.SetSheetRow(GroupsSheet, "A1", &groupsHeader); err != nil {
		return fmt.Errorf("report: xlsx: %w", err)
	}
	for i, g := range groups {
		id := g.ID
		if id == 0 {
			id = i + 1
		}
		start, end := g.Bounds()
		row := []any{
			id, g.Chromosome, g.Size(), start, end,
			math.Round(g.SpanMb()*100) / 100,
			math.Round(g.TotalCM()*10) / 10,
			math.Round(g.AverageCM()*10) / 10,
			len(surnames(g.Members)),
		}
		if err := xlsx.SetSheetRow(GroupsSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return fmt.Errorf("report: xlsx group %d: %w", id, err)
		}
	}

	if _, err := xlsx.WriteTo(w); err != nil {
		return fmt.Errorf("report: xlsx: %w", err)
	}
	return nil
}
