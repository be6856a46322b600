package report_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/katalvlaran/triangulation/group"
	"github.com/katalvlaran/triangulation/report"
	"github.com/katalvlaran/triangulation/segment"
)

func seg(name, chr string, start, end int64, cm float64) segment.Segment {
	return segment.Segment{MatchName: name, Chromosome: chr, Start: start, End: end, Centimorgans: cm, MatchingSNPs: 1200}
}

func smiths() group.Group {
	return group.Group{ID: 1, Chromosome: "2", Members: []segment.Segment{
		seg("A Smith", "2", 0, 10_000_000, 20),
		seg("B Smith", "2", 5_000_000, 15_000_000, 15),
	}}
}

func mixed() group.Group {
	return group.Group{ID: 2, Chromosome: "10", Members: []segment.Segment{
		seg("E Jones", "10", 3_000_000, 8_000_000, 5),
		seg("D Brown", "10", 2_000_000, 6_000_000, 6),
		seg("C Jones", "10", 1_000_000, 9_000_000, 7),
	}}
}

func TestSurname(t *testing.T) {
	cases := map[string]string{
		"Dr. Jane A. Smith":     "Smith",
		"Madonna":               "Madonna",
		"":                      "Unknown",
		"   ":                   "Unknown",
		"Mr.":                   "Unknown",
		"Mrs. Ann Lee":          "Lee",
		"John Doe Ph.D.":        "Doe",
		"  Mary   Ellen  Kent ": "Kent",
	}
	for in, want := range cases {
		assert.Equal(t, want, report.Surname(in), "input %q", in)
	}
}

func TestFamilies_Order(t *testing.T) {
	fams := report.Families(mixed().Members)
	require.Len(t, fams, 2)
	assert.Equal(t, "Jones", fams[0].Surname)
	assert.Equal(t, "C Jones", fams[0].Members[0].MatchName)
	assert.Equal(t, "E Jones", fams[0].Members[1].MatchName)
	assert.Equal(t, "Brown", fams[1].Surname)
}

func TestRank_StableBySize(t *testing.T) {
	a, b, c := smiths(), mixed(), smiths()
	c.ID = 3
	in := []group.Group{a, b, c}
	ranked := report.Rank(in)
	assert.Equal(t, []int{2, 1, 3}, []int{ranked[0].ID, ranked[1].ID, ranked[2].ID})
	assert.Equal(t, 1, in[0].ID, "input left untouched")
}

func TestRender_Empty(t *testing.T) {
	for _, s := range []report.Style{report.Detailed, report.Summary, report.Listing} {
		assert.Equal(t, report.EmptyMessage, report.Render(nil, s))
	}
}

func TestRender_Summary(t *testing.T) {
	got := report.Render([]group.Group{smiths(), mixed()}, report.Summary)
	want := strings.Join([]string{
		"QUICK GROUP SUMMARY (Largest First)",
		strings.Repeat("=", 50),
		" 1.   3 people | Chr 10 |   8.0 Mb | Mixed: 2 families",
		" 2.   2 people | Chr 2  |  15.0 Mb | Smith (2)",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestRender_Detailed(t *testing.T) {
	got := report.Render([]group.Group{smiths(), mixed()}, report.Detailed, report.WithCMFilterNote(7))
	for _, line := range []string{
		"(Filtered to show only matches ≥ 7.0 cM)",
		"SUMMARY: Found 2 triangulation groups",
		"Largest group: 3 people",
		"Smallest group: 2 people",
		"RANK #1: 3 PEOPLE SHARE DNA HERE",
		"Location: Chromosome 10, 1,000,000 - 9,000,000 bp (8.0 Mb)",
		"Strength: Average 6.0 cM per person, Total 18.0 cM",
		"  Jones family (2 people):",
		"    • C Jones (7.0 cM, 1,200 SNPs)",
		"  → SUGGESTION: Mixed families (Jones, Brown)",
		"RANK #2: 2 PEOPLE SHARE DNA HERE",
		"Location: Chromosome 2, 0 - 15,000,000 bp (15.0 Mb)",
		"Strength: Average 17.5 cM per person, Total 35.0 cM",
		"  → SUGGESTION: This appears to be a pure Smith ancestral line",
		"    Consider assigning to a Smith ancestor",
	} {
		assert.Contains(t, got, line+"\n")
	}
	assert.Less(t, strings.Index(got, "C Jones"), strings.Index(got, "E Jones"))

	assert.NotContains(t, report.Render([]group.Group{smiths()}, report.Detailed), "Filtered")
}

func TestRender_DetailedTruncatesLargeGroups(t *testing.T) {
	g := group.Group{ID: 1, Chromosome: "7"}
	for i := 1; i <= 15; i++ {
		g.Members = append(g.Members, seg(fmt.Sprintf("S%d Smith", i), "7", 0, 5_000_000, float64(i)))
	}
	for i := 1; i <= 7; i++ {
		g.Members = append(g.Members, seg(fmt.Sprintf("L%d Lee", i), "7", 0, 5_000_000, float64(i)))
	}
	got := report.Render([]group.Group{g}, report.Detailed)

	assert.Equal(t, 10, strings.Count(got, "    • "))
	assert.Contains(t, got, "    • S15 Smith (15.0 cM, 1,200 SNPs)\n")
	assert.NotContains(t, got, "S10 Smith")
	assert.Contains(t, got, "    ... and 10 more Smith family members\n")
	assert.Contains(t, got, "    ... and 2 more Lee family members\n")
	assert.Less(t, strings.Index(got, "Smith family (15 people)"), strings.Index(got, "Lee family (7 people)"))
}

func TestRender_Listing(t *testing.T) {
	got := report.Render([]group.Group{smiths()}, report.Listing)
	want := strings.Join([]string{
		"TRIANGULATION ANALYSIS RESULTS",
		strings.Repeat("=", 60),
		"",
		"Found 1 potential triangulation groups:",
		"",
		"GROUP 1:",
		"  Chromosome: 2",
		"  Region: 0 - 15,000,000 bp",
		"  Length: 15.00 Mb",
		"  Members (2):",
		"    • A Smith (Smith)",
		"      0 - 10,000,000 bp, 20.0 cM",
		"    • B Smith (Smith)",
		"      5,000,000 - 15,000,000 bp, 15.0 cM",
		"  ✓ All members from Smith family",
		"",
	}, "\n")
	assert.Equal(t, want, got)
	assert.Contains(t, report.Render([]group.Group{mixed()}, report.Listing), "  ⚠ Mixed families: Jones, Brown\n")
}

func TestRender_Idempotent(t *testing.T) {
	in := []group.Group{smiths(), mixed()}
	for _, s := range []report.Style{report.Detailed, report.Summary, report.Listing} {
		assert.Equal(t, report.Render(in, s), report.Render(in, s), s.String())
	}
}

func TestParseStyle(t *testing.T) {
	for _, s := range []report.Style{report.Detailed, report.Summary, report.Listing} {
		got, err := report.ParseStyle(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err := report.ParseStyle("fancy")
	require.ErrorIs(t, err, report.ErrUnknownStyle)
}

func TestExportRecords(t *testing.T) {
	g := smiths()
	g.Members[0].Start = 1_234_567 // span 13.765433 Mb
	recs := report.ExportRecords([]group.Group{g, mixed()})
	require.Len(t, recs, 5)

	assert.Equal(t, report.ExportRecord{
		GroupID: 1, GroupSize: 2, GroupLengthMb: 13.77, GroupStart: 1_234_567, GroupEnd: 15_000_000,
		MatchName: "A Smith", Surname: "Smith", Chromosome: "2", Start: 1_234_567, End: 10_000_000,
		Centimorgans: 20, MatchingSNPs: 1200,
	}, recs[0])
	assert.Equal(t, 2, recs[4].GroupID)
	assert.Equal(t, "C Jones", recs[4].MatchName)

	unnumbered := smiths()
	unnumbered.ID = 0
	recs = report.ExportRecords([]group.Group{mixed(), unnumbered})
	assert.Equal(t, 2, recs[3].GroupID)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteCSV(&buf, report.ExportRecords([]group.Group{smiths()})))
	want := "Group_ID,Group_Size,Group_Length_Mb,Group_Start,Group_End,Match_Name,Surname,Chromosome,Start_Location,End_Location,Centimorgans,Matching_SNPs\n" +
		"1,2,15.0,0,15000000,A Smith,Smith,2,0,10000000,20.0,1200\n" +
		"1,2,15.0,0,15000000,B Smith,Smith,2,5000000,15000000,15.0,1200\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteXLSX(t *testing.T) {
	groups := []group.Group{smiths(), mixed()}
	var buf bytes.Buffer
	require.NoError(t, report.WriteXLSX(&buf, report.ExportRecords(groups), groups))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(report.RecordsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, report.ExportHeader, rows[0])
	assert.Equal(t, "A Smith", rows[1][5])

	summary, err := f.GetRows(report.GroupsSheet)
	require.NoError(t, err)
	require.Len(t, summary, 3)
	assert.Equal(t, []string{"2", "10", "3", "1000000", "9000000", "8", "18", "6", "2"}, summary[2])
}
