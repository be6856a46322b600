package report

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/katalvlaran/triangulation/group"
)

// EmptyMessage is rendered instead of a report when there are no groups.
const EmptyMessage = "No triangulation groups found."

// ErrUnknownStyle is returned by ParseStyle for unrecognized names.
var ErrUnknownStyle = errors.New("report: unknown style")

// Style selects the text layout.
type Style int

const (
	// Detailed lists every ranked group with its families and an assignment suggestion.
	Detailed Style = iota
	// Summary prints one line per ranked group.
	Summary
	// Listing prints groups in merged order with every member and its surname.
	Listing
)

func (s Style) String() string {
	switch s {
	case Detailed:
		return "detailed"
	case Summary:
		return "summary"
	case Listing:
		return "listing"
	}
	return "unknown"
}

// ParseStyle maps a style name to a Style.
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(s) {
	case "detailed", "":
		return Detailed, nil
	case "summary":
		return Summary, nil
	case "listing":
		return Listing, nil
	}
	return Detailed, fmt.Errorf("%w: %q", ErrUnknownStyle, s)
}

// largeGroup is the size above which Detailed lists only the strongest
// members of each family.
const (
	largeGroup  = 20
	familyShown = 5
)

// Option configures Render.
type Option func(*options)

type options struct {
	minCM float64
}

// WithCMFilterNote adds a note to the Detailed header that matches below
// minCM were filtered out. Values ≤ 0 add nothing.
func WithCMFilterNote(minCM float64) Option {
	return func(o *options) { o.minCM = minCM }
}

// Render formats groups in the given style.
func Render(groups []group.Group, style Style, opts ...Option) string {
	if len(groups) == 0 {
		return EmptyMessage
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	r := &renderer{p: message.NewPrinter(language.English)}
	switch style {
	case Summary:
		r.summary(Rank(groups))
	case Listing:
		r.listing(groups)
	default:
		r.detailed(Rank(groups), o)
	}
	return strings.Join(r.lines, "\n")
}

type renderer struct {
	p     *message.Printer
	lines []string
}

func (r *renderer) line(format string, args ...any) {
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

// n groups thousands with commas.
func (r *renderer) n(v int64) string { return r.p.Sprintf("%d", v) }

func (r *renderer) detailed(ranked []group.Group, o options) {
	r.line("DNA TRIANGULATION GROUPS - SORTED BY SIZE")
	r.line("%s", strings.Repeat("=", 60))
	r.line("(Largest groups first - these represent your strongest ancestral lines)")
	if o.minCM > 0 {
		r.line("(Filtered to show only matches ≥ %s cM)", decimal(o.minCM))
	}
	r.line("")
	r.line("SUMMARY: Found %d triangulation groups", len(ranked))
	r.line("Largest group: %d people", ranked[0].Size())
	r.line("Smallest group: %d people", ranked[len(ranked)-1].Size())
	r.line("")
	r.line("%s", strings.Repeat("=", 60))
	r.line("")

	for i, g := range ranked {
		start, end := g.Bounds()
		r.line("RANK #%d: %d PEOPLE SHARE DNA HERE", i+1, g.Size())
		r.line("Location: Chromosome %s, %s - %s bp (%.1f Mb)", g.Chromosome, r.n(start), r.n(end), g.SpanMb())
		r.line("Strength: Average %.1f cM per person, Total %.1f cM", g.AverageCM(), g.TotalCM())
		r.line("")
		r.line("PEOPLE IN THIS GROUP (by family name):")

		fams := Families(g.Members)
		for _, f := range fams {
			r.line("  %s family (%d people):", f.Surname, len(f.Members))
			for k, m := range f.Members {
				if g.Size() > largeGroup && k == familyShown {
					r.line("    ... and %d more %s family members", len(f.Members)-familyShown, f.Surname)
					break
				}
				r.line("    • %s (%.1f cM, %s SNPs)", m.MatchName, m.Centimorgans, r.n(m.MatchingSNPs))
			}
		}

		r.line("")
		if len(fams) == 1 {
			r.line("  → SUGGESTION: This appears to be a pure %s ancestral line", fams[0].Surname)
			r.line("    Consider assigning to a %s ancestor", fams[0].Surname)
		} else {
			r.line("  → SUGGESTION: Mixed families (%s)", strings.Join(surnames(g.Members), ", "))
			r.line("    This may represent a common ancestor shared by these families")
		}
		r.line("")
		r.line("  MANUAL ASSIGNMENT: ________________________________")
		r.line("  (Write the ancestor name you want to assign this group to)")
		r.line("")
		r.line("%s", strings.Repeat("-", 60))
		r.line("")
	}
}

func (r *renderer) summary(ranked []group.Group) {
	r.line("QUICK GROUP SUMMARY (Largest First)")
	r.line("%s", strings.Repeat("=", 50))
	for i, g := range ranked {
		fams := Families(g.Members)
		mix := fmt.Sprintf("Mixed: %d families", len(fams))
		if len(fams) == 1 {
			mix = fmt.Sprintf("%s (%d)", fams[0].Surname, len(fams[0].Members))
		}
		r.line("%2d. %3d people | Chr %-2s | %5.1f Mb | %s", i+1, g.Size(), g.Chromosome, g.SpanMb(), mix)
	}
}

func (r *renderer) listing(groups []group.Group) {
	r.line("TRIANGULATION ANALYSIS RESULTS")
	r.line("%s", strings.Repeat("=", 60))
	r.line("")
	r.line("Found %d potential triangulation groups:", len(groups))
	r.line("")
	for i, g := range groups {
		start, end := g.Bounds()
		r.line("GROUP %d:", i+1)
		r.line("  Chromosome: %s", g.Chromosome)
		r.line("  Region: %s - %s bp", r.n(start), r.n(end))
		r.line("  Length: %.2f Mb", g.SpanMb())
		r.line("  Members (%d):", g.Size())
		for _, m := range g.Members {
			r.line("    • %s (%s)", m.MatchName, Surname(m.MatchName))
			r.line("      %s - %s bp, %s cM", r.n(m.Start), r.n(m.End), decimal(m.Centimorgans))
		}
		if names := surnames(g.Members); len(names) == 1 {
			r.line("  ✓ All members from %s family", names[0])
		} else {
			r.line("  ⚠ Mixed families: %s", strings.Join(names, ", "))
		}
		r.line("")
	}
}

// decimal prints v with the shortest exact representation, keeping at least
// one fractional digit ("7.0", "7.25").
func decimal(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".IN") {
		s += ".0"
	}
	return s
}
