package segment

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for segment validation and filtering.
var (
	// ErrInvalidSegment indicates a segment violates one of its field invariants.
	ErrInvalidSegment = errors.New("segment: invalid segment")

	// ErrInvalidRange indicates a centimorgan filter range that cannot match anything
	// meaningful (min > max, or a NaN bound).
	ErrInvalidRange = errors.New("segment: invalid centimorgan range")
)

// Segment is one reported region of shared DNA with a single match.
// Values are treated as read-only once loaded.
type Segment struct {
	// MatchName is the display name of the match.
	MatchName string `json:"match_name" yaml:"match_name"`

	// Chromosome is an opaque partition key; "1".."22", "X" and "Y" in practice.
	Chromosome string `json:"chromosome" yaml:"chromosome"`

	// Start is the first base pair of the region.
	Start int64 `json:"start" yaml:"start"`

	// End is the end coordinate of the region; End > Start.
	End int64 `json:"end" yaml:"end"`

	// Centimorgans is the genetic length of the region.
	Centimorgans float64 `json:"centimorgans" yaml:"centimorgans"`

	// MatchingSNPs is the number of SNPs matched over the region.
	MatchingSNPs int64 `json:"matching_snps" yaml:"matching_snps"`
}

// Len returns End-Start in base pairs.
func (s Segment) Len() int64 { return s.End - s.Start }

// Validate checks the field invariants of s.
// Returns an error wrapping ErrInvalidSegment that names the offending field.
func (s Segment) Validate() error {
	switch {
	case s.Chromosome == "":
		return fmt.Errorf("%w: empty chromosome for %q", ErrInvalidSegment, s.MatchName)
	case s.End <= s.Start:
		return fmt.Errorf("%w: end %d must exceed start %d for %q", ErrInvalidSegment, s.End, s.Start, s.MatchName)
	case s.Centimorgans < 0 || math.IsNaN(s.Centimorgans):
		return fmt.Errorf("%w: centimorgans %v for %q", ErrInvalidSegment, s.Centimorgans, s.MatchName)
	case s.MatchingSNPs < 0:
		return fmt.Errorf("%w: matching SNPs %d for %q", ErrInvalidSegment, s.MatchingSNPs, s.MatchName)
	}
	return nil
}

// String renders s as "name chr:start-end (cM)".
func (s Segment) String() string {
	return fmt.Sprintf("%s chr%s:%d-%d (%.1f cM)", s.MatchName, s.Chromosome, s.Start, s.End, s.Centimorgans)
}
