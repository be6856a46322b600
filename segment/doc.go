// Package segment defines the immutable DNA match Segment consumed by the
// triangulation engine, together with the small set of pure helpers that
// operate on whole segment collections before grouping.
//
// A Segment is a region of shared autosomal DNA between the analysis subject
// and one match, on one chromosome:
//
//	MatchName     display name of the match (never an identity field)
//	Chromosome    opaque partition key ("1".."22", "X", "Y", ...)
//	Start, End    base-pair coordinates, End > Start
//	Centimorgans  genetic length, ≥ 0
//	MatchingSNPs  SNP count, ≥ 0
//
// Helpers:
//
//	Validate()                         // field invariants → ErrInvalidSegment
//	FilterByCentimorgans(s, min, max)  // cM pre-filter, applied BEFORE grouping
//	CompareChromosomes(a, b)           // 1..22, X, Y, then lexicographic
//	Summarize(s)                       // dataset statistics
//
// Nothing in this package mutates its input slices.
package segment
