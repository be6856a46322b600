package group_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/triangulation/group"
	"github.com/katalvlaran/triangulation/overlap"
	"github.com/katalvlaran/triangulation/segment"
)

func seg(name, chr string, start, end int64, cm float64) segment.Segment {
	return segment.Segment{MatchName: name, Chromosome: chr, Start: start, End: end, Centimorgans: cm, MatchingSNPs: 1000}
}

func names(g group.Group) []string {
	out := make([]string, len(g.Members))
	for i, m := range g.Members {
		out[i] = m.MatchName
	}
	return out
}

// BuildSuite exercises seed-and-collect under both policies.
type BuildSuite struct {
	suite.Suite
}

// TestPairAboveThreshold: A and B overlap by 5 Mb, C is isolated.
func (s *BuildSuite) TestPairAboveThreshold() {
	in := []segment.Segment{
		seg("A", "1", 0, 10_000_000, 20),
		seg("B", "1", 5_000_000, 15_000_000, 15),
		seg("C", "1", 20_000_000, 30_000_000, 10),
	}
	groups, err := group.Build(in, group.WithMinOverlap(1_000_000), group.WithMinGroupSize(2))
	require.NoError(s.T(), err)
	require.Len(s.T(), groups, 1)
	require.Equal(s.T(), []string{"A", "B"}, names(groups[0]))
	require.Equal(s.T(), []int{0, 1}, groups[0].Indices)
	require.Equal(s.T(), "A", groups[0].Seed.MatchName)
	require.Equal(s.T(), group.Star, groups[0].Policy)

	start, end := groups[0].Bounds()
	require.Equal(s.T(), int64(0), start)
	require.Equal(s.T(), int64(15_000_000), end)
	require.InDelta(s.T(), 35.0, groups[0].TotalCM(), 1e-9)
	require.InDelta(s.T(), 17.5, groups[0].AverageCM(), 1e-9)
	require.InDelta(s.T(), 15.0, groups[0].SpanMb(), 1e-9)
}

// TestPairBelowThreshold: the same input at 6 Mb forms no group.
func (s *BuildSuite) TestPairBelowThreshold() {
	in := []segment.Segment{
		seg("A", "1", 0, 10_000_000, 20),
		seg("B", "1", 5_000_000, 15_000_000, 15),
		seg("C", "1", 20_000_000, 30_000_000, 10),
	}
	groups, err := group.Build(in, group.WithMinOverlap(6_000_000))
	require.NoError(s.T(), err)
	require.Empty(s.T(), groups)
}

// TestCompleteGraphPoliciesAgree: three mutually overlapping segments plus a
// fourth overlapping only the first produce the same 4-member group under both policies.
func (s *BuildSuite) TestCompleteGraphPoliciesAgree() {
	in := []segment.Segment{
		seg("P", "2", 0, 20_000_000, 30),
		seg("Q", "2", 2_000_000, 12_000_000, 12),
		seg("R", "2", 3_000_000, 11_000_000, 11),
		seg("S", "2", 15_000_000, 40_000_000, 9),
	}
	for _, p := range []group.Policy{group.Star, group.Connected} {
		groups, err := group.Build(in, group.WithMinOverlap(1_000_000), group.WithPolicy(p))
		require.NoError(s.T(), err)
		require.Len(s.T(), groups, 1, p.String())
		require.Equal(s.T(), 4, groups[0].Size())
		require.Equal(s.T(), p, groups[0].Policy)
	}
}

// TestStrictAboveRecordsAppliedPolicy: a star at or below StrictAbove skips the
// strict pass and is reported as Star even when Connected was requested.
func (s *BuildSuite) TestStrictAboveRecordsAppliedPolicy() {
	in := []segment.Segment{
		seg("A", "1", 0, 10_000_000, 20),
		seg("B", "1", 5_000_000, 15_000_000, 15),
	}
	cases := map[int]group.Policy{10: group.Star, 2: group.Star, 1: group.Connected, 0: group.Connected}
	for above, want := range cases {
		groups, err := group.Build(in,
			group.WithMinOverlap(1_000_000),
			group.WithPolicy(group.Connected),
			group.WithStrictAbove(above),
		)
		require.NoError(s.T(), err)
		require.Len(s.T(), groups, 1)
		require.Equal(s.T(), want, groups[0].Policy, "strict above %d", above)
	}

	groups, err := group.Build(in, group.WithMinOverlap(1_000_000), group.WithStrictAbove(1))
	require.NoError(s.T(), err)
	require.Len(s.T(), groups, 1)
	require.Equal(s.T(), group.Star, groups[0].Policy)
}

// TestUnconsumedSegmentsJoinLaterSeeds: a seed whose star is too small leaves
// its candidates free for the next seed.
func (s *BuildSuite) TestUnconsumedSegmentsJoinLaterSeeds() {
	in := []segment.Segment{
		// early overlaps only mid, by 1 Mb
		seg("early", "3", 0, 6_000_000, 5),
		seg("mid", "3", 5_000_000, 20_000_000, 8),
		seg("late1", "3", 10_000_000, 18_000_000, 7),
		seg("late2", "3", 12_000_000, 19_000_000, 6),
	}
	groups, err := group.Build(in, group.WithMinOverlap(2_000_000), group.WithMinGroupSize(3))
	require.NoError(s.T(), err)
	require.Len(s.T(), groups, 1)
	require.Equal(s.T(), []string{"mid", "late1", "late2"}, names(groups[0]))
}

// TestTiesFollowInputOrder: equal starts are scanned in input order, so the
// first listed segment becomes the seed.
func (s *BuildSuite) TestTiesFollowInputOrder() {
	in := []segment.Segment{
		seg("second", "4", 0, 10_000_000, 1),
		seg("first", "4", 0, 10_000_000, 1),
	}
	groups, err := group.Build(in, group.WithMinOverlap(1))
	require.NoError(s.T(), err)
	require.Len(s.T(), groups, 1)
	require.Equal(s.T(), "second", groups[0].Seed.MatchName)
	require.Equal(s.T(), []int{0, 1}, groups[0].Indices)
}

// TestEmptyAndTooFew covers inputs that yield no groups without error.
func (s *BuildSuite) TestEmptyAndTooFew() {
	groups, err := group.Build(nil)
	require.NoError(s.T(), err)
	require.Empty(s.T(), groups)

	groups, err = group.Build([]segment.Segment{seg("A", "1", 0, 10, 1), seg("B", "1", 0, 10, 1)}, group.WithMinGroupSize(3))
	require.NoError(s.T(), err)
	require.Empty(s.T(), groups)
}

// TestConfigurationErrors verifies invalid parameters are rejected, not clamped.
func (s *BuildSuite) TestConfigurationErrors() {
	in := []segment.Segment{seg("A", "1", 0, 10, 1)}
	_, err := group.Build(in, group.WithMinOverlap(0))
	require.ErrorIs(s.T(), err, group.ErrMinOverlap)
	_, err = group.Build(nil, group.WithMinOverlap(-5))
	require.ErrorIs(s.T(), err, group.ErrMinOverlap, "configuration is checked before input")
	_, err = group.Build(in, group.WithMinGroupSize(1))
	require.ErrorIs(s.T(), err, group.ErrMinGroupSize)
	_, err = group.Build(in, group.WithStrictAbove(-1))
	require.ErrorIs(s.T(), err, group.ErrOptionViolation)
	_, err = group.Build(in, group.WithPolicy(group.Policy(9)))
	require.ErrorIs(s.T(), err, group.ErrOptionViolation)
}

// TestInputErrors covers mixed chromosomes and malformed segments.
func (s *BuildSuite) TestInputErrors() {
	_, err := group.Build([]segment.Segment{seg("A", "1", 0, 10, 1), seg("B", "2", 0, 10, 1)})
	require.ErrorIs(s.T(), err, group.ErrMixedChromosomes)

	_, err = group.Build([]segment.Segment{seg("A", "1", 10, 10, 1), seg("B", "1", 0, 10, 1)})
	require.ErrorIs(s.T(), err, segment.ErrInvalidSegment)
}

// TestContextCancellation ensures a cancelled context aborts with no groups.
func (s *BuildSuite) TestContextCancellation() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	in := []segment.Segment{seg("A", "1", 0, 10, 1), seg("B", "1", 0, 10, 1)}
	groups, err := group.Build(in, group.WithContext(ctx), group.WithMinOverlap(1))
	require.True(s.T(), errors.Is(err, context.Canceled))
	require.Nil(s.T(), groups)
}

// TestTraceEvents checks one event per comparison plus the emit decision.
func (s *BuildSuite) TestTraceEvents() {
	in := []segment.Segment{
		seg("A", "1", 0, 10_000_000, 20),
		seg("B", "1", 5_000_000, 15_000_000, 15),
		seg("C", "1", 20_000_000, 30_000_000, 10),
	}
	var events []group.Event
	_, err := group.Build(in, group.WithMinOverlap(1_000_000), group.WithTrace(func(e group.Event) {
		events = append(events, e)
	}))
	require.NoError(s.T(), err)

	kinds := make([]group.EventKind, len(events))
	for i, e := range events {
		kinds[i] = e.Kind
		require.Equal(s.T(), "1", e.Chromosome)
		require.Equal(s.T(), int64(1_000_000), e.Threshold)
	}
	// seed A: B added, C rejected, emit; seed C: nothing left to compare, too small.
	require.Equal(s.T(), []group.EventKind{
		group.EventAdded, group.EventRejected, group.EventEmitted, group.EventTooSmall,
	}, kinds)
	require.Equal(s.T(), int64(5_000_000), events[0].OverlapBP)
	require.Equal(s.T(), "B", events[0].Candidate.MatchName)
	require.Equal(s.T(), 2, events[2].Size)
}

func TestBuildSuite(t *testing.T) {
	suite.Run(t, new(BuildSuite))
}

// randomChromosome produces n segments with clustered starts so that groups form.
func randomChromosome(rng *rand.Rand, chr string, n int) []segment.Segment {
	out := make([]segment.Segment, n)
	for i := range out {
		start := rng.Int63n(20) * 10_000_000
		start += rng.Int63n(8_000_000)
		out[i] = seg("m", chr, start, start+500_000+rng.Int63n(15_000_000), 5+rng.Float64()*40)
	}
	return out
}

// TestBuild_Properties checks partition, purity, threshold, minimum size and
// determinism on random input, for both policies and both index strategies.
func TestBuild_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 20; round++ {
		in := randomChromosome(rng, "7", 150)
		const minBP = 2_000_000
		minSize := 2 + round%3

		for _, p := range []group.Policy{group.Star, group.Connected} {
			var reference []group.Group
			for _, st := range []overlap.Strategy{overlap.Tree, overlap.Scan} {
				groups, err := group.Build(in,
					group.WithMinOverlap(minBP), group.WithMinGroupSize(minSize),
					group.WithPolicy(p), group.WithIndexStrategy(st))
				require.NoError(t, err)

				seen := map[int]bool{}
				for _, g := range groups {
					require.GreaterOrEqual(t, g.Size(), minSize)
					require.Len(t, g.Indices, g.Size())
					for i, m := range g.Members {
						require.Equal(t, "7", m.Chromosome)
						require.Equal(t, in[g.Indices[i]], m)
						require.False(t, seen[g.Indices[i]], "segment %d in two groups", g.Indices[i])
						seen[g.Indices[i]] = true
						require.GreaterOrEqual(t, overlap.Bases(g.Seed, m), int64(minBP))
					}
					if p == group.Connected {
						_, ok, err := group.VerifyGroup(g, minBP, g.Size())
						require.NoError(t, err)
						require.True(t, ok, "connected group must survive verification intact")
					}
				}

				if reference == nil {
					reference = groups
				} else {
					require.Equal(t, reference, groups, "index strategies must agree")
				}

				again, err := group.Build(in,
					group.WithMinOverlap(minBP), group.WithMinGroupSize(minSize),
					group.WithPolicy(p), group.WithIndexStrategy(st))
				require.NoError(t, err)
				require.Equal(t, groups, again)
			}
		}
	}
}
