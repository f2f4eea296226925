package targeting_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/seabattle/internal/dependencies/mocks"
	"github.com/mcoot/seabattle/internal/dependencies/random"
	"github.com/mcoot/seabattle/internal/model"
	"github.com/mcoot/seabattle/internal/services/placement"
	"github.com/mcoot/seabattle/internal/services/targeting"
	"github.com/mcoot/seabattle/internal/testutil"
)

type EngineSuite struct {
	suite.Suite
	mockRandom *mocks.MockRandom
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) SetupTest() {
	s.mockRandom = mocks.NewMockRandom()
}

// scriptedHeuristic proposes queued cells, then the first untried cell
type scriptedHeuristic struct {
	shots   []model.Coordinate
	calls   int
	allowed func(model.Coordinate) bool
}

func (h *scriptedHeuristic) Name() string { return "scripted" }

func (h *scriptedHeuristic) Choose(st *targeting.State, allowed func(model.Coordinate) bool) (model.Coordinate, bool) {
	h.calls++
	h.allowed = allowed
	if len(h.shots) > 0 {
		c := h.shots[0]
		h.shots = h.shots[1:]
		return c, true
	}
	untried := st.Untried(allowed)
	if len(untried) == 0 {
		return model.Coordinate{}, false
	}
	return untried[0], true
}

// stuckHeuristic always proposes the same cell
type stuckHeuristic struct {
	cell  model.Coordinate
	calls int
}

func (h *stuckHeuristic) Name() string { return "stuck" }

func (h *stuckHeuristic) Choose(*targeting.State, func(model.Coordinate) bool) (model.Coordinate, bool) {
	h.calls++
	return h.cell, true
}

func (s *EngineSuite) newEngine(h targeting.Heuristic) *targeting.Engine {
	return targeting.NewEngine(h, testutil.NopLogger())
}

func (s *EngineSuite) shoot(e *targeting.Engine) model.Coordinate {
	c, err := e.NextShot()
	s.Require().NoError(err)
	return c
}

func (s *EngineSuite) TestHitQueuesOrthogonalNeighbours() {
	// 55 picks (5,5) out of the 100 untried cells
	s.mockRandom.QueueIntn(55)
	e := s.newEngine(targeting.NewRandomHeuristic(s.mockRandom))

	first := s.shoot(e)
	s.Require().Equal(model.Coordinate{Row: 5, Col: 5}, first)
	s.Require().NoError(e.SetShotResult(true, false))
	s.Equal(targeting.ModeHunt, e.Mode())

	next := s.shoot(e)
	s.Contains([]model.Coordinate{
		{Row: 4, Col: 5}, {Row: 6, Col: 5}, {Row: 5, Col: 4}, {Row: 5, Col: 6},
	}, next)
}

func (s *EngineSuite) TestAlignedHitsLockAxisAndSinkMarksRing() {
	h := &scriptedHeuristic{shots: []model.Coordinate{{Row: 2, Col: 2}}}
	e := s.newEngine(h)

	s.Require().Equal(model.Coordinate{Row: 2, Col: 2}, s.shoot(e))
	s.Require().NoError(e.SetShotResult(true, false))
	s.Require().Equal(model.Coordinate{Row: 2, Col: 3}, s.shoot(e))
	s.Require().NoError(e.SetShotResult(true, false))

	s.ElementsMatch([]model.Coordinate{{Row: 2, Col: 1}, {Row: 2, Col: 4}}, e.State().HuntQueue())

	s.Require().Equal(model.Coordinate{Row: 2, Col: 1}, s.shoot(e))
	s.Require().NoError(e.SetShotResult(false, false))
	s.Require().Equal(model.Coordinate{Row: 2, Col: 4}, s.shoot(e))
	s.Require().NoError(e.SetShotResult(true, true))

	st := e.State()
	for row := 1; row <= 3; row++ {
		for col := 1; col <= 5; col++ {
			c := model.Coordinate{Row: row, Col: col}
			if row == 2 && col >= 2 && col <= 4 {
				s.Equal(model.CellSunk, st.Cell(c), "ship cell %s", c)
				continue
			}
			s.Equal(model.CellMiss, st.Cell(c), "ring cell %s", c)
		}
	}
	s.Equal(targeting.ModeSearch, e.Mode())
	s.Empty(st.HuntQueue())
	s.Equal([]int{4, 3, 2, 2, 2, 1, 1, 1, 1}, st.Remaining())
	s.Equal(1, e.ShipsSunk())
}

func (s *EngineSuite) TestDrainedHuntQueueStaysNextToHits() {
	// (0,0) is off-limits once hunting and must be rejected
	h := &scriptedHeuristic{shots: []model.Coordinate{{Row: 5, Col: 5}, {Row: 0, Col: 0}}}
	e := s.newEngine(h)

	s.Require().Equal(model.Coordinate{Row: 5, Col: 5}, s.shoot(e))
	s.Require().NoError(e.SetShotResult(true, false))
	s.Require().Equal(model.Coordinate{Row: 5, Col: 6}, s.shoot(e))
	s.Require().NoError(e.SetShotResult(true, false))

	// both line ends miss without a sink
	s.Require().Equal(model.Coordinate{Row: 5, Col: 4}, s.shoot(e))
	s.Require().NoError(e.SetShotResult(false, false))
	s.Require().Equal(model.Coordinate{Row: 5, Col: 7}, s.shoot(e))
	s.Require().NoError(e.SetShotResult(false, false))
	s.Require().Empty(e.State().HuntQueue())
	s.Require().Equal(targeting.ModeHunt, e.Mode())
	callsBefore := h.calls

	next := s.shoot(e)
	s.Contains([]model.Coordinate{
		{Row: 4, Col: 5}, {Row: 6, Col: 5}, {Row: 4, Col: 6}, {Row: 6, Col: 6},
	}, next)
	s.Equal(model.Coordinate{Row: 4, Col: 5}, next)
	s.Equal(callsBefore+2, h.calls)

	s.Require().NotNil(h.allowed)
	s.False(h.allowed(model.Coordinate{Row: 0, Col: 0}))
	s.False(h.allowed(model.Coordinate{Row: 5, Col: 4}), "tried cell")
	s.True(h.allowed(model.Coordinate{Row: 6, Col: 6}))
}

func (s *EngineSuite) TestNextShotTwiceFails() {
	e := s.newEngine(targeting.NewRandomHeuristic(s.mockRandom))
	s.shoot(e)

	_, err := e.NextShot()
	s.ErrorIs(err, model.ErrShotPending)
}

func (s *EngineSuite) TestResultWithoutShotFails() {
	e := s.newEngine(targeting.NewRandomHeuristic(s.mockRandom))
	s.ErrorIs(e.SetShotResult(false, false), model.ErrNoShotPending)

	s.shoot(e)
	s.Require().NoError(e.SetShotResult(false, false))
	s.ErrorIs(e.SetShotResult(false, false), model.ErrNoShotPending)
}

func (s *EngineSuite) TestSunkWithoutHitRejected() {
	e := s.newEngine(targeting.NewRandomHeuristic(s.mockRandom))
	shot := s.shoot(e)

	s.ErrorIs(e.SetShotResult(false, true), model.ErrInvalidShotResult)
	pending, ok := e.Pending()
	s.True(ok)
	s.Equal(shot, pending)
	s.Equal(model.CellEmpty, e.State().Cell(shot))
}

func (s *EngineSuite) TestSunkChainNotInFleetRejected() {
	// Zero mock picks (0,0); the hunt then runs right along row 0
	e := s.newEngine(targeting.NewRandomHeuristic(s.mockRandom))
	for col := 0; col < 4; col++ {
		s.Require().Equal(model.Coordinate{Row: 0, Col: col}, s.shoot(e))
		s.Require().NoError(e.SetShotResult(true, false))
	}
	s.Require().Equal(model.Coordinate{Row: 0, Col: 4}, s.shoot(e))

	err := e.SetShotResult(true, true)
	s.ErrorIs(err, model.ErrInvalidShotResult)
	s.Equal(model.CellEmpty, e.State().Cell(model.Coordinate{Row: 0, Col: 4}))
	s.Len(e.State().Remaining(), model.FleetSize)

	// the same shot can still be resolved correctly
	s.NoError(e.SetShotResult(false, false))
}

func (s *EngineSuite) TestNoCellsRemaining() {
	e := s.newEngine(targeting.NewRandomHeuristic(s.mockRandom))
	seen := make(map[model.Coordinate]bool)
	for i := 0; i < model.CellCount; i++ {
		c := s.shoot(e)
		s.Require().False(seen[c], "repeated %s", c)
		seen[c] = true
		s.Require().NoError(e.SetShotResult(false, false))
	}

	_, err := e.NextShot()
	s.ErrorIs(err, model.ErrNoCellsRemaining)
	s.Equal(model.CellCount, e.State().MissStreak())
}

func (s *EngineSuite) TestStaleProposalsFallBackToRowMajor() {
	h := &stuckHeuristic{cell: model.Coordinate{Row: 0, Col: 0}}
	e := s.newEngine(h)

	s.Require().Equal(model.Coordinate{Row: 0, Col: 0}, s.shoot(e))
	s.Require().NoError(e.SetShotResult(false, false))

	s.Equal(model.Coordinate{Row: 0, Col: 1}, s.shoot(e))
	s.Equal(1+targeting.MaxProposalRetries, h.calls)
}

func (s *EngineSuite) TestInvalidProposalFallsBack() {
	h := &stuckHeuristic{cell: model.Coordinate{Row: -1, Col: 12}}
	logger, buf := testutil.BufferLogger()
	e := targeting.NewEngine(h, logger)

	s.Equal(model.Coordinate{Row: 0, Col: 0}, s.shoot(e))
	s.Equal(targeting.MaxProposalRetries, h.calls)
	s.Contains(buf.String(), `"level":"WARN"`)
	s.Contains(buf.String(), "row-major fallback")
}

func (s *EngineSuite) TestNewHeuristic_Unknown() {
	_, err := targeting.NewHeuristic("psychic", s.mockRandom)
	s.ErrorIs(err, model.ErrUnknownStrategy)
}

func (s *EngineSuite) TestFullGamesNeverRepeatAndAccountForSinks() {
	for _, strategy := range model.ValidBotStrategies() {
		for seed := uint64(1); seed <= 10; seed++ {
			rnd := random.NewSeeded(seed)
			layout, err := placement.NewGenerator(rnd, testutil.NopLogger()).Generate(placement.UnbiasedPolicy{})
			s.Require().NoError(err)
			ocean, err := model.NewOcean(layout)
			s.Require().NoError(err)

			e, err := targeting.NewEngineForStrategy(strategy, rnd, testutil.NopLogger())
			s.Require().NoError(err)

			s.playOut(e, ocean)
		}
	}
}

// playOut plays e against ocean to the end, checking every sink
func (s *EngineSuite) playOut(e *targeting.Engine, ocean *model.Ocean) {
	seen := make(map[model.Coordinate]bool)
	expected := model.FleetLengthList()

	for !ocean.AllSunk() {
		shot, err := e.NextShot()
		s.Require().NoError(err)
		s.Require().False(seen[shot], "%s fired twice at %s", e.Heuristic().Name(), shot)
		seen[shot] = true

		out, err := ocean.Fire(shot)
		s.Require().NoError(err)
		s.Require().NoError(e.SetShotResult(out.Hit, out.Sunk))
		if !out.Sunk {
			continue
		}

		length := model.FleetLengths[out.ShipID-1]
		idx := slices.Index(expected, length)
		expected = slices.Delete(expected, idx, idx+1)
		s.Equal(expected, e.State().Remaining())

		st := e.State()
		for _, p := range ocean.Placements {
			if p.ShipID != out.ShipID {
				continue
			}
			for _, c := range p.Cells() {
				s.Equal(model.CellSunk, st.Cell(c))
				for _, n := range c.Surrounding() {
					if ocean.ShipAt(n) != out.ShipID {
						s.Equal(model.CellMiss, st.Cell(n), "buffer cell %s", n)
					}
				}
			}
		}
	}
	s.LessOrEqual(len(seen), model.CellCount)
	s.Equal(model.FleetSize, e.ShipsSunk())
}
