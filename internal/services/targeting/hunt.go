package targeting

import (
	"fmt"
	"slices"

	"github.com/mcoot/seabattle/internal/model"
)

// popHuntQueue returns the next untried hunt candidate, dropping stale ones
func (s *State) popHuntQueue() (model.Coordinate, bool) {
	for len(s.huntQueue) > 0 {
		c := s.huntQueue[0]
		s.huntQueue = s.huntQueue[1:]
		if !s.Tried(c) {
			return c, true
		}
	}
	return model.Coordinate{}, false
}

func (s *State) enqueue(c model.Coordinate) {
	if !c.Valid() || s.Tried(c) || slices.Contains(s.huntQueue, c) {
		return
	}
	s.huntQueue = append(s.huntQueue, c)
}

// registerHit records an unresolved hit and updates the hunt queue
func (s *State) registerHit(c model.Coordinate) {
	s.huntHits = append(s.huntHits, c)

	horizontal, vertical := s.huntAxis()
	switch {
	case len(s.huntHits) == 1 || (!horizontal && !vertical):
		for _, n := range c.Orthogonal() {
			s.enqueue(n)
		}
	case horizontal:
		s.lockAxis(func(q model.Coordinate) bool { return q.Row == c.Row }, 0, 1)
	case vertical:
		s.lockAxis(func(q model.Coordinate) bool { return q.Col == c.Col }, 1, 0)
	}
}

// huntAxis reports whether all unresolved hits share a row or a column
func (s *State) huntAxis() (horizontal, vertical bool) {
	if len(s.huntHits) < 2 {
		return false, false
	}
	horizontal, vertical = true, true
	first := s.huntHits[0]
	for _, h := range s.huntHits[1:] {
		horizontal = horizontal && h.Row == first.Row
		vertical = vertical && h.Col == first.Col
	}
	return horizontal, vertical
}

// lockAxis drops off-axis candidates and queues the two cells extending the
// line of hits past its current ends
func (s *State) lockAxis(onAxis func(model.Coordinate) bool, dRow, dCol int) {
	s.huntQueue = slices.DeleteFunc(s.huntQueue, func(q model.Coordinate) bool {
		return !onAxis(q)
	})

	lo, hi := s.huntHits[0], s.huntHits[0]
	for _, h := range s.huntHits[1:] {
		if h.Row*dRow+h.Col*dCol < lo.Row*dRow+lo.Col*dCol {
			lo = h
		}
		if h.Row*dRow+h.Col*dCol > hi.Row*dRow+hi.Col*dCol {
			hi = h
		}
	}
	s.enqueue(lo.Add(-dRow, -dCol))
	s.enqueue(hi.Add(dRow, dCol))
}

// orthogonalToHits accepts untried cells next to an unresolved hit
func (s *State) orthogonalToHits(c model.Coordinate) bool {
	if s.Tried(c) {
		return false
	}
	return slices.ContainsFunc(s.huntHits, func(h model.Coordinate) bool {
		return slices.Contains(h.Orthogonal(), c)
	})
}

// sunkChain flood-fills from seed along hit cells and returns the longer of
// the horizontal and vertical runs through it
func (s *State) sunkChain(seed model.Coordinate) []model.Coordinate {
	run := func(dRow, dCol int) []model.Coordinate {
		chain := []model.Coordinate{seed}
		for _, sign := range []int{-1, 1} {
			for c := seed.Add(sign*dRow, sign*dCol); c.Valid() && s.Cell(c) == model.CellHit; c = c.Add(sign*dRow, sign*dCol) {
				chain = append(chain, c)
			}
		}
		return chain
	}

	horizontal := run(0, 1)
	vertical := run(1, 0)
	if len(vertical) > len(horizontal) {
		return vertical
	}
	return horizontal
}

// checkSink validates that sinking at seed removes a ship still afloat.
// seed must already be marked as a hit.
func (s *State) checkSink(seed model.Coordinate) ([]model.Coordinate, error) {
	chain := s.sunkChain(seed)
	if !slices.Contains(s.remaining, len(chain)) {
		return nil, fmt.Errorf("%w: sunk chain of length %d at %s but remaining fleet is %v",
			model.ErrInvalidShotResult, len(chain), seed, s.remaining)
	}
	return chain, nil
}

// resolveSink marks the chain sunk, rules out its whole neighbourhood,
// removes its length from the remaining fleet and clears the hunt
func (s *State) resolveSink(chain []model.Coordinate) {
	for _, c := range chain {
		s.cells[c.Index()] = model.CellSunk
	}
	for _, c := range chain {
		for _, n := range c.Surrounding() {
			if s.Cell(n) == model.CellEmpty {
				s.cells[n.Index()] = model.CellMiss
			}
		}
	}

	idx := slices.Index(s.remaining, len(chain))
	s.remaining = slices.Delete(s.remaining, idx, idx+1)

	leftover := slices.DeleteFunc(s.huntHits, func(h model.Coordinate) bool {
		return slices.Contains(chain, h)
	})
	s.huntHits = nil
	s.huntQueue = nil
	for _, h := range leftover {
		s.registerHit(h)
	}
}
