package targeting

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/mcoot/seabattle/internal/model"
)

// Snapshot captures the engine so it can be rebuilt by Restore
func (e *Engine) Snapshot() (model.TargetingSnapshot, error) {
	snap := model.TargetingSnapshot{
		Strategy:   e.heuristic.Name(),
		Cells:      model.EncodeCells(e.state.cells),
		HuntQueue:  e.state.HuntQueue(),
		HuntHits:   e.state.HuntHits(),
		Remaining:  e.state.Remaining(),
		MissStreak: e.state.missStreak,
	}
	if e.state.pending != nil {
		p := *e.state.pending
		snap.Pending = &p
	}
	if p, ok := e.heuristic.(Persistent); ok {
		data, err := p.SaveState()
		if err != nil {
			return model.TargetingSnapshot{}, fmt.Errorf("failed to save heuristic state: %w", err)
		}
		snap.Heuristic = data
	}
	return snap, nil
}

// Restore rebuilds an engine from a snapshot, using h as its heuristic.
// The snapshot is rejected unless it describes a reachable targeting state.
func Restore(snap model.TargetingSnapshot, h Heuristic, logger *slog.Logger) (*Engine, error) {
	if snap.Strategy != h.Name() {
		return nil, fmt.Errorf("%w: snapshot is for strategy %q, not %q", model.ErrInvalidSnapshot, snap.Strategy, h.Name())
	}

	cells, err := model.DecodeCells(snap.Cells)
	if err != nil {
		return nil, err
	}
	st := State{
		cells:      cells,
		huntQueue:  slices.Clone(snap.HuntQueue),
		huntHits:   slices.Clone(snap.HuntHits),
		remaining:  slices.Clone(snap.Remaining),
		missStreak: snap.MissStreak,
	}
	if snap.Pending != nil {
		p := *snap.Pending
		st.pending = &p
	}
	if err := st.validate(); err != nil {
		return nil, err
	}

	if p, ok := h.(Persistent); ok && len(snap.Heuristic) > 0 {
		if err := p.LoadState(snap.Heuristic); err != nil {
			return nil, err
		}
	}

	e := NewEngine(h, logger)
	e.state = st
	return e, nil
}

func (s *State) validate() error {
	if s.missStreak < 0 {
		return fmt.Errorf("%w: negative miss streak", model.ErrInvalidSnapshot)
	}

	fleet := model.FleetLengthList()
	for _, l := range s.remaining {
		idx := slices.Index(fleet, l)
		if idx < 0 {
			return fmt.Errorf("%w: remaining lengths %v are not part of the fleet", model.ErrInvalidSnapshot, s.remaining)
		}
		fleet = slices.Delete(fleet, idx, idx+1)
	}
	sunkCells := 0
	for _, l := range fleet {
		sunkCells += l
	}

	var sunk, hits int
	for idx, cell := range s.cells {
		switch cell {
		case model.CellSunk:
			sunk++
		case model.CellHit:
			hits++
			if !slices.Contains(s.huntHits, model.CoordinateFromIndex(idx)) {
				return fmt.Errorf("%w: hit at %s is not tracked", model.ErrInvalidSnapshot, model.CoordinateFromIndex(idx))
			}
		}
	}
	if sunk != sunkCells {
		return fmt.Errorf("%w: %d sunk cells but %d expected from remaining fleet", model.ErrInvalidSnapshot, sunk, sunkCells)
	}
	if hits != len(s.huntHits) {
		return fmt.Errorf("%w: %d hit cells but %d hunt hits", model.ErrInvalidSnapshot, hits, len(s.huntHits))
	}

	for _, c := range s.huntQueue {
		if !c.Valid() {
			return fmt.Errorf("%w: hunt candidate %s", model.ErrInvalidSnapshot, c)
		}
	}
	if s.pending != nil && (!s.pending.Valid() || s.Tried(*s.pending)) {
		return fmt.Errorf("%w: pending shot %s", model.ErrInvalidSnapshot, *s.pending)
	}
	return nil
}
