package response

import (
	"time"

	"github.com/mcoot/seabattle/internal/model"
	"github.com/mcoot/seabattle/internal/services/match"
	"github.com/mcoot/seabattle/internal/services/session"
)

// Coordinate represents a cell in API responses
type Coordinate struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// CoordinateFromModel converts a model.Coordinate
func CoordinateFromModel(c model.Coordinate) Coordinate {
	return Coordinate{Row: c.Row, Col: c.Col}
}

// Ship represents one placed ship
type Ship struct {
	ShipID      int    `json:"ship_id"`
	Length      int    `json:"length"`
	Row         int    `json:"row"`
	Col         int    `json:"col"`
	Orientation string `json:"orientation"`
}

// Fleet represents a generated layout
type Fleet struct {
	Policy string   `json:"policy"`
	Seed   uint64   `json:"seed,omitempty"`
	Ships  []Ship   `json:"ships"`
	Grid   []string `json:"grid"`
}

// FleetFromModel converts a list of placements
func FleetFromModel(policy string, seed uint64, placements []model.ShipPlacement) Fleet {
	ships := make([]Ship, len(placements))
	for i, p := range placements {
		ships[i] = Ship{
			ShipID:      int(p.ShipID),
			Length:      p.Length,
			Row:         p.Anchor.Row,
			Col:         p.Anchor.Col,
			Orientation: string(p.Orientation),
		}
	}
	return Fleet{
		Policy: policy,
		Seed:   seed,
		Ships:  ships,
		Grid:   model.LayoutGrid(placements),
	}
}

// Option is a selectable strategy or policy
type Option struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

// Catalog lists the available strategies and placement policies
type Catalog struct {
	Strategies []Option `json:"strategies"`
	Policies   []Option `json:"policies"`
}

// NewCatalog builds the catalog from the model registries
func NewCatalog() Catalog {
	var c Catalog
	for _, s := range model.ValidBotStrategies() {
		c.Strategies = append(c.Strategies, Option{Name: s, DisplayName: model.BotStrategyDisplayName(s)})
	}
	for _, p := range model.ValidPlacementPolicies() {
		c.Policies = append(c.Policies, Option{Name: p, DisplayName: model.PlacementPolicyDisplayName(p)})
	}
	return c
}

// Session represents a bot session. The bot's own fleet is never exposed.
type Session struct {
	ID         string      `json:"id"`
	Strategy   string      `json:"strategy"`
	Policy     string      `json:"policy"`
	ShotsFired int         `json:"shots_fired"`
	Hits       int         `json:"hits"`
	ShipsSunk  int         `json:"ships_sunk"`
	Finished   bool        `json:"finished"`
	Pending    *Coordinate `json:"pending,omitempty"`
	Tracking   []string    `json:"tracking"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// SessionFromModel converts a model.BotSession
func SessionFromModel(s *model.BotSession) Session {
	var pending *Coordinate
	if s.Targeting.Pending != nil {
		c := CoordinateFromModel(*s.Targeting.Pending)
		pending = &c
	}

	// tracking is the bot's view of the opponent board, one row per string
	tracking := make([]string, 0, model.BoardSize)
	cells := s.Targeting.Cells
	if len(cells) == model.CellCount {
		for row := 0; row < model.BoardSize; row++ {
			tracking = append(tracking, cells[row*model.BoardSize:(row+1)*model.BoardSize])
		}
	}

	return Session{
		ID:         string(s.ID),
		Strategy:   s.Strategy,
		Policy:     s.Policy,
		ShotsFired: s.ShotsFired,
		Hits:       s.Hits,
		ShipsSunk:  s.ShipsSunk,
		Finished:   s.Finished(),
		Pending:    pending,
		Tracking:   tracking,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

// SessionList is the response for listing sessions
type SessionList struct {
	Sessions []Session `json:"sessions"`
}

// Shot is the bot's next shot
type Shot struct {
	SessionID string     `json:"session_id"`
	Cell      Coordinate `json:"cell"`
}

// IncomingResult is the verdict on a shot at the bot's fleet
type IncomingResult struct {
	Hit            bool `json:"hit"`
	Sunk           bool `json:"sunk"`
	ShipID         int  `json:"ship_id,omitempty"`
	ShipsRemaining int  `json:"ships_remaining"`
	Defeated       bool `json:"defeated"`
}

// IncomingResultFromService converts a session.IncomingResult
func IncomingResultFromService(r *session.IncomingResult) IncomingResult {
	return IncomingResult{
		Hit:            r.Hit,
		Sunk:           r.Sunk,
		ShipID:         int(r.ShipID),
		ShipsRemaining: r.ShipsRemaining,
		Defeated:       r.Defeated,
	}
}

// Simulation is the response for a batch of self-play games
type Simulation struct {
	match.BatchStats
	Seed uint64 `json:"seed"`
}

// Duel is the response for a duel
type Duel struct {
	Winner string `json:"winner"`
	Turns  int    `json:"turns"`
	Shots  [2]int `json:"shots"`
	Hits   [2]int `json:"hits"`
	Seed   uint64 `json:"seed"`
}

// DuelFromResult converts a match.DuelResult
func DuelFromResult(names [2]string, seed uint64, r *match.DuelResult) Duel {
	return Duel{
		Winner: names[r.Winner],
		Turns:  r.Turns,
		Shots:  [2]int{r.Results[0].Shots, r.Results[1].Shots},
		Hits:   [2]int{r.Results[0].Hits, r.Results[1].Hits},
		Seed:   seed,
	}
}

// Health is the response for the health check
type Health struct {
	Status string `json:"status"`
}
