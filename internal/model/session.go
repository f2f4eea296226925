package model

import "time"

// SessionID uniquely identifies a bot opponent session
type SessionID string

// BotSession is a persisted computer opponent in one game. It owns both
// halves of the bot's side: its own fleet (shot at by the other player)
// and its targeting state (for shooting back).
type BotSession struct {
	ID        SessionID         `json:"id"`
	Strategy  string            `json:"strategy"`
	Policy    string            `json:"policy"`
	Fleet     []ShipPlacement   `json:"fleet"`
	FiredOn   [CellCount]bool   `json:"fired_on"`
	Targeting TargetingSnapshot `json:"targeting"`

	ShotsFired int `json:"shots_fired"`
	Hits       int `json:"hits"`
	ShipsSunk  int `json:"ships_sunk"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Finished returns true once the bot has sunk the whole opposing fleet
func (s *BotSession) Finished() bool {
	return s.ShipsSunk >= FleetSize
}
