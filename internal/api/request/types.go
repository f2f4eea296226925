package request

// Coordinate is a cell in request bodies
type Coordinate struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

// GenerateFleetRequest is the request body for generating a fleet layout
type GenerateFleetRequest struct {
	Policy string `json:"policy,omitempty"`
	// Seed makes the layout reproducible; zero uses the server's random source
	Seed uint64 `json:"seed,omitempty"`
}

// SimulationRequest is the request body for running a batch of self-play games
type SimulationRequest struct {
	Strategy   string `json:"strategy"`
	Policy     string `json:"policy,omitempty"`
	Games      int    `json:"games"`
	Seed       uint64 `json:"seed,omitempty"`
	Omniscient bool   `json:"omniscient,omitempty"`
}

// Contender is one side of a duel request
type Contender struct {
	Name     string `json:"name"`
	Strategy string `json:"strategy"`
	Policy   string `json:"policy,omitempty"`
}

// DuelRequest is the request body for pitting two strategies against each other
type DuelRequest struct {
	A    Contender `json:"a"`
	B    Contender `json:"b"`
	Seed uint64    `json:"seed,omitempty"`
}

// CreateSessionRequest is the request body for creating a bot session
type CreateSessionRequest struct {
	Strategy string `json:"strategy"`
	Policy   string `json:"policy,omitempty"`
}

// ShotResultRequest is the request body for reporting the verdict on the
// bot's pending shot
type ShotResultRequest struct {
	Hit  bool `json:"hit"`
	Sunk bool `json:"sunk"`
}

// IncomingShotRequest is the request body for firing at the bot's fleet
type IncomingShotRequest struct {
	Coordinate
}
