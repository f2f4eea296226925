package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mcoot/seabattle/internal/api/response"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Health:
		fmt.Fprintf(o.w, "Status: %s\n", v.Status)
	case response.Catalog:
		o.printCatalog(v)
	case response.Fleet:
		o.printFleet(v)
	case response.Session:
		o.printSession(v)
	case response.SessionList:
		o.printSessionList(v)
	case response.Shot:
		fmt.Fprintf(o.w, "Fire at row %d, col %d\n", v.Cell.Row, v.Cell.Col)
	case response.IncomingResult:
		o.printIncoming(v)
	case response.Simulation:
		o.printSimulation(v)
	case response.Duel:
		o.printDuel(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printCatalog(c response.Catalog) {
	fmt.Fprintln(o.w, "Strategies:")
	for _, s := range c.Strategies {
		fmt.Fprintf(o.w, "  %-10s %s\n", s.Name, s.DisplayName)
	}
	fmt.Fprintln(o.w, "Placement policies:")
	for _, p := range c.Policies {
		fmt.Fprintf(o.w, "  %-10s %s\n", p.Name, p.DisplayName)
	}
}

func (o *Output) printFleet(f response.Fleet) {
	fmt.Fprintf(o.w, "Policy: %s\n", f.Policy)
	if f.Seed != 0 {
		fmt.Fprintf(o.w, "Seed: %d\n", f.Seed)
	}
	for _, s := range f.Ships {
		fmt.Fprintf(o.w, "  ship %d: length %d at (%d,%d) %s\n", s.ShipID, s.Length, s.Row, s.Col, s.Orientation)
	}
	o.printGrid(f.Grid)
}

func (o *Output) printSession(s response.Session) {
	fmt.Fprintf(o.w, "Session: %s\n", s.ID)
	fmt.Fprintf(o.w, "Strategy: %s (fleet: %s)\n", s.Strategy, s.Policy)
	fmt.Fprintf(o.w, "Shots: %d  Hits: %d  Sunk: %d\n", s.ShotsFired, s.Hits, s.ShipsSunk)
	if s.Pending != nil {
		fmt.Fprintf(o.w, "Awaiting result for row %d, col %d\n", s.Pending.Row, s.Pending.Col)
	}
	if s.Finished {
		fmt.Fprintln(o.w, "Every opponent ship is sunk")
	}
	o.printGrid(s.Tracking)
}

func (o *Output) printSessionList(l response.SessionList) {
	if len(l.Sessions) == 0 {
		fmt.Fprintln(o.w, "No sessions")
		return
	}
	for _, s := range l.Sessions {
		state := "playing"
		if s.Finished {
			state = "finished"
		}
		fmt.Fprintf(o.w, "%s  %-9s %-9s shots=%-3d sunk=%d  %s\n", s.ID, s.Strategy, s.Policy, s.ShotsFired, s.ShipsSunk, state)
	}
}

func (o *Output) printIncoming(r response.IncomingResult) {
	switch {
	case r.Sunk:
		fmt.Fprintf(o.w, "Hit and sunk ship %d\n", r.ShipID)
	case r.Hit:
		fmt.Fprintln(o.w, "Hit")
	default:
		fmt.Fprintln(o.w, "Miss")
	}
	fmt.Fprintf(o.w, "Ships remaining: %d\n", r.ShipsRemaining)
	if r.Defeated {
		fmt.Fprintln(o.w, "The bot's fleet is destroyed")
	}
}

func (o *Output) printSimulation(s response.Simulation) {
	fmt.Fprintf(o.w, "Strategy: %s vs %s fleets\n", s.Strategy, s.Policy)
	fmt.Fprintf(o.w, "Games: %d", s.Games)
	if s.Omniscient {
		fmt.Fprint(o.w, " (omniscient)")
	}
	fmt.Fprintln(o.w)
	fmt.Fprintf(o.w, "Shots to win: min %d, max %d, mean %.2f\n", s.MinShots, s.MaxShots, s.MeanShots)
	fmt.Fprintf(o.w, "Seed: %d\n", s.Seed)
}

func (o *Output) printDuel(d response.Duel) {
	fmt.Fprintf(o.w, "Winner: %s after %d turns\n", d.Winner, d.Turns)
	fmt.Fprintf(o.w, "Shots: %d vs %d\n", d.Shots[0], d.Shots[1])
	fmt.Fprintf(o.w, "Hits: %d vs %d\n", d.Hits[0], d.Hits[1])
	fmt.Fprintf(o.w, "Seed: %d\n", d.Seed)
}

// printGrid draws a board given one string per row
func (o *Output) printGrid(rows []string) {
	if len(rows) == 0 {
		return
	}

	size := len(rows)

	// Print column headers
	fmt.Fprint(o.w, "    ")
	for col := 0; col < size; col++ {
		fmt.Fprintf(o.w, "%d ", col)
	}
	fmt.Fprintln(o.w)

	border := "   +" + strings.Repeat("-", 2*size+1) + "+"
	fmt.Fprintln(o.w, border)
	for row, cells := range rows {
		fmt.Fprintf(o.w, " %d | ", row)
		for _, c := range cells {
			fmt.Fprintf(o.w, "%c ", c)
		}
		fmt.Fprintln(o.w, "|")
	}
	fmt.Fprintln(o.w, border)
}
