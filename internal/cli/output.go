package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
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
		data, _ := json.Marshal(map[string]string{"error": err.Error()})
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Session:
		o.printSession(v)
	case UpdateResult:
		o.printUpdate(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Session is the identity returned by createRoom and join (matches API)
type Session struct {
	Success  bool   `json:"success"`
	RoomKey  string `json:"roomKey"`
	PlayerID string `json:"playerId"`
}

// Standing is one player's entry in an update payload
type Standing struct {
	Name string  `json:"name"`
	ID   string  `json:"id"`
	WPM  float64 `json:"wpm"`
	Acc  float64 `json:"acc"`
}

// UpdateData is the event-specific payload of an update
type UpdateData struct {
	Players []Standing `json:"players,omitempty"`
	Chars   string     `json:"chars,omitempty"`
}

// UpdateResult is a resolved long-poll response
type UpdateResult struct {
	Success bool       `json:"success"`
	Event   string     `json:"event"`
	Data    UpdateData `json:"data"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printSession(s Session) {
	fmt.Printf("Room: %s\n", s.RoomKey)
	fmt.Printf("Player ID: %s\n", s.PlayerID)
}

func (o *Output) printUpdate(u UpdateResult) {
	fmt.Printf("Event: %s\n", u.Event)
	if u.Data.Chars != "" {
		fmt.Printf("Text: %s\n", u.Data.Chars)
	}
	if len(u.Data.Players) > 0 {
		fmt.Printf("Players (%d):\n", len(u.Data.Players))
		for _, p := range u.Data.Players {
			fmt.Printf("  - %s (%s): %.1f wpm, %.1f%% accuracy\n", p.Name, p.ID, p.WPM, p.Acc)
		}
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
