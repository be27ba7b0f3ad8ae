package protocol

import (
	"encoding/json"
	"fmt"
)

// PlayerInfo identifies a player to the other players
type PlayerInfo struct {
	PlayerID string `json:"playerID"`
	Name     string `json:"name"`
}

// InboundMessage is a message from Player to GameEngine
type InboundMessage struct {
	PlayerID string `json:"playerID"`
	Command  Cmd    `json:"command"`
	// Decision is the index of the chosen action in the list last sent to the player
	Decision int `json:"decision"`
}

// OutboundMessage is a message from GameEngine to Player
type OutboundMessage struct {
	PlayerID      string         `json:"playerID"`
	Command       Cmd            `json:"command"`
	Name          string         `json:"name"`
	Message       string         `json:"message"`
	State         *StateRecord   `json:"state,omitempty"`
	Actions       []ActionRecord `json:"actions,omitempty"`
	ShouldRespond bool           `json:"shouldRespond"`
	Joiner        *PlayerInfo    `json:"joiner,omitempty"`
	CurrentTurn   *PlayerInfo    `json:"currentTurn,omitempty"`
	Winner        *PlayerInfo    `json:"winner,omitempty"`
	Error         string         `json:"error,omitempty"`
}

type Cmd int

const (
	Null Cmd = iota
	NewJoiner
	Start
	HasStarted
	Error
	Turn
	ChooseAction
	EndOfTurn
	GameOver
)

var CmdNames = map[Cmd]string{
	Null:         "Null",
	NewJoiner:    "NewJoiner",
	Start:        "Start",
	HasStarted:   "HasStarted",
	Error:        "Error",
	Turn:         "Turn",
	ChooseAction: "ChooseAction",
	EndOfTurn:    "EndOfTurn",
	GameOver:     "GameOver",
}

var NameToCmd = map[string]Cmd{
	"Null":         Null,
	"NewJoiner":    NewJoiner,
	"Start":        Start,
	"HasStarted":   HasStarted,
	"Error":        Error,
	"Turn":         Turn,
	"ChooseAction": ChooseAction,
	"EndOfTurn":    EndOfTurn,
	"GameOver":     GameOver,
}

func (c Cmd) String() string {
	return CmdNames[c]
}

// MarshalJSON writes the command by name
func (c Cmd) MarshalJSON() ([]byte, error) {
	name, ok := CmdNames[c]
	if !ok {
		return nil, fmt.Errorf("unknown command %d", int(c))
	}
	return json.Marshal(name)
}

// UnmarshalJSON accepts a command name or its number
func (c *Cmd) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		cmd, ok := NameToCmd[name]
		if !ok {
			return fmt.Errorf("unknown command %q", name)
		}
		*c = cmd
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("command must be a name or a number: %w", err)
	}
	if _, ok := CmdNames[Cmd(n)]; !ok {
		return fmt.Errorf("unknown command %d", n)
	}
	*c = Cmd(n)
	return nil
}
