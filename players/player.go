package players

import (
	"errors"

	"github.com/minaorangina/uno/game"
	"github.com/minaorangina/uno/protocol"
	uuid "github.com/satori/go.uuid"
)

var ErrPlayerGone = errors.New("player has disconnected")

// NewID constructs a player ID
func NewID() string {
	return uuid.NewV4().String()
}

// Player represents a player in the game
type Player interface {
	ID() string
	Name() string
	// SelectAction chooses one of actions given the player's view of the table.
	// It reports false when the player makes no choice.
	SelectAction(view *game.TableState, actions []game.Action) (game.Action, bool)
	Send(msg protocol.OutboundMessage) error
}

// Players represents all players in the game
type Players []Player

// NewPlayers returns a set of Players
func NewPlayers(p ...Player) Players {
	return Players(p)
}

// AddPlayer adds a player to a set of Players
func AddPlayer(ps Players, p Player) Players {
	if _, ok := ps.Find(p.ID()); !ok {
		return Players(append(ps, p))
	}
	return ps
}

// Find finds a player by id
func (ps Players) Find(id string) (Player, bool) {
	for _, p := range ps {
		if got := p.ID(); got == id {
			return p, true
		}
	}
	return nil, false
}

// Index returns the seat of the player with id, or -1
func (ps Players) Index(id string) int {
	for i, p := range ps {
		if p.ID() == id {
			return i
		}
	}
	return -1
}

// Names lists the players' names in seat order
func (ps Players) Names() []string {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.Name()
	}
	return names
}

// Info describes a player to the others
func Info(p Player) protocol.PlayerInfo {
	return protocol.PlayerInfo{PlayerID: p.ID(), Name: p.Name()}
}
