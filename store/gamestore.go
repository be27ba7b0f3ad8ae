package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/minaorangina/uno/engine"
	"github.com/minaorangina/uno/game"
	"github.com/minaorangina/uno/players"
	"github.com/minaorangina/uno/protocol"
)

var (
	ErrUnknownGameID           = errors.New("unknown game ID")
	ErrUnknownPlayerID         = errors.New("unknown player ID")
	ErrFnUnknownInactiveGameID = func(gameID string) error {
		return fmt.Errorf("%w: pending game with id \"%s\" does not exist", ErrUnknownGameID, gameID)
	}
	ErrGameAlreadyStarted = errors.New("game has already started")
	ErrDuplicateGameID    = errors.New("game ID already in use")
)

type GameStore interface {
	FindGame(gameID string) *engine.GameEngine
	FindActiveGame(gameID string) *engine.GameEngine
	FindInactiveGame(gameID string) *engine.GameEngine
	FindPendingPlayer(gameID, playerID string) *protocol.PlayerInfo
	AddInactiveGame(ge *engine.GameEngine) error
	AddPendingPlayer(gameID, playerID, name string) error
	AddPlayerToGame(gameID string, player players.Player) error
	Snapshot(gameID string) (protocol.StateRecord, error)
}

// InMemoryGameStore maps game id to game engine.
// Each game keeps its own table; nothing is shared between games.
type InMemoryGameStore struct {
	mu             sync.RWMutex
	Games          map[string]*engine.GameEngine
	PendingPlayers map[string][]protocol.PlayerInfo
}

// NewInMemoryGameStore constructs an InMemoryGameStore
func NewInMemoryGameStore() *InMemoryGameStore {
	return &InMemoryGameStore{
		Games:          map[string]*engine.GameEngine{},
		PendingPlayers: map[string][]protocol.PlayerInfo{},
	}
}

func (s *InMemoryGameStore) FindGame(ID string) *engine.GameEngine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Games[ID]
}

// FindActiveGame finds a game that has started, including one that is over
func (s *InMemoryGameStore) FindActiveGame(ID string) *engine.GameEngine {
	game := s.FindGame(ID)
	if game == nil || game.PlayState() == engine.Idle {
		return nil
	}
	return game
}

// FindInactiveGame finds a game that is still waiting for players
func (s *InMemoryGameStore) FindInactiveGame(ID string) *engine.GameEngine {
	game := s.FindGame(ID)
	if game == nil || game.PlayState() != engine.Idle {
		return nil
	}
	return game
}

func (s *InMemoryGameStore) FindPendingPlayer(gameID, playerID string) *protocol.PlayerInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, info := range s.PendingPlayers[gameID] {
		if info.PlayerID == playerID {
			found := info
			return &found
		}
	}
	return nil
}

func (s *InMemoryGameStore) AddInactiveGame(game *engine.GameEngine) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.Games[game.ID()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateGameID, game.ID())
	}
	s.Games[game.ID()] = game
	return nil
}

// AddPendingPlayer adds the information from which to construct a Player in the future.
// If the target Game does not exist, it will fail.
func (s *InMemoryGameStore) AddPendingPlayer(gameID, playerID, name string) error {
	game := s.FindGame(gameID)
	if game == nil {
		return ErrFnUnknownInactiveGameID(gameID)
	}
	if game.PlayState() != engine.Idle {
		return ErrGameAlreadyStarted
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.PendingPlayers[gameID] = append(s.PendingPlayers[gameID], protocol.PlayerInfo{PlayerID: playerID, Name: name})
	return nil
}

func (s *InMemoryGameStore) AddPlayerToGame(gameID string, player players.Player) error {
	game := s.FindInactiveGame(gameID)
	if game == nil {
		return ErrFnUnknownInactiveGameID(gameID)
	}
	return game.AddPlayer(player)
}

// Snapshot returns the full, unmasked table of a started game
func (s *InMemoryGameStore) Snapshot(gameID string) (protocol.StateRecord, error) {
	game := s.FindGame(gameID)
	if game == nil {
		return protocol.StateRecord{}, fmt.Errorf("%w: %s", ErrUnknownGameID, gameID)
	}
	state := game.State()
	if state == nil {
		return protocol.StateRecord{}, fmt.Errorf("game %s: %w", gameID, engine.ErrGameNotStarted)
	}
	return protocol.EncodeState(state), nil
}

// SaveSnapshot writes the table of a started game as JSON
func SaveSnapshot(w io.Writer, s GameStore, gameID string) error {
	record, err := s.Snapshot(gameID)
	if err != nil {
		return err
	}
	return json.NewEncoder(w).Encode(record)
}

// LoadSnapshot reads a table written by SaveSnapshot, rejecting one that could not have been played
func LoadSnapshot(r io.Reader) (*game.TableState, error) {
	var record protocol.StateRecord
	if err := json.NewDecoder(r).Decode(&record); err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	return protocol.DecodeState(record)
}
