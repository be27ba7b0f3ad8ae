package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/minaorangina/uno/game"
	"github.com/minaorangina/uno/players"
	"k8s.io/klog/v2"
)

// PlayState represents the state of the current game
// Idle -> waiting for players
// InProgress -> game in progress
// Over -> a player has won
type PlayState int

const (
	Idle PlayState = iota
	InProgress
	Over
)

func (ps PlayState) String() string {
	switch ps {
	case Idle:
		return "idle"
	case InProgress:
		return "inProgress"
	case Over:
		return "over"
	}
	return ""
}

var (
	ErrNoGameID       = errors.New("game ID is required")
	ErrNotIdle        = errors.New("game has already started")
	ErrGameNotStarted = errors.New("game has not started")
	ErrGameOver       = errors.New("game is over")
	ErrNoLegalAction  = errors.New("no legal action to take")
	ErrSeatMismatch   = errors.New("prepared state does not seat every player")
	ErrEveryoneLeft   = errors.New("every player has left")
)

// GameEngineOpts configures a GameEngine
type GameEngineOpts struct {
	GameID    string
	CreatorID string
	Players   players.Players
	// Uno defaults to a time-seeded rules engine
	Uno *game.Uno
	// State is an optional prepared setup state, dealt by Start instead of a fresh deck
	State *game.TableState
	// MaxPlayers defaults to game.MaxPlayers
	MaxPlayers int
}

// GameEngine seats players and drives a game turn by turn
type GameEngine struct {
	id         string
	creatorID  string
	uno        *game.Uno
	maxPlayers int
	prepared   *game.TableState

	// stepMu serialises turns; mu guards the fields below
	stepMu    sync.Mutex
	mu        sync.RWMutex
	players   players.Players
	state     *game.TableState
	playState PlayState
	turns     int
}

// NewGameEngine constructs a GameEngine
func NewGameEngine(opts GameEngineOpts) (*GameEngine, error) {
	if opts.GameID == "" {
		return nil, ErrNoGameID
	}

	ge := &GameEngine{
		id:         opts.GameID,
		creatorID:  opts.CreatorID,
		uno:        opts.Uno,
		maxPlayers: opts.MaxPlayers,
		players:    opts.Players,
	}
	if ge.uno == nil {
		ge.uno = game.New(game.UnoOpts{})
	}
	if ge.maxPlayers <= 0 || ge.maxPlayers > game.MaxPlayers {
		ge.maxPlayers = game.MaxPlayers
	}
	if len(ge.players) > ge.maxPlayers {
		return nil, game.ErrTooManyPlayers
	}
	if opts.State != nil {
		ge.prepared = opts.State.Clone()
	}

	return ge, nil
}

func (ge *GameEngine) ID() string {
	return ge.id
}

func (ge *GameEngine) CreatorID() string {
	return ge.creatorID
}

// Players returns the seated players in turn order
func (ge *GameEngine) Players() players.Players {
	ge.mu.RLock()
	defer ge.mu.RUnlock()
	return append(players.Players{}, ge.players...)
}

// PlayState reports whether the game is waiting, running or over
func (ge *GameEngine) PlayState() PlayState {
	ge.mu.RLock()
	defer ge.mu.RUnlock()
	return ge.playState
}

// State returns a copy of the table, or nil before the game starts
func (ge *GameEngine) State() *game.TableState {
	ge.mu.RLock()
	defer ge.mu.RUnlock()
	if ge.state == nil {
		return nil
	}
	return ge.state.Clone()
}

// Turns counts the turns taken so far
func (ge *GameEngine) Turns() int {
	ge.mu.RLock()
	defer ge.mu.RUnlock()
	return ge.turns
}

// Winner returns the winning player once the game is over
func (ge *GameEngine) Winner() (players.Player, bool) {
	ge.mu.RLock()
	defer ge.mu.RUnlock()
	if ge.state == nil || ge.state.Winner == nil {
		return nil, false
	}
	return ge.players[*ge.state.Winner], true
}

// AddPlayer seats a player and tells everyone at the table.
// Players can only join before the game starts.
func (ge *GameEngine) AddPlayer(p players.Player) error {
	ge.mu.Lock()
	if ge.playState != Idle {
		ge.mu.Unlock()
		return ErrNotIdle
	}
	if _, ok := ge.players.Find(p.ID()); !ok && len(ge.players) >= ge.maxPlayers {
		ge.mu.Unlock()
		return game.ErrTooManyPlayers
	}
	ge.players = players.AddPlayer(ge.players, p)
	ps := append(players.Players{}, ge.players...)
	ge.mu.Unlock()

	klog.V(1).Infof("game %s: %s joined", ge.id, p.Name())
	for _, recipient := range ps {
		ge.send(recipient, buildNewJoinerMessage(p, recipient))
	}
	return nil
}

// Start deals the cards and reveals the opening card
func (ge *GameEngine) Start() error {
	ge.mu.Lock()
	if ge.playState != Idle {
		ge.mu.Unlock()
		return ErrNotIdle
	}
	if err := ge.checkNumPlayers(); err != nil {
		ge.mu.Unlock()
		return err
	}

	state, err := ge.setup()
	if err != nil {
		ge.mu.Unlock()
		return fmt.Errorf("starting game %s: %w", ge.id, err)
	}
	ge.state = state
	ge.playState = InProgress
	ps := append(players.Players{}, ge.players...)
	ge.mu.Unlock()

	klog.Infof("game %s: started with %d players", ge.id, len(ps))
	for i, recipient := range ps {
		ge.send(recipient, buildHasStartedMessage(state, ps, i))
	}
	return nil
}

func (ge *GameEngine) setup() (*game.TableState, error) {
	if ge.prepared == nil {
		return ge.uno.Setup(ge.players.Names()...)
	}
	if len(ge.prepared.Players) != len(ge.players) {
		return nil, ErrSeatMismatch
	}
	return ge.uno.SetupState(ge.prepared)
}

func (ge *GameEngine) checkNumPlayers() error {
	if len(ge.players) < game.MinPlayers {
		return game.ErrTooFewPlayers
	}
	if len(ge.players) > ge.maxPlayers {
		return game.ErrTooManyPlayers
	}
	return nil
}

// Step plays one turn: the active player chooses from the legal actions and the choice is applied.
// A player who makes no choice, or an unlisted one, takes the first draw action instead.
func (ge *GameEngine) Step() (game.Outcome, error) {
	ge.stepMu.Lock()
	defer ge.stepMu.Unlock()

	ge.mu.RLock()
	playState, state := ge.playState, ge.state
	ps := append(players.Players{}, ge.players...)
	ge.mu.RUnlock()

	switch playState {
	case Idle:
		return game.Outcome{}, ErrGameNotStarted
	case Over:
		return game.Outcome{}, ErrGameOver
	}

	active := state.ActiveIdx
	player := ps[active]
	actions := ge.uno.LegalActions(state)

	chosen, ok := player.SelectAction(state.PlayerView(active), actions)
	if !ok || !game.ContainsAction(actions, chosen) {
		chosen, ok = firstDraw(actions)
		if !ok {
			return game.Outcome{}, ErrNoLegalAction
		}
		klog.V(1).Infof("game %s: %s made no choice, drawing", ge.id, player.Name())
	}

	next, out, err := ge.uno.ApplyWithOutcome(state, chosen)
	if err != nil {
		return out, fmt.Errorf("game %s: %w", ge.id, err)
	}

	ge.mu.Lock()
	ge.state = next
	ge.turns++
	if next.Phase == game.PhaseFinished {
		ge.playState = Over
	}
	ge.mu.Unlock()

	for i, recipient := range ps {
		if out.Finished {
			ge.send(recipient, buildGameOverMessage(next, ps, i))
			continue
		}
		ge.send(recipient, buildEndOfTurnMessage(next, out, ps, i))
	}
	if out.Finished {
		klog.Infof("game %s: %s wins after %d turns", ge.id, player.Name(), ge.Turns())
	}
	return out, nil
}

// Play steps until the game is over, ctx is done or every player has disconnected
func (ge *GameEngine) Play(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if ge.PlayState() == Over {
			return nil
		}
		if everyoneLeft(ge.Players()) {
			klog.Infof("game %s: abandoned after %d turns", ge.id, ge.Turns())
			return ErrEveryoneLeft
		}
		if _, err := ge.Step(); err != nil {
			return err
		}
	}
}

// leaver is a player who can disconnect
type leaver interface {
	Done() <-chan struct{}
}

func everyoneLeft(ps players.Players) bool {
	for _, p := range ps {
		l, ok := p.(leaver)
		if !ok {
			return false
		}
		select {
		case <-l.Done():
		default:
			return false
		}
	}
	return len(ps) > 0
}

func firstDraw(actions []game.Action) (game.Action, bool) {
	for _, a := range actions {
		if d, ok := a.(game.Draw); ok {
			return d, true
		}
	}
	return nil, false
}
