package players

import (
	"math/rand"
	"sync"
	"time"

	"github.com/minaorangina/uno/game"
	"github.com/minaorangina/uno/protocol"
)

// RandomPlayer picks any of the actions it is offered
type RandomPlayer struct {
	id   string
	name string

	mu       sync.Mutex
	rng      *rand.Rand
	received []protocol.OutboundMessage
}

// NewRandomPlayer constructs a player choosing with r. A nil r is seeded from the clock.
func NewRandomPlayer(id, name string, r *rand.Rand) *RandomPlayer {
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &RandomPlayer{id: id, name: name, rng: r}
}

func (p *RandomPlayer) ID() string {
	return p.id
}

func (p *RandomPlayer) Name() string {
	return p.name
}

func (p *RandomPlayer) SelectAction(_ *game.TableState, actions []game.Action) (game.Action, bool) {
	if len(actions) == 0 {
		return nil, false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return actions[p.rng.Intn(len(actions))], true
}

func (p *RandomPlayer) Send(msg protocol.OutboundMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.received = append(p.received, msg)
	return nil
}

// Received returns the messages sent to the player so far
func (p *RandomPlayer) Received() []protocol.OutboundMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]protocol.OutboundMessage, len(p.received))
	copy(out, p.received)
	return out
}
