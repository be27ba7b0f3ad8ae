package players

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/minaorangina/uno/game"
	"github.com/minaorangina/uno/protocol"
	"k8s.io/klog/v2"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	sendBuffer = 16

	// DefaultDecisionTimeout is how long a player has to choose an action
	DefaultDecisionTimeout = 2 * time.Minute
)

// WSPlayer is a player connected over a websocket
type WSPlayer struct {
	id   string
	name string
	conn *websocket.Conn

	send      chan []byte
	decisions chan protocol.InboundMessage
	done      chan struct{}
	closeOnce sync.Once

	// DecisionTimeout bounds SelectAction
	DecisionTimeout time.Duration
}

// NewWSPlayer constructs a player and starts pumping messages on ws
func NewWSPlayer(id, name string, ws *websocket.Conn) *WSPlayer {
	player := &WSPlayer{
		id:              id,
		name:            name,
		conn:            ws,
		send:            make(chan []byte, sendBuffer),
		decisions:       make(chan protocol.InboundMessage, 1),
		done:            make(chan struct{}),
		DecisionTimeout: DefaultDecisionTimeout,
	}
	go player.writePump()
	go player.readPump()
	return player
}

func (p *WSPlayer) ID() string {
	return p.id
}

func (p *WSPlayer) Name() string {
	return p.name
}

// Done is closed once the connection has gone
func (p *WSPlayer) Done() <-chan struct{} {
	return p.done
}

// Close disconnects the player
func (p *WSPlayer) Close() {
	p.closeOnce.Do(func() {
		close(p.done)
	})
}

func (p *WSPlayer) Send(msg protocol.OutboundMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	select {
	case <-p.done:
		return ErrPlayerGone
	default:
	}

	select {
	case p.send <- data:
		return nil
	case <-p.done:
		return ErrPlayerGone
	}
}

// SelectAction sends the actions to the player and waits for the index of their choice.
// It reports false if the player disconnects, times out or sends an invalid index.
func (p *WSPlayer) SelectAction(view *game.TableState, actions []game.Action) (game.Action, bool) {
	if len(actions) == 0 {
		return nil, false
	}

	// discard answers to earlier questions
	select {
	case <-p.decisions:
	default:
	}

	msg := protocol.OutboundMessage{
		PlayerID:      p.id,
		Command:       protocol.ChooseAction,
		Name:          p.name,
		Actions:       protocol.EncodeActions(actions),
		ShouldRespond: true,
	}
	if view != nil {
		state := protocol.EncodeState(view)
		msg.State = &state
	}
	if err := p.Send(msg); err != nil {
		return nil, false
	}

	timer := time.NewTimer(p.DecisionTimeout)
	defer timer.Stop()

	for {
		select {
		case msg := <-p.decisions:
			if msg.Command != protocol.ChooseAction {
				continue
			}
			if msg.Decision < 0 || msg.Decision >= len(actions) {
				klog.V(1).Infof("player %s chose %d of %d actions", p.id, msg.Decision, len(actions))
				return nil, false
			}
			return actions[msg.Decision], true

		case <-timer.C:
			klog.V(1).Infof("player %s did not choose in time", p.id)
			return nil, false

		case <-p.done:
			return nil, false
		}
	}
}

func (p *WSPlayer) readPump() {
	defer p.Close()

	p.conn.SetReadLimit(maxMessageSize)
	p.conn.SetReadDeadline(time.Now().Add(pongWait))
	p.conn.SetPongHandler(func(string) error {
		p.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg protocol.InboundMessage
		if err := p.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				klog.Errorf("player %s: %v", p.id, err)
			}
			return
		}
		msg.PlayerID = p.id

		select {
		case p.decisions <- msg:
		default:
			klog.V(2).Infof("player %s: dropped unexpected message %s", p.id, msg.Command)
		}
	}
}

func (p *WSPlayer) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		p.conn.Close()
	}()

	for {
		select {
		case msg := <-p.send:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				p.Close()
				return
			}

		case <-ticker.C:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				p.Close()
				return
			}

		case <-p.done:
			p.flush()
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			p.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

// flush writes whatever is still queued
func (p *WSPlayer) flush() {
	for {
		select {
		case msg := <-p.send:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		default:
			return
		}
	}
}
