package players

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/minaorangina/uno/game"
	"github.com/minaorangina/uno/protocol"
)

var retries = 3

type conn struct {
	In  *bufio.Reader
	Out io.Writer
}

// CLIPlayer is a person at a terminal
type CLIPlayer struct {
	id   string
	name string

	mu   sync.Mutex
	Conn *conn
}

// NewCLIPlayer constructs a player reading choices from in and writing to out
func NewCLIPlayer(id, name string, in io.Reader, out io.Writer) *CLIPlayer {
	return &CLIPlayer{
		id:   id,
		name: name,
		Conn: &conn{In: bufio.NewReader(in), Out: out},
	}
}

func (p *CLIPlayer) ID() string {
	return p.id
}

func (p *CLIPlayer) Name() string {
	return p.name
}

// SelectAction prints the table and the numbered actions, then reads a number.
// After too many invalid answers the first action is taken.
func (p *CLIPlayer) SelectAction(view *game.TableState, actions []game.Action) (game.Action, bool) {
	if len(actions) == 0 {
		return nil, false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	SendText(p.Conn.Out, "%s", buildTableText(p.name, view))
	SendText(p.Conn.Out, "%s", buildActionListText(actions))
	SendText(p.Conn.Out, chooseActionText, len(actions))

	for attempt := 0; attempt < retries; attempt++ {
		line, err := p.Conn.In.ReadString('\n')
		line = strings.TrimSpace(line)

		if n, convErr := strconv.Atoi(line); convErr == nil && n >= 1 && n <= len(actions) {
			return actions[n-1], true
		}
		if err != nil {
			break
		}
		SendText(p.Conn.Out, retryActionText, line)
	}

	SendText(p.Conn.Out, fallbackText, actions[0])
	return actions[0], true
}

func (p *CLIPlayer) Send(msg protocol.OutboundMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	SendText(p.Conn.Out, "%s", buildMessageText(msg))
	return nil
}
