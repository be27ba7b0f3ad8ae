package engine

import (
	"fmt"

	"github.com/minaorangina/uno/game"
	"github.com/minaorangina/uno/players"
	"github.com/minaorangina/uno/protocol"
	"k8s.io/klog/v2"
)

func (ge *GameEngine) send(p players.Player, msg protocol.OutboundMessage) {
	if err := p.Send(msg); err != nil {
		klog.Errorf("game %s: sending %s to %s: %v", ge.id, msg.Command, p.ID(), err)
	}
}

func buildBaseMessage(recipient players.Player) protocol.OutboundMessage {
	return protocol.OutboundMessage{
		PlayerID: recipient.ID(),
		Name:     recipient.Name(),
	}
}

// buildTableMessage shows the recipient the table as seen from their seat
func buildTableMessage(state *game.TableState, ps players.Players, seat int) protocol.OutboundMessage {
	msg := buildBaseMessage(ps[seat])
	record := protocol.EncodeState(state.PlayerView(seat))
	msg.State = &record
	if state.Phase == game.PhaseRunning {
		current := players.Info(ps[state.ActiveIdx])
		msg.CurrentTurn = &current
	}
	return msg
}

func buildNewJoinerMessage(joiner, recipient players.Player) protocol.OutboundMessage {
	info := players.Info(joiner)
	msg := buildBaseMessage(recipient)
	msg.Command = protocol.NewJoiner
	msg.Message = fmt.Sprintf("%s has joined the game!", joiner.Name())
	msg.Joiner = &info
	return msg
}

func buildHasStartedMessage(state *game.TableState, ps players.Players, seat int) protocol.OutboundMessage {
	msg := buildTableMessage(state, ps, seat)
	msg.Command = protocol.HasStarted
	msg.Message = fmt.Sprintf("The game has started. Opening card %s, %s to play", topCardText(state), ps[state.ActiveIdx].Name())
	return msg
}

func buildEndOfTurnMessage(state *game.TableState, out game.Outcome, ps players.Players, seat int) protocol.OutboundMessage {
	msg := buildTableMessage(state, ps, seat)
	msg.Command = protocol.EndOfTurn
	msg.Message = describeOutcome(out, ps[out.Player].Name())
	return msg
}

func buildGameOverMessage(state *game.TableState, ps players.Players, seat int) protocol.OutboundMessage {
	winner := players.Info(ps[*state.Winner])
	msg := buildTableMessage(state, ps, seat)
	msg.Command = protocol.GameOver
	msg.Message = fmt.Sprintf("%s wins!", winner.Name)
	msg.Winner = &winner
	return msg
}

func describeOutcome(out game.Outcome, name string) string {
	var text string
	switch a := out.Action.(type) {
	case game.Play:
		text = fmt.Sprintf("%s played %s", name, a)
	case game.Draw:
		text = fmt.Sprintf("%s drew %s", name, cardCount(out.Drawn))
	}
	if out.Penalty > 0 {
		text += fmt.Sprintf(" and drew %s for not calling their last card", cardCount(out.Penalty))
	}
	if out.Shortfall != nil {
		text += fmt.Sprintf(" (%s)", out.Shortfall)
	}
	return text
}

func cardCount(n int) string {
	if n == 1 {
		return "1 card"
	}
	return fmt.Sprintf("%d cards", n)
}

func topCardText(state *game.TableState) string {
	top, ok := state.TopCard()
	if !ok {
		return "none"
	}
	return top.String()
}
