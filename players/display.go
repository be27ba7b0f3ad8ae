package players

import (
	"fmt"
	"io"
	"strings"

	"github.com/minaorangina/uno/game"
	"github.com/minaorangina/uno/protocol"
)

const (
	chooseActionText = "\nChoose an action (1-%d): "
	retryActionText  = "%q is not one of the actions, try again: "
	fallbackText     = "\nNo valid choice, playing %s\n"
)

func SendText(w io.Writer, text string, a ...interface{}) {
	fmt.Fprintf(w, text, a...)
}

func buildTableText(name string, view *game.TableState) string {
	return fmt.Sprintf("\n%s, it's your turn 🃏\n%s\n", name, view)
}

func buildActionListText(actions []game.Action) string {
	var sb strings.Builder
	for i, a := range actions {
		fmt.Fprintf(&sb, "%d - %s\n", i+1, a)
	}
	return sb.String()
}

func buildMessageText(msg protocol.OutboundMessage) string {
	switch msg.Command {
	case protocol.NewJoiner:
		if msg.Joiner != nil {
			return fmt.Sprintf("%s has joined the game!\n", msg.Joiner.Name)
		}
	case protocol.HasStarted:
		return "The game has started\n"
	case protocol.Turn:
		if msg.CurrentTurn != nil {
			return fmt.Sprintf("It's %s's turn\n", msg.CurrentTurn.Name)
		}
	case protocol.GameOver:
		if msg.Winner != nil {
			return fmt.Sprintf("Game over! %s wins 🎉\n", msg.Winner.Name)
		}
		return "Game over!\n"
	case protocol.Error:
		return fmt.Sprintf("Error: %s\n", msg.Error)
	}
	if msg.Message != "" {
		return msg.Message + "\n"
	}
	return ""
}
