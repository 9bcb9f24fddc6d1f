package websocket

import "github.com/CongDon1207/Four-Connect/internal/service/game"

// ClientMessage is sent by the browser. Column is only read for "move".
type ClientMessage struct {
	Type   string `json:"type"`
	Column int    `json:"column"`
}

// ServerMessage carries either a fresh state or an error, sometimes both.
type ServerMessage struct {
	Type    string      `json:"type"`
	State   *game.State `json:"state,omitempty"`
	Message string      `json:"message,omitempty"`
}

const (
	MessageState = "state"
	MessageMove  = "move"
	MessageUndo  = "undo"
	MessageReset = "reset"
	MessageError = "error"
)

func stateMessage(state game.State) ServerMessage {
	return ServerMessage{Type: MessageState, State: &state}
}

func errorMessage(err error, state *game.State) ServerMessage {
	msg := ServerMessage{Type: MessageError, Message: err.Error()}
	if state != nil && state.GameID != "" {
		msg.State = state
	}
	return msg
}
