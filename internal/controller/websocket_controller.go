package controller

import (
	"encoding/json"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/simplechess/simplechess-go/internal/dto"
	"github.com/simplechess/simplechess-go/internal/service"
	wsmsg "github.com/simplechess/simplechess-go/internal/ws"
)

// WebSocketController handles live game connections: every mutation of a
// watched game is pushed to the peers, and peers may submit moves, claims
// and resignations as messages.
type WebSocketController struct {
	games  *service.GameService
	logger *zap.Logger
}

// NewWebSocketController builds a controller over the game service.
func NewWebSocketController(games *service.GameService, logger *zap.Logger) *WebSocketController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebSocketController{games: games, logger: logger}
}

// HandleConnection runs the read loop of one connection until it closes.
// All writes after subscription go through the peer, which serializes them
// against the service's update notifications.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("id")

	peer, err := wsc.games.Watch(gameID, c)
	if err != nil {
		// Not subscribed yet, so the read loop is the only writer.
		if werr := c.WriteJSON(errorMessage(err.Error())); werr != nil {
			wsc.logger.Debug("websocket write failed", zap.Error(werr))
		}
		c.Close()
		return
	}
	defer wsc.games.Unwatch(gameID, peer)

	// Send the current snapshot so the peer does not have to wait for the
	// first change.
	if state, err := wsc.games.GetGame(gameID); err == nil {
		wsc.send(peer, wsmsg.MessageTypeGameState, state)
	}

	for {
		messageType, data, err := c.ReadMessage()
		if err != nil {
			wsc.logger.Debug("websocket closed", zap.String("game_id", gameID), zap.Error(err))
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg wsmsg.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			wsc.sendError(peer, "malformed message")
			continue
		}
		if err := wsc.handleMessage(gameID, msg); err != nil {
			wsc.sendError(peer, err.Error())
		}
	}
}

// handleMessage dispatches one inbound message. Successful operations need
// no reply here; the service pushes the new state to every watcher,
// including the sender.
func (wsc *WebSocketController) handleMessage(gameID string, msg wsmsg.Message) error {
	switch msg.Type {
	case wsmsg.MessageTypeMove:
		var req dto.MoveRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return err
		}
		_, err := wsc.games.MakeMove(gameID, req)
		return err

	case wsmsg.MessageTypeClaimDraw:
		_, err := wsc.games.ClaimDraw(gameID)
		return err

	case wsmsg.MessageTypeResign:
		_, err := wsc.games.Resign(gameID)
		return err

	default:
		wsc.logger.Warn("unknown websocket message type", zap.String("type", msg.Type))
		return nil
	}
}

func (wsc *WebSocketController) send(peer *service.Peer, msgType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if err := peer.WriteMessage(wsmsg.Message{Type: msgType, Payload: data}); err != nil {
		wsc.logger.Debug("websocket write failed", zap.Error(err))
	}
}

func (wsc *WebSocketController) sendError(peer *service.Peer, errorMsg string) {
	if err := peer.WriteMessage(errorMessage(errorMsg)); err != nil {
		wsc.logger.Debug("websocket write failed", zap.Error(err))
	}
}

func errorMessage(text string) wsmsg.Message {
	payload, _ := json.Marshal(errorPayload{Error: text})
	return wsmsg.Message{Type: wsmsg.MessageTypeError, Payload: payload}
}

type errorPayload struct {
	Error string `json:"error"`
}
