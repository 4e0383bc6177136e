package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type MessageType string

const (
	MessageTypeOutput MessageType = "output"
	MessageTypeState  MessageType = "state"
	MessageTypeError  MessageType = "error"
)

// ClientMessage is one frame sent by the browser
type ClientMessage struct {
	Command string `json:"command"`
	UserID  string `json:"userId,omitempty"`
}

type UpdateMessage struct {
	Type      MessageType `json:"type"`
	SessionID string      `json:"sessionId"`
	Data      any         `json:"data"`
}

type OutputData struct {
	Input   string `json:"input"`
	Output  string `json:"output"`
	Outcome string `json:"outcome"`
}

// handleWebSocket runs one interactive terminal over a socket. The session
// comes from ?sessionId= and is created when missing. Every command frame
// is answered by an output frame followed by a state frame.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx := r.Context()
	sess, err := s.Simulator.Open(ctx, r.URL.Query().Get("sessionId"))
	if err != nil {
		conn.WriteJSON(UpdateMessage{Type: MessageTypeError, Data: err.Error()})
		return
	}
	logger := s.logger.With(zap.String("session", sess.ID))
	logger.Info("websocket client connected")

	view, _ := s.Simulator.State(ctx, sess.ID)
	if err := conn.WriteJSON(UpdateMessage{Type: MessageTypeState, SessionID: sess.ID, Data: view}); err != nil {
		logger.Warn("failed to send initial state", zap.Error(err))
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			logger.Info("websocket client disconnected", zap.Error(err))
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			// Malformed frame; report it and keep the connection
			if werr := conn.WriteJSON(UpdateMessage{Type: MessageTypeError, SessionID: sess.ID, Data: err.Error()}); werr != nil {
				return
			}
			continue
		}

		if strings.TrimSpace(msg.Command) == "" {
			continue
		}

		res, err := s.Simulator.Execute(ctx, sess.ID, msg.UserID, msg.Command)
		if err != nil {
			if werr := conn.WriteJSON(UpdateMessage{Type: MessageTypeError, SessionID: sess.ID, Data: err.Error()}); werr != nil {
				return
			}
			continue
		}

		frames := []UpdateMessage{
			{Type: MessageTypeOutput, SessionID: sess.ID, Data: OutputData{
				Input:   res.Entry.Input,
				Output:  res.Entry.Output,
				Outcome: res.Outcome.String(),
			}},
			{Type: MessageTypeState, SessionID: sess.ID, Data: res.View},
		}
		for _, f := range frames {
			if err := conn.WriteJSON(f); err != nil {
				logger.Warn("failed to write frame", zap.Error(err))
				return
			}
		}
	}
}
