// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// wsQuery is the first message a client sends after connecting.
type wsQuery struct {
	Query string `json:"query"`
}

// wsError is sent when a run cannot start.
type wsError struct {
	Error string `json:"error"`
}

// handleWS upgrades the connection, reads one query message, and
// streams progress events until the final report. One run per
// connection; the socket closes when the run ends.
func (s *Server) handleWS(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer ws.Close()

	_, msg, err := ws.ReadMessage()
	if err != nil {
		return
	}

	var q wsQuery
	if err := json.Unmarshal(msg, &q); err != nil || q.Query == "" {
		_ = ws.WriteJSON(wsError{Error: "expected {\"query\": \"...\"}"})
		return
	}

	s.logger.Info("websocket run started", "query", q.Query)
	for ev := range s.agent.Run(c.Request.Context(), q.Query) {
		if err := ws.WriteJSON(ev); err != nil {
			s.logger.Warn("websocket write failed", "error", err)
			return
		}
	}
}
