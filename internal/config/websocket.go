package config

import (
	"net/http"

	"github.com/gorilla/websocket"
)

type WebSocket struct {
	Upgrader websocket.Upgrader
}

func NewWebSocket(c *Config) *WebSocket {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return c.Development() || r.Header.Get("Origin") == "" ||
				r.Header.Get("Origin") == "http://"+r.Host ||
				r.Header.Get("Origin") == "https://"+r.Host
		},
	}

	ws := &WebSocket{
		Upgrader: upgrader,
	}

	return ws
}
