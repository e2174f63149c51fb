// Package ws attaches websocket clients to the device serial line.
package ws

import (
	"io"
	"net/http"

	"golang.org/x/net/websocket"
)

// Attacher takes ownership of a client connection until it is
// released; stream.Server implements it.
type Attacher interface {
	Attach(io.ReadWriteCloser)
}

// Handler returns an http.Handler bridging each websocket client onto
// the attacher. Frames carry raw serial bytes.
func Handler(a Attacher) http.Handler {
	return websocket.Handler(func(conn *websocket.Conn) {
		conn.PayloadType = websocket.BinaryFrame
		a.Attach(conn)
	})
}
