// Package stream exposes the device serial line to host clients over
// byte-stream connections.
package stream

import (
	"context"
	"io"
	"net"
	"sync"

	"github.com/golang/glog"

	"github.com/microbots/thermo.go/pkg/framework"
)

// Server is the host end of the serial wire. At most one client
// connection is attached at a time; bytes written while no client is
// attached are dropped, like talking on an unplugged serial port.
type Server struct {
	readCh chan byte
	connCh chan *attached

	cur  io.ReadWriteCloser
	lock sync.RWMutex
}

type attached struct {
	rw   io.ReadWriteCloser
	done chan struct{}
}

// NewServer creates a Server.
func NewServer() *Server {
	return &Server{
		readCh: make(chan byte, 64),
		connCh: make(chan *attached),
	}
}

// Attach hands a connection to the server and blocks until the
// connection is released. Used directly by in-process transports
// (e.g. websocket handlers) and by Serve.
func (s *Server) Attach(rw io.ReadWriteCloser) {
	a := &attached{rw: rw, done: make(chan struct{})}
	s.connCh <- a
	<-a.done
}

// Serve returns a Runnable accepting connections from ln and
// attaching them one at a time.
func (s *Server) Serve(ln net.Listener) framework.Runnable {
	return framework.NamedRun("listener", framework.RunFunc(func(ctx context.Context) error {
		return framework.RunWithContextCloser(ctx, ln, func() error {
			for {
				conn, err := ln.Accept()
				if err != nil {
					return err
				}
				glog.Infof("client connected: %s", conn.RemoteAddr())
				s.Attach(conn)
				glog.Infof("client detached: %s", conn.RemoteAddr())
			}
		})
	}))
}

// Name implements framework.Named.
func (s *Server) Name() string {
	return "stream"
}

// Run owns the attachment lifecycle until the context is canceled.
// It implements framework.Runnable.
func (s *Server) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case a := <-s.connCh:
			s.setCurrent(a.rw)
			err := framework.RunWithContext(ctx, func() error { return s.pump(a.rw) })
			s.setCurrent(nil)
			a.rw.Close()
			close(a.done)
			if err == context.Canceled {
				return err
			}
			glog.V(1).Infof("connection closed: %v", err)
		}
	}
}

func (s *Server) pump(rw io.Reader) error {
	buf := make([]byte, 1)
	for {
		n, err := rw.Read(buf)
		if err != nil {
			return err
		}
		if n > 0 {
			s.readCh <- buf[0]
		}
	}
}

func (s *Server) setCurrent(rw io.ReadWriteCloser) {
	s.lock.Lock()
	s.cur = rw
	s.lock.Unlock()
}

// Read implements io.Reader for the device side. It blocks until a
// client sends at least one byte.
func (s *Server) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	p[0] = <-s.readCh
	n := 1
	for n < len(p) {
		select {
		case b := <-s.readCh:
			p[n] = b
			n++
		default:
			return n, nil
		}
	}
	return n, nil
}

// Write implements io.Writer for the device side.
func (s *Server) Write(p []byte) (int, error) {
	s.lock.RLock()
	cur := s.cur
	s.lock.RUnlock()
	if cur == nil {
		// nobody listening, the bytes go nowhere
		return len(p), nil
	}
	return cur.Write(p)
}
