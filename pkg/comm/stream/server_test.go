package stream

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T) (*Server, func()) {
	s := NewServer()
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- s.Run(ctx) }()
	return s, func() {
		cancel()
		select {
		case <-errCh:
		case <-time.After(2 * time.Second):
			t.Fatal("server did not stop")
		}
	}
}

func TestServerAttachBridgesBytes(t *testing.T) {
	s, stop := startServer(t)
	defer stop()

	client, srvEnd := net.Pipe()
	go s.Attach(srvEnd)

	go func() { client.Write([]byte("T")) }()
	buf := make([]byte, 8)
	n, err := s.Read(buf)
	require.NoError(t, err)
	require.Equal(t, "T", string(buf[:n]))

	go func() {
		_, err := s.Write([]byte("Temperature reading ON\r\n"))
		require.NoError(t, err)
	}()
	out := make([]byte, 64)
	n, err = client.Read(out)
	require.NoError(t, err)
	require.Equal(t, "Temperature reading ON\r\n", string(out[:n]))

	client.Close()
}

func TestServerWriteWithoutClient(t *testing.T) {
	s := NewServer()
	n, err := s.Write([]byte("dropped"))
	require.NoError(t, err)
	require.Equal(t, 7, n)
}

func TestServerSequentialClients(t *testing.T) {
	s, stop := startServer(t)
	defer stop()

	first, firstSrv := net.Pipe()
	released := make(chan struct{})
	go func() {
		s.Attach(firstSrv)
		close(released)
	}()
	go func() { first.Write([]byte("a")) }()
	buf := make([]byte, 1)
	_, err := s.Read(buf)
	require.NoError(t, err)

	first.Close()
	select {
	case <-released:
	case <-time.After(2 * time.Second):
		t.Fatal("first client not released")
	}

	second, secondSrv := net.Pipe()
	go s.Attach(secondSrv)
	go func() { second.Write([]byte("b")) }()
	_, err = s.Read(buf)
	require.NoError(t, err)
	require.Equal(t, byte('b'), buf[0])
	second.Close()
}

func TestServerServeAcceptsTCP(t *testing.T) {
	s, stop := startServer(t)
	defer stop()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	serveErr := make(chan error, 1)
	go func() { serveErr <- s.Serve(ln).Run(ctx) }()

	conn, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	_, err = conn.Write([]byte("L50"))
	require.NoError(t, err)

	got := make([]byte, 0, 3)
	buf := make([]byte, 3)
	for len(got) < 3 {
		n, err := s.Read(buf)
		require.NoError(t, err)
		got = append(got, buf[:n]...)
	}
	require.Equal(t, "L50", string(got))

	conn.Close()
	cancel()
	select {
	case <-serveErr:
	case <-time.After(2 * time.Second):
		t.Fatal("serve did not stop")
	}
}
