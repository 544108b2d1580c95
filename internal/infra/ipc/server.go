// Package ipc provides the local command channel: a unix socket carrying
// one raw UTF-8 command token per connection, with no response.
package ipc

import (
	"io"
	"net"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/dkrasnov/melodeon/internal/app/player"
)

// DefaultSocketPath is where the daemon listens.
const DefaultSocketPath = "/tmp/melodeon.sock"

// maxRequest bounds a request read; valid tokens are a few bytes.
const maxRequest = 256

// Server accepts one connection per request, reads a command token and
// forwards it to the dispatcher. Connections are served strictly
// sequentially; there is no queue and no backpressure beyond the socket
// backlog.
type Server struct {
	ln    net.Listener
	apply func(player.Command) error
}

// NewServer binds the unix socket at path, removing a stale socket file
// from a previous run first.
func NewServer(path string, apply func(player.Command) error) (*Server, error) {
	_ = os.Remove(path)
	ln, err := net.Listen("unix", path)
	if err != nil {
		return nil, errors.Wrapf(err, "binding command socket %s", path)
	}
	return &Server{ln: ln, apply: apply}, nil
}

// Serve runs the accept loop until the listener is closed. Failures on a
// single connection are logged and the loop continues.
func (s *Server) Serve() {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			zlog.Warn().Err(err).Msg("ipc: accept failed")
			continue
		}
		s.handle(conn)
	}
}

// Close shuts the listener down, making Serve return.
func (s *Server) Close() error {
	return s.ln.Close()
}

func (s *Server) handle(conn net.Conn) {
	defer conn.Close()

	id := uuid.NewString()

	data, err := io.ReadAll(io.LimitReader(conn, maxRequest))
	if err != nil {
		zlog.Warn().Err(err).Str("conn", id).Msg("ipc: read failed")
		return
	}

	token := strings.TrimSpace(string(data))
	cmd, ok := player.ParseCommand(token)
	if !ok {
		// Unrecognized tokens are silently dropped; the sender gets
		// no indication either way.
		zlog.Debug().Str("conn", id).Msgf("ipc: ignoring unknown command %q", token)
		return
	}

	zlog.Debug().Str("conn", id).Msgf("ipc: %s", cmd)
	if err := s.apply(cmd); err != nil {
		zlog.Warn().Err(err).Str("conn", id).Msgf("ipc: %s failed", cmd)
	}
}
