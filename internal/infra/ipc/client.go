package ipc

import (
	"net"

	"github.com/cockroachdb/errors"
)

// Send writes one command token to the daemon's socket and closes the
// connection. No response is read; the protocol has none.
func Send(path, token string) error {
	conn, err := net.Dial("unix", path)
	if err != nil {
		return errors.Wrapf(err, "connecting to %s (is the daemon running?)", path)
	}
	defer conn.Close()

	if _, err := conn.Write([]byte(token)); err != nil {
		return errors.Wrap(err, "sending command")
	}
	return nil
}
