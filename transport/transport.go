// Package transport turns real network connections into the event stream sessions are
// driven by.
package transport

import (
	"net"

	"github.com/indigo-web/uhttpd/config"
)

type Transport interface {
	Bind(addr string) error
	Listen(cfg config.NET, cb func(conn net.Conn)) error
	Addr() net.Addr
	Stop()
	Close()
	Wait()
}
