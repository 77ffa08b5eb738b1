// Package httpd implements the connection handling of a tiny web server. A Session is a
// state machine fed with transport events one by one. It never blocks, never buffers a
// request or a response and holds nothing but a few cursors per connection.
package httpd

import (
	"io"
	"log/slog"

	"github.com/dchest/uniuri"
	"github.com/indigo-web/uhttpd/cgi"
	"github.com/indigo-web/uhttpd/config"
	"github.com/indigo-web/uhttpd/romfs"
)

const sessionIDLength = 8

// Server holds everything sessions share. It's immutable, so sessions of different
// connections may be driven concurrently.
type Server struct {
	cfg    config.HTTPD
	parser RequestParser
	store  romfs.Store
	cgi    *cgi.Table
	log    *slog.Logger
}

// NewServer returns a new server. Both table and logger may be nil: scripts then can't call
// any functions and nothing is logged.
func NewServer(cfg config.HTTPD, store romfs.Store, table *cgi.Table, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Server{
		cfg:    cfg,
		parser: NewRequestParser(cfg),
		store:  store,
		cgi:    table,
		log:    log,
	}
}

// NewSession returns a session exclusively owning the connection. The session expects
// EventConnected to be the first event delivered.
func (s *Server) NewSession(conn Conn) *Session {
	return &Session{
		srv:  s,
		conn: conn,
		log:  s.log.With("conn", uniuri.NewLen(sessionIDLength)),
	}
}

// open resolves the top-level request. Missing files are substituted by the not found page,
// if there is any.
func (s *Server) open(name string) []byte {
	if data, found := s.store.Open(name); found {
		return data
	}

	data, _ := s.store.Open(s.cfg.NotFoundFile)
	return data
}
