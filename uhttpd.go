// Package uhttpd is a minimal web server serving a read-only file image and tiny
// scripts, built around a per-connection state machine which needs no more than a
// few cursors of memory per client.
package uhttpd

import (
	"errors"
	"io"
	"log/slog"
	"net"

	"github.com/indigo-web/uhttpd/cgi"
	"github.com/indigo-web/uhttpd/config"
	"github.com/indigo-web/uhttpd/httpd"
	"github.com/indigo-web/uhttpd/romfs"
	"github.com/indigo-web/uhttpd/transport"
)

// DefaultAddr is the classic HTTP port on all interfaces.
const DefaultAddr = ":80"

var ErrNoFiles = errors.New("uhttpd: no file store is set")

// App wires everything together.
type App struct {
	addrs      []string
	cfg        *config.Config
	store      romfs.Store
	table      *cgi.Table
	log        *slog.Logger
	hooks      hooks
	supervisor transport.Supervisor
}

// New returns a new App instance listening on the address. Empty address defaults to
// DefaultAddr.
func New(addr string) *App {
	if len(addr) == 0 {
		addr = DefaultAddr
	}

	return &App{
		addrs:      []string{addr},
		cfg:        config.Default(),
		table:      cgi.NewTable(),
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		supervisor: transport.NewSupervisor(),
	}
}

// Listen adds one more address to listen on.
func (a *App) Listen(addr string) *App {
	a.addrs = append(a.addrs, addr)
	return a
}

// Tune replaces the default config.
func (a *App) Tune(cfg *config.Config) *App {
	a.cfg = cfg
	return a
}

// Files sets the store files are served from.
func (a *App) Files(store romfs.Store) *App {
	a.store = store
	return a
}

// CGI sets the table of functions scripts may call.
func (a *App) CGI(table *cgi.Table) *App {
	a.table = table
	return a
}

// Logger replaces the default logger, which discards everything.
func (a *App) Logger(log *slog.Logger) *App {
	a.log = log
	return a
}

// NotifyOnStart calls the callback as soon as all the addresses are bound.
func (a *App) NotifyOnStart(cb func()) *App {
	a.hooks.OnStart = cb
	return a
}

// NotifyOnStop calls the callback at the moment, when all the listeners are down and all the
// clients are disconnected.
func (a *App) NotifyOnStop(cb func()) *App {
	a.hooks.OnStop = cb
	return a
}

// Addrs returns the addresses actually bound. Valid since the start hook is called.
func (a *App) Addrs() []net.Addr {
	return a.supervisor.Addrs()
}

// Serve binds all the addresses and blocks until the App is stopped or any listener fails.
func (a *App) Serve() error {
	if a.store == nil {
		return ErrNoFiles
	}

	if err := a.cfg.Validate(); err != nil {
		return err
	}

	srv := httpd.NewServer(a.cfg.HTTPD, a.store, a.table, a.log)

	for _, addr := range a.addrs {
		if err := a.supervisor.Add(addr, transport.NewTCP(), a.onConn(srv)); err != nil {
			return err
		}
	}

	for _, addr := range a.Addrs() {
		a.log.Info("listening", "addr", addr.String())
	}

	callIfNotNil(a.hooks.OnStart)
	err := a.supervisor.Run(a.cfg.NET)
	callIfNotNil(a.hooks.OnStop)

	return err
}

// Stop shuts all the listeners down and waits until every connection is served. Must be
// called only while Serve is running.
func (a *App) Stop() {
	a.supervisor.Stop()
}

func (a *App) onConn(srv *httpd.Server) func(net.Conn) {
	newSession := func(conn httpd.Conn) transport.Session {
		return srv.NewSession(conn)
	}

	return func(conn net.Conn) {
		if err := transport.Serve(conn, a.cfg.NET, newSession); err != nil {
			a.log.Warn("connection failed", "remote", conn.RemoteAddr().String(), "err", err)
		}
	}
}

type hooks struct {
	OnStart, OnStop func()
}

func callIfNotNil(f func()) {
	if f != nil {
		f()
	}
}
