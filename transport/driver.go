package transport

import (
	"errors"
	"io"
	"net"
	"os"
	"time"

	"github.com/indigo-web/uhttpd/config"
	"github.com/indigo-web/uhttpd/httpd"
)

// Session is the event consumer driven over a connection.
type Session interface {
	Handle(ev httpd.Event)
}

// Serve drives the session created for the connection until it either closes or aborts the
// connection, or the connection breaks. Writes are synchronous, so every successful write
// is reported back as acknowledged right away. Silence longer than the poll interval is
// reported as a poll event.
func Serve(conn net.Conn, cfg config.NET, newSession func(httpd.Conn) Session) error {
	d := &driver{
		conn: conn,
		cfg:  cfg,
		buff: make([]byte, cfg.ReadBufferSize),
	}

	return d.run(newSession(d))
}

type driver struct {
	conn     net.Conn
	cfg      config.NET
	buff     []byte
	pending  []byte
	eof      bool
	closing  bool
	aborting bool
}

func (d *driver) MSS() int {
	return d.cfg.MSS
}

func (d *driver) Send(b []byte) {
	d.pending = b
}

func (d *driver) Close() {
	d.closing = true
}

func (d *driver) Abort() {
	d.aborting = true
}

func (d *driver) run(session Session) error {
	session.Handle(httpd.Connected())

	for {
		switch {
		case d.aborting:
			return d.reset()
		case len(d.pending) > 0:
			n, err := d.write()
			if err != nil {
				return err
			}

			session.Handle(httpd.Acked(n))
			continue
		case d.closing:
			return d.conn.Close()
		}

		data, err := d.read()
		switch {
		case len(data) > 0:
			session.Handle(httpd.NewData(data))
		case err == nil:
			session.Handle(httpd.Poll())
		default:
			return err
		}
	}
}

func (d *driver) write() (int, error) {
	if err := d.conn.SetWriteDeadline(time.Now().Add(d.cfg.WriteTimeout)); err != nil {
		return 0, err
	}

	n, err := d.conn.Write(d.pending)
	d.pending = nil

	return n, err
}

// read returns either received data or nothing in case the poll interval has elapsed.
// A half-closed connection keeps being polled, as the response may still be sent.
func (d *driver) read() ([]byte, error) {
	if d.eof {
		time.Sleep(d.cfg.PollInterval)
		return nil, nil
	}

	if err := d.conn.SetReadDeadline(time.Now().Add(d.cfg.PollInterval)); err != nil {
		return nil, err
	}

	n, err := d.conn.Read(d.buff)
	switch {
	case n > 0:
		if err == io.EOF {
			d.eof = true
		}

		return d.buff[:n], nil
	case errors.Is(err, os.ErrDeadlineExceeded):
		return nil, nil
	case err == io.EOF:
		d.eof = true
		return nil, nil
	default:
		return nil, err
	}
}

// reset closes the connection with RST instead of FIN where possible.
func (d *driver) reset() error {
	if tcp, ok := d.conn.(*net.TCPConn); ok {
		_ = tcp.SetLinger(0)
	}

	return d.conn.Close()
}
