package httpd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/indigo-web/uhttpd/cgi"
	"github.com/indigo-web/uhttpd/script"
	"github.com/indigo-web/utils/uf"
)

var (
	ErrIdle            = errors.New("httpd: connection idle for too long")
	ErrIncludeNotFound = errors.New("httpd: included file not found")
	ErrNoFunc          = errors.New("httpd: no function is bound to the letter")
)

// Session is the state of a single connection. It must be driven by a single goroutine.
type Session struct {
	srv   *Server
	conn  Conn
	log   *slog.Logger
	state State
	flow  flow
	polls int

	// scripted is set while the response is produced by a script, in which case line
	// points at the line being executed.
	scripted bool
	script   script.Script
	line     int
	// call is the pending function while in RunningScript.
	call cgi.Func
}

func (s *Session) State() State {
	return s.state
}

func (s *Session) Finished() bool {
	return s.state == Finished
}

// Progress returns the cursor into the resource in flight and the number of its bytes yet
// to be acknowledged.
func (s *Session) Progress() (cursor, remaining int) {
	return s.flow.cursor, s.flow.remaining
}

// Handle processes a single event to the completion. Events arriving after the session
// has finished are ignored.
func (s *Session) Handle(ev Event) {
	switch ev.Kind {
	case EventConnected:
		s.reset()
		return
	case EventPoll:
		if s.state == Finished {
			return
		}

		s.polls++
		if s.polls > s.srv.cfg.IdlePolls {
			s.abort(ErrIdle)
			return
		}

		if s.state == RunningScript {
			s.resumeCall(false)
		}
	case EventNewData:
		if s.state == Finished {
			return
		}

		s.polls = 0

		switch s.state {
		case AwaitingRequest:
			s.onRequest(ev.Data)
		case RunningScript:
			s.resumeCall(false)
		}
	case EventAcked:
		if s.state == Finished {
			return
		}

		s.polls = 0

		if s.state == RunningScript {
			s.resumeCall(true)
		} else if s.state.sending() {
			s.flow.ack(ev.Acked)
			if s.flow.done() {
				s.complete()
			}
		}
	default:
		return
	}

	s.transmit()
}

func (s *Session) reset() {
	s.state = AwaitingRequest
	s.polls = 0
	s.flow.reset()
	s.scripted = false
	s.script = script.Script{}
	s.line = 0
	s.call = nil
}

func (s *Session) onRequest(data []byte) {
	request, err := s.srv.parser.Parse(data)
	if err != nil {
		s.abort(err)
		return
	}

	s.log.Debug("request", "file", request.Name, "script", request.Script)
	resource := s.srv.open(request.Name)

	if request.Script {
		s.scripted = true
		s.script = script.Parse(resource)
		s.line = 0
		s.interpret()
		return
	}

	s.serve(SendingFile, resource)
}

// serve puts the resource in flight. Empty resources complete right away, without being sent.
func (s *Session) serve(state State, resource []byte) {
	s.state = state
	s.flow.start(resource)

	if s.flow.done() {
		s.complete()
	}
}

// complete is called as soon as the whole resource in flight is acknowledged.
func (s *Session) complete() {
	if !s.scripted {
		s.close()
		return
	}

	s.line++
	s.interpret()
}

// interpret executes script lines until one of them produces something to wait for:
// data in flight, a pending call or the end of the connection.
func (s *Session) interpret() {
	for {
		line := s.script.Line(s.line)

		switch line.Kind {
		case script.Comment:
			s.line++
			continue
		case script.Text:
			s.state = SendingText
			s.flow.start(line.Arg)
		case script.Include:
			data, found := s.srv.store.Open(uf.B2S(line.Arg))
			if !found {
				s.abort(fmt.Errorf("%w: %s", ErrIncludeNotFound, line.Arg))
				return
			}

			s.state = SendingFile
			s.flow.start(data)
		case script.Call:
			if !s.beginCall(line.Letter()) {
				return
			}

			s.line++
			continue
		case script.End:
			s.close()
			return
		default:
			s.abort(fmt.Errorf("line %d: %w", s.line+1, line.Err))
			return
		}

		if !s.flow.done() {
			return
		}

		s.line++
	}
}

// beginCall is the first invocation of a function, made as soon as its line is reached.
// Reports whether the script may proceed right away.
func (s *Session) beginCall(letter byte) bool {
	fn, found := s.srv.cgi.Lookup(letter)
	if !found {
		s.abort(fmt.Errorf("%w: %q", ErrNoFunc, letter))
		return false
	}

	s.state = RunningScript
	s.flow.reset()
	s.call = fn

	if !fn(false) {
		return false
	}

	s.call = nil
	return true
}

// resumeCall repeats the pending call on a later event.
func (s *Session) resumeCall(acked bool) {
	if !s.call(acked) {
		return
	}

	s.call = nil
	s.line++
	s.interpret()
}

func (s *Session) transmit() {
	if !s.state.sending() {
		return
	}

	if chunk := s.flow.next(s.conn.MSS()); chunk != nil {
		s.conn.Send(chunk)
	}
}

func (s *Session) close() {
	s.state = Finished
	s.flow.reset()
	s.conn.Close()
}

func (s *Session) abort(reason error) {
	s.log.Debug("aborting connection", "reason", reason)
	s.state = Finished
	s.flow.reset()
	s.conn.Abort()
}
