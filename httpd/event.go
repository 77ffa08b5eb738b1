package httpd

// EventKind tells why the session is being invoked. Exactly one kind is delivered per
// invocation.
type EventKind uint8

const (
	// EventConnected is delivered once, when a remote host has connected.
	EventConnected EventKind = iota + 1
	// EventPoll is delivered periodically while the connection is idle.
	EventPoll
	// EventNewData carries bytes received from the remote host.
	EventNewData
	// EventAcked reports that the remote host has acknowledged previously sent bytes.
	EventAcked
)

func (e EventKind) String() string {
	switch e {
	case EventConnected:
		return "connected"
	case EventPoll:
		return "poll"
	case EventNewData:
		return "new-data"
	case EventAcked:
		return "acked"
	default:
		return "unknown"
	}
}

type Event struct {
	Kind EventKind
	// Data is valid for EventNewData only and only until Handle returns.
	Data []byte
	// Acked is the number of acknowledged bytes, valid for EventAcked only.
	Acked int
}

func Connected() Event {
	return Event{Kind: EventConnected}
}

func Poll() Event {
	return Event{Kind: EventPoll}
}

func NewData(data []byte) Event {
	return Event{Kind: EventNewData, Data: data}
}

func Acked(n int) Event {
	return Event{Kind: EventAcked, Acked: n}
}

// Conn is the transport side of a single connection. All the methods are non-blocking
// hand-offs: Send only schedules the bytes, which must stay untouched until they're
// acknowledged. Close and Abort are terminal and are always the last call a session
// makes during the invocation.
type Conn interface {
	// MSS is the upper bound of a single Send.
	MSS() int
	Send([]byte)
	// Close gracefully closes the connection once everything sent is delivered.
	Close()
	// Abort resets the connection immediately.
	Abort()
}
