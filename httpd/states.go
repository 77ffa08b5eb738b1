package httpd

type State uint8

const (
	AwaitingRequest State = iota
	SendingFile
	SendingText
	RunningScript
	Finished
)

func (s State) String() string {
	switch s {
	case AwaitingRequest:
		return "awaiting request"
	case SendingFile:
		return "sending file"
	case SendingText:
		return "sending text"
	case RunningScript:
		return "running script"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// sending reports whether the flow currently holds a resource.
func (s State) sending() bool {
	return s == SendingFile || s == SendingText
}
