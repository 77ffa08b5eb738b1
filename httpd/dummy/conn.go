// Package dummy provides an in-memory transport recording everything a session does.
package dummy

// Conn acts like a transport with an ideal peer: bytes are considered delivered as soon
// as they're acknowledged via Ack.
type Conn struct {
	mss int
	// Sends holds every chunk passed to Send in order.
	Sends [][]byte
	// Delivered is the acknowledged part of the stream.
	Delivered       []byte
	Closed, Aborted int
	unacked         []byte
}

func NewConn(mss int) *Conn {
	return &Conn{mss: mss}
}

func (c *Conn) MSS() int {
	return c.mss
}

func (c *Conn) Send(b []byte) {
	c.Sends = append(c.Sends, b)
	c.unacked = append(c.unacked, b...)
}

func (c *Conn) Close() {
	c.Closed++
}

func (c *Conn) Abort() {
	c.Aborted++
}

// Outstanding returns the number of sent, but not yet acknowledged bytes.
func (c *Conn) Outstanding() int {
	return len(c.unacked)
}

// Ack marks the first n outstanding bytes as delivered and returns how many of them
// actually were.
func (c *Conn) Ack(n int) int {
	n = min(n, len(c.unacked))
	c.Delivered = append(c.Delivered, c.unacked[:n]...)
	c.unacked = c.unacked[n:]

	return n
}

// Terminated reports whether either Close or Abort was called.
func (c *Conn) Terminated() bool {
	return c.Closed+c.Aborted > 0
}
