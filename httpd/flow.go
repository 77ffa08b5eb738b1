package httpd

// flow advances through the resource in flight strictly as the peer acknowledges it. At
// most one chunk is outstanding at a time, so the transport never buffers more than a
// single segment per connection.
type flow struct {
	resource  []byte
	cursor    int
	remaining int
	inflight  int
}

func (f *flow) start(resource []byte) {
	f.resource = resource
	f.cursor = 0
	f.remaining = len(resource)
	f.inflight = 0
}

func (f *flow) reset() {
	f.start(nil)
}

func (f *flow) ack(n int) {
	if n <= 0 {
		return
	}

	n = min(n, f.remaining)
	f.remaining -= n
	f.cursor += n
	f.inflight = max(f.inflight-n, 0)
}

func (f *flow) done() bool {
	return f.remaining == 0
}

// next returns the chunk to be sent, if it's time to send anything at all.
func (f *flow) next(mss int) []byte {
	if f.inflight > 0 || f.remaining == 0 {
		return nil
	}

	size := f.remaining
	if mss > 0 {
		size = min(size, mss)
	}

	f.inflight = size
	return f.resource[f.cursor : f.cursor+size]
}
