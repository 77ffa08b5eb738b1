package cgi

// Once calls fn and immediately lets the script proceed.
func Once(fn func()) Func {
	return func(bool) bool {
		fn()
		return true
	}
}

// Poll holds the script on the call line until ready reports true. The function is
// polled on every event the connection receives.
func Poll(ready func() bool) Func {
	return func(bool) bool {
		return ready()
	}
}
