package config

import (
	"time"
)

type (
	HTTPD struct {
		// IndexFile is served for requests to the root path "/".
		IndexFile string `json:"index_file"`
		// NotFoundFile is served instead of any file missing in the store.
		NotFoundFile string `json:"not_found_file"`
		// ScriptPrefix marks paths whose files are interpreted as scripts instead of being
		// sent verbatim. The files are still looked up by their full path.
		ScriptPrefix string `json:"script_prefix"`
		// MaxRequestLine is how far the request line is scanned for the end of the path.
		// Requests whose path doesn't end within this limit are rejected.
		MaxRequestLine int `json:"max_request_line"`
		// IdlePolls is the number of consecutive poll events without any data or ack
		// a connection survives. The next one aborts it.
		IdlePolls int `json:"idle_polls"`
	}

	NET struct {
		// ReadBufferSize is a size of buffer in bytes which will be used to read from
		// socket. Only the first read of a connection is ever interpreted.
		ReadBufferSize int `json:"read_buffer_size"`
		// MSS bounds a single send.
		MSS int `json:"mss"`
		// PollInterval is how long a connection may stay silent before a poll event
		// is generated for it.
		PollInterval time.Duration `json:"poll_interval"`
		// WriteTimeout limits how long a single send may be stuck in the socket, e.g. when
		// the peer stops reading.
		WriteTimeout time.Duration `json:"write_timeout"`
		// AcceptLoopInterruptPeriod controls how often will the Accept() call be interrupted
		// in order to check whether it's time to stop.
		AcceptLoopInterruptPeriod time.Duration `json:"accept_loop_interrupt_period"`
	}
)

// Config holds settings used across the server.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to initialize the
// config manually, because zero limits make every connection fail right away.
type Config struct {
	HTTPD HTTPD `json:"httpd"`
	NET   NET   `json:"net"`
}

// Default returns default config. Limits follow the classic uIP web server.
func Default() *Config {
	return &Config{
		HTTPD: HTTPD{
			IndexFile:      "/index.html",
			NotFoundFile:   "/404.html",
			ScriptPrefix:   "/cgi/",
			MaxRequestLine: 40,
			IdlePolls:      10,
		},
		NET: NET{
			ReadBufferSize: 1024,
			// ethernet MTU minus IPv4 and TCP headers
			MSS:                       1460,
			PollInterval:              500 * time.Millisecond,
			WriteTimeout:              30 * time.Second,
			AcceptLoopInterruptPeriod: 5 * time.Second,
		},
	}
}
