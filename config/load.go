package config

import (
	"fmt"
	"io"
	"os"
	"time"
	"unsafe"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.Config{DisallowUnknownFields: true}.Froze()

func init() {
	// durations are accepted both as strings ("500ms") and as plain nanoseconds
	jsoniter.RegisterTypeDecoderFunc("time.Duration", func(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
		switch iter.WhatIsNext() {
		case jsoniter.StringValue:
			d, err := time.ParseDuration(iter.ReadString())
			if err != nil {
				iter.ReportError("time.Duration", err.Error())
				return
			}

			*(*time.Duration)(ptr) = d
		case jsoniter.NumberValue:
			*(*time.Duration)(ptr) = time.Duration(iter.ReadInt64())
		default:
			iter.ReportError("time.Duration", "must be either a string or a number")
		}
	})
}

// Load overlays the JSON document on top of the defaults. Fields missing in the document
// keep their default values.
func Load(r io.Reader) (*Config, error) {
	cfg := Default()
	if err := json.NewDecoder(r).Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, cfg.Validate()
}

// LoadFile is a shorthand for Load reading the file by its path.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	return Load(f)
}

// Validate reports limits the server can't work with.
func (c *Config) Validate() error {
	switch {
	case c.HTTPD.MaxRequestLine < len("GET /"):
		return fmt.Errorf("config: max request line is too short: %d", c.HTTPD.MaxRequestLine)
	case c.HTTPD.IdlePolls < 0:
		return fmt.Errorf("config: negative idle polls: %d", c.HTTPD.IdlePolls)
	case c.NET.MSS <= 0:
		return fmt.Errorf("config: non-positive mss: %d", c.NET.MSS)
	case c.NET.ReadBufferSize <= 0:
		return fmt.Errorf("config: non-positive read buffer size: %d", c.NET.ReadBufferSize)
	case c.NET.PollInterval <= 0:
		return fmt.Errorf("config: non-positive poll interval: %s", c.NET.PollInterval)
	case c.NET.WriteTimeout <= 0:
		return fmt.Errorf("config: non-positive write timeout: %s", c.NET.WriteTimeout)
	}

	return nil
}
