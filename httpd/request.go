package httpd

import (
	"bytes"
	"errors"
	"strings"

	"github.com/indigo-web/uhttpd/config"
	"github.com/indigo-web/utils/uf"
)

var (
	ErrNotGET             = errors.New("httpd: request method is not GET")
	ErrRequestLineTooLong = errors.New("httpd: path doesn't end within the request line limit")
)

var methodGET = []byte("GET ")

// Request is the only thing extracted from the request line.
type Request struct {
	// Name is the store name of the requested file. It references the request bytes
	// directly, so it must not outlive the event that carried them.
	Name string
	// Script reports whether the file is a script rather than a plain file.
	Script bool
}

// RequestParser extracts the path from the very first packet of a connection. Anything
// past the path (protocol, headers, body) is ignored.
type RequestParser struct {
	limit        int
	index        string
	scriptPrefix string
}

func NewRequestParser(cfg config.HTTPD) RequestParser {
	return RequestParser{
		limit:        cfg.MaxRequestLine,
		index:        cfg.IndexFile,
		scriptPrefix: cfg.ScriptPrefix,
	}
}

func (r RequestParser) Parse(data []byte) (Request, error) {
	path, err := ParsePath(data, r.limit)
	if err != nil {
		return Request{}, err
	}

	name := uf.B2S(path)

	request := Request{
		Name:   name,
		Script: len(r.scriptPrefix) > 0 && strings.HasPrefix(name, r.scriptPrefix),
	}

	if name == "/" {
		request.Name = r.index
	}

	return request, nil
}

// ParsePath returns the path of a GET request line. The path must be terminated by a space,
// CR or LF within the first limit bytes of data.
func ParsePath(data []byte, limit int) ([]byte, error) {
	if !bytes.HasPrefix(data, methodGET) {
		return nil, ErrNotGET
	}

	end := min(len(data), limit)

	for i := len(methodGET); i < end; i++ {
		switch data[i] {
		case ' ', '\r', '\n':
			return data[len(methodGET):i], nil
		}
	}

	return nil, ErrRequestLineTooLong
}
