package romfs

import (
	"path"
	"strings"
)

// PlainExt marks fragments meant to be included into other responses, e.g. page footers.
// Those never get headers.
const PlainExt = ".plain"

// Headers describes the response headers prepended to every file when an image is built
// from plain files. The server itself never generates any headers, so files without them
// reach the client as a headless HTTP/0.9-like response.
type Headers struct {
	// Server is the value of the Server header.
	Server string
	// NotFound is the name of the file served with 404 status code instead of 200.
	NotFound string
	// ScriptPrefix marks files holding scripts. They are left intact, as a header line
	// would otherwise be interpreted as a script command.
	ScriptPrefix string
}

// DefaultHeaders match the defaults the server is configured with.
func DefaultHeaders() *Headers {
	return &Headers{
		Server:       "uhttpd",
		NotFound:     "/404.html",
		ScriptPrefix: "/cgi/",
	}
}

func (h *Headers) render(name string) []byte {
	var b strings.Builder

	if name == h.NotFound {
		b.WriteString("HTTP/1.0 404 File not found\r\n")
	} else {
		b.WriteString("HTTP/1.0 200 OK\r\n")
	}

	b.WriteString("Server: ")
	b.WriteString(h.Server)
	b.WriteString("\r\nContent-type: ")
	b.WriteString(TypeByName(name))
	b.WriteString("\r\n\r\n")

	return []byte(b.String())
}

func (h *Headers) apply(name string, data []byte) []byte {
	switch {
	case h == nil,
		path.Ext(name) == PlainExt,
		len(h.ScriptPrefix) > 0 && strings.HasPrefix(name, h.ScriptPrefix):
		return data
	}

	return append(h.render(name), data...)
}
