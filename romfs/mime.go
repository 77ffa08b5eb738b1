package romfs

import "path"

type MIME = string

const (
	Plain      MIME = "text/plain"
	HTML       MIME = "text/html"
	CSS        MIME = "text/css"
	JavaScript MIME = "text/javascript"
	JSON       MIME = "application/json"
	XML        MIME = "text/xml"
	GIF        MIME = "image/gif"
	JPEG       MIME = "image/jpeg"
	PNG        MIME = "image/png"
	SVG        MIME = "image/svg+xml"
	ICO        MIME = "image/vnd.microsoft.icon"
	Java       MIME = "application/octet-stream"
	RealAudio  MIME = "audio/x-pn-realaudio"
)

var extension = map[string]MIME{
	".htm":   HTML,
	".html":  HTML,
	".shtml": HTML,
	".css":   CSS,
	".js":    JavaScript,
	".json":  JSON,
	".xml":   XML,
	".gif":   GIF,
	".jpeg":  JPEG,
	".jpg":   JPEG,
	".png":   PNG,
	".svg":   SVG,
	".ico":   ICO,
	".class": Java,
	".ram":   RealAudio,
}

// TypeByName guesses the content type by the file extension. Unknown extensions are served
// as plain text.
func TypeByName(name string) MIME {
	if mime, found := extension[path.Ext(name)]; found {
		return mime
	}

	return Plain
}
