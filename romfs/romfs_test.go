package romfs

import (
	"slices"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func TestROM(t *testing.T) {
	t.Run("open", func(t *testing.T) {
		rom := New().Add("/index.html", []byte("hello"))
		data, found := rom.Open("/index.html")
		require.True(t, found)
		require.Equal(t, "hello", string(data))

		_, found = rom.Open("/missing.html")
		require.False(t, found)
	})

	t.Run("normalize names", func(t *testing.T) {
		rom := New().Add("style.css", []byte("body{}"))
		_, found := rom.Open("/style.css")
		require.True(t, found)
	})

	t.Run("hits", func(t *testing.T) {
		rom := New().Add("/a", []byte("a")).Add("/b", nil)
		for range 3 {
			_, _ = rom.Open("/a")
		}
		_, _ = rom.Open("/b")
		_, _ = rom.Open("/c")

		require.Equal(t, uint64(3), rom.Hits("/a"))
		require.Equal(t, uint64(1), rom.Hits("b"))
		require.Zero(t, rom.Hits("/c"))
		require.Equal(t, []Stat{
			{Name: "/a", Size: 1, Hits: 3},
			{Name: "/b", Size: 0, Hits: 1},
		}, rom.Stats())
	})

	t.Run("stats json", func(t *testing.T) {
		rom := New().Add("/a", []byte("abc"))
		_, _ = rom.Open("/a")
		data, err := rom.MarshalStats()
		require.NoError(t, err)
		require.JSONEq(t, `[{"name":"/a","size":3,"hits":1}]`, string(data))
	})

	t.Run("names are sorted", func(t *testing.T) {
		rom := New().Add("/c", nil).Add("/a", nil).Add("/b", nil)
		require.Equal(t, []string{"/a", "/b", "/c"}, slices.Collect(rom.Names()))
		require.Equal(t, 3, rom.Len())
	})
}

func TestTxtar(t *testing.T) {
	const archive = `uhttpd image
-- index.html --
<h1>Hello</h1>
-- /cgi/files --
t files
.
`

	t.Run("verbatim", func(t *testing.T) {
		rom := ParseTxtar([]byte(archive), nil)
		data, found := rom.Open("/index.html")
		require.True(t, found)
		require.Equal(t, "<h1>Hello</h1>\n", string(data))

		data, found = rom.Open("/cgi/files")
		require.True(t, found)
		require.Equal(t, "t files\n.\n", string(data))
	})

	t.Run("with headers", func(t *testing.T) {
		rom := ParseTxtar([]byte(archive), DefaultHeaders())
		data, _ := rom.Open("/index.html")
		require.Equal(t,
			"HTTP/1.0 200 OK\r\nServer: uhttpd\r\nContent-type: text/html\r\n\r\n<h1>Hello</h1>\n",
			string(data),
		)

		data, _ = rom.Open("/cgi/files")
		require.Equal(t, "t files\n.\n", string(data))
	})
}

func TestFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"index.html":     {Data: []byte("index")},
		"404.html":       {Data: []byte("oops")},
		"img/logo.png":   {Data: []byte{0x89, 'P', 'N', 'G'}},
		"cgi/stats":      {Data: []byte("c a\n.")},
		"empty/.keep":    {Data: nil},
		"notes/todo.txt": {Data: []byte("todo")},
		"footer.plain":   {Data: []byte("</html>")},
	}

	rom, err := FromFS(fsys, DefaultHeaders())
	require.NoError(t, err)
	require.Equal(t, 7, rom.Len())

	data, _ := rom.Open("/footer.plain")
	require.Equal(t, "</html>", string(data))

	data, found := rom.Open("/404.html")
	require.True(t, found)
	require.Equal(t,
		"HTTP/1.0 404 File not found\r\nServer: uhttpd\r\nContent-type: text/html\r\n\r\noops",
		string(data),
	)

	data, _ = rom.Open("/img/logo.png")
	require.Contains(t, string(data), "Content-type: image/png\r\n")

	data, _ = rom.Open("/notes/todo.txt")
	require.Contains(t, string(data), "Content-type: text/plain\r\n")

	data, _ = rom.Open("/cgi/stats")
	require.Equal(t, "c a\n.", string(data))
}

func TestTypeByName(t *testing.T) {
	for name, mime := range map[string]MIME{
		"/index.html":       HTML,
		"/cgi/files.shtml": HTML,
		"/img/bg.png":       PNG,
		"/style.css":        CSS,
		"/README":           Plain,
		"/archive.tar":      Plain,
	} {
		require.Equal(t, mime, TypeByName(name), name)
	}
}
