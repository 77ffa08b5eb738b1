// Package romfs implements the read-only file store the web server serves its pages and
// scripts from. Contents are never copied on lookup: every Open returns a slice of the
// image itself, which must therefore be treated as read-only.
package romfs

import (
	"iter"
	"sort"
	"strings"
	"sync/atomic"

	jsoniter "github.com/json-iterator/go"
)

// Store is a name to bytes lookup. Returned slices stay valid for the process lifetime and
// must never be modified.
type Store interface {
	Open(name string) ([]byte, bool)
}

var _ Store = new(ROM)

type file struct {
	data []byte
	hits atomic.Uint64
}

// ROM is an in-memory file image. Files must be added before the image is shared between
// connections, Open is safe for concurrent use afterwards.
type ROM struct {
	files map[string]*file
}

func New() *ROM {
	return &ROM{
		files: make(map[string]*file),
	}
}

// Add puts a new file into the image, replacing the previous one with the same name, if any.
// Names are normalized to always begin with a slash.
func (r *ROM) Add(name string, data []byte) *ROM {
	r.files[Normalize(name)] = &file{data: data}
	return r
}

// Open looks the file up and counts the hit.
func (r *ROM) Open(name string) ([]byte, bool) {
	f, found := r.files[name]
	if !found {
		return nil, false
	}

	f.hits.Add(1)
	return f.data, true
}

// Hits returns how many times the file was successfully opened.
func (r *ROM) Hits(name string) uint64 {
	f, found := r.files[Normalize(name)]
	if !found {
		return 0
	}

	return f.hits.Load()
}

// Len returns the number of files in the image.
func (r *ROM) Len() int {
	return len(r.files)
}

// Names iterates over the file names in lexicographical order.
func (r *ROM) Names() iter.Seq[string] {
	names := make([]string, 0, len(r.files))
	for name := range r.files {
		names = append(names, name)
	}

	sort.Strings(names)

	return func(yield func(string) bool) {
		for _, name := range names {
			if !yield(name) {
				return
			}
		}
	}
}

type Stat struct {
	Name string `json:"name"`
	Size int    `json:"size"`
	Hits uint64 `json:"hits"`
}

// Stats returns a snapshot of the open counters.
func (r *ROM) Stats() []Stat {
	stats := make([]Stat, 0, len(r.files))
	for name := range r.Names() {
		f := r.files[name]
		stats = append(stats, Stat{
			Name: name,
			Size: len(f.data),
			Hits: f.hits.Load(),
		})
	}

	return stats
}

// MarshalStats renders Stats as a JSON array.
func (r *ROM) MarshalStats() ([]byte, error) {
	return jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(r.Stats())
}

// Normalize makes sure the name begins with a slash, as request paths always do.
func Normalize(name string) string {
	if strings.HasPrefix(name, "/") {
		return name
	}

	return "/" + name
}
