package romfs

import (
	"os"

	"golang.org/x/tools/txtar"
)

// ParseTxtar builds an image out of a txtar archive, where every archive member becomes a
// file. The archive comment is ignored. Pass nil headers to store members verbatim.
func ParseTxtar(data []byte, headers *Headers) *ROM {
	archive := txtar.Parse(data)
	rom := New()

	for _, f := range archive.Files {
		name := Normalize(f.Name)
		rom.Add(name, headers.apply(name, f.Data))
	}

	return rom
}

// LoadTxtar reads and parses the archive by its path on the disk.
func LoadTxtar(path string, headers *Headers) (*ROM, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return ParseTxtar(data, headers), nil
}
