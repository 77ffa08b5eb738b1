package romfs

import (
	"io/fs"
)

// FromFS loads every regular file of the file system into memory. Paths are relative to
// the fsys root, so the file "index.html" becomes "/index.html".
func FromFS(fsys fs.FS, headers *Headers) (*ROM, error) {
	rom := New()

	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.Type().IsRegular() {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err
		}

		name := Normalize(path)
		rom.Add(name, headers.apply(name, data))

		return nil
	})

	return rom, err
}
