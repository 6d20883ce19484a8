package dataset

import (
	"io"
	"os"
	"path/filepath"
)

// Source opens named dataset files. Open must return an error satisfying
// errors.Is(err, fs.ErrNotExist) when the named file does not exist; the
// loader uses that to skip optional tables.
type Source interface {
	Open(name string) (io.ReadCloser, error)
}

// DirSource serves dataset files from a local directory.
type DirSource string

func (d DirSource) Open(name string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(string(d), name))
}
