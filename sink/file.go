package sink

import (
	"os"
	"path/filepath"

	"github.com/dchest/uniuri"
	"github.com/indigo-web/streamform/status"
)

const filePrefix = "streamform-"

var _ Sink = new(File)

// File streams the payload into a uniquely named temporary file. The file is
// exclusively owned by the sink: finalize closes it, release deletes it.
type File struct {
	path      string
	file      *os.File
	size      int64
	finalized bool
	released  bool
}

// NewFile creates a file sink in dir. Empty dir means the system default
// temporary directory. The name is random and the file is opened with
// O_EXCL, so sinks never collide across parts or concurrent sessions.
func NewFile(dir string) (*File, error) {
	if len(dir) == 0 {
		dir = os.TempDir()
	}

	path := filepath.Join(dir, filePrefix+uniuri.New())
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return nil, status.SinkError("open", err)
	}

	return &File{
		path: path,
		file: file,
	}, nil
}

func (f *File) Append(data []byte) error {
	if f.released {
		return status.ErrSinkReleased
	}
	if f.finalized {
		return status.ErrSinkFinalized
	}

	n, err := f.file.Write(data)
	f.size += int64(n)
	if err != nil {
		return status.SinkError("write", err)
	}

	return nil
}

func (f *File) Finalize() error {
	if f.released {
		return status.ErrSinkReleased
	}
	if f.finalized {
		return status.ErrSinkFinalized
	}

	f.finalized = true
	if err := f.file.Close(); err != nil {
		return status.SinkError("close", err)
	}

	return nil
}

func (f *File) Release() error {
	if f.released {
		return nil
	}

	f.released = true
	if !f.finalized {
		// the part was abandoned mid-payload, the handle is still open
		_ = f.file.Close()
	}

	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return status.SinkError("remove", err)
	}

	return nil
}

func (f *File) Bytes() ([]byte, error) {
	if f.released {
		return nil, status.ErrSinkReleased
	}
	if !f.finalized {
		return nil, status.ErrSinkNotFinalized
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, status.SinkError("read", err)
	}

	return data, nil
}

func (f *File) Size() int64 {
	return f.size
}

// Path returns the location of the underlying file, letting a host move a
// finished upload out of the temporary directory instead of copying it.
func (f *File) Path() string {
	return f.path
}
