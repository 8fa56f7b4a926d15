package sink

import (
	"github.com/indigo-web/streamform/status"
)

var _ Sink = new(Buffer)

// Buffer accumulates the payload in memory. Growth is unbounded, so the host
// is responsible for not routing arbitrarily large parts into it.
type Buffer struct {
	data      []byte
	finalized bool
	released  bool
}

func NewBuffer(prealloc int) *Buffer {
	return &Buffer{
		data: make([]byte, 0, prealloc),
	}
}

func (b *Buffer) Append(data []byte) error {
	if b.released {
		return status.ErrSinkReleased
	}
	if b.finalized {
		return status.ErrSinkFinalized
	}

	b.data = append(b.data, data...)
	return nil
}

func (b *Buffer) Finalize() error {
	if b.released {
		return status.ErrSinkReleased
	}
	if b.finalized {
		return status.ErrSinkFinalized
	}

	b.finalized = true
	return nil
}

func (b *Buffer) Release() error {
	b.released = true
	b.data = nil
	return nil
}

func (b *Buffer) Bytes() ([]byte, error) {
	if b.released {
		return nil, status.ErrSinkReleased
	}
	if !b.finalized {
		return nil, status.ErrSinkNotFinalized
	}

	return b.data, nil
}

func (b *Buffer) Size() int64 {
	return int64(len(b.data))
}
