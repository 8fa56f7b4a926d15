// Package sink provides pluggable payload storage for form parts. A sink
// receives a part's payload as an ordered sequence of byte appends, is
// finalized exactly once when the part ends, and released exactly once when
// the host is done with the part. Every sink is exclusively owned by its
// part; no locking is needed.
package sink

type Sink interface {
	// Append consumes the next portion of the part's payload. Appending to a
	// finalized or released sink is a usage error.
	Append(data []byte) error
	// Finalize flushes and closes the sink. No further writes are accepted,
	// and the accumulated content becomes readable.
	Finalize() error
	// Release frees the underlying resource. Releasing twice is a no-op.
	Release() error
	// Bytes returns the accumulated content. The sink must be finalized first.
	Bytes() ([]byte, error)
	// Size returns the number of payload bytes consumed so far.
	Size() int64
}
