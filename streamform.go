// Package streamform incrementally parses multipart/form-data bodies fed to
// it in arbitrary-sized chunks, without buffering the whole body in memory.
// Part payloads are routed into pluggable sinks as boundaries are recognized,
// even when a boundary, a header line or payload data is split across chunk
// deliveries at any byte offset.
//
// A session is driven by exactly one goroutine: the host transport delivers
// chunks strictly in arrival order via Feed, signals end of body via
// Complete, and afterwards reads the parts back. Whatever the outcome, the
// host must call ReleaseParts on every exit path, otherwise temporary files
// of file sinks are leaked.
package streamform

import (
	"fmt"
	"strings"

	"github.com/indigo-web/streamform/config"
	"github.com/indigo-web/streamform/internal/buffer"
	"github.com/indigo-web/streamform/kv"
	"github.com/indigo-web/streamform/sink"
	"github.com/indigo-web/streamform/status"
)

// SinkFactory decides where a part's payload goes, based on its already
// parsed headers. It is invoked once per part, before any payload is routed.
type SinkFactory func(headers *kv.Storage) (sink.Sink, error)

type Streamer struct {
	cfg          *config.Config
	sep          []byte
	total        int64
	received     int64
	parts        []*Part
	current      *Part
	carry        []byte
	scratch      []byte
	headerBuff   buffer.Buffer
	termProgress int
	state        parserState
	completed    bool
	released     bool
	onProgress   func(received, total int64)
	factory      SinkFactory
}

// New creates a parsing session for a single request body. The boundary token
// comes from the request's Content-Type (see ParseBoundary), total is the
// declared body size, zero if unknown. Nil cfg means config.Default().
//
// By default every part streams into a temporary-file sink created in
// cfg.Sink.Dir; override via CreateSinkWith.
func New(cfg *config.Config, boundary string, total int64) (*Streamer, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	if len(boundary) == 0 {
		return nil, status.ErrMissingBoundary
	}
	if len(boundary) > maxBoundaryLength {
		return nil, status.ErrBoundaryTooLong
	}

	s := &Streamer{
		cfg:        cfg,
		sep:        []byte("\r\n--" + boundary),
		total:      total,
		parts:      make([]*Part, 0, cfg.Body.PartsPrealloc),
		headerBuff: buffer.New(cfg.Headers.Space.Default, cfg.Headers.Space.Maximal),
		state:      eSeekBoundary,
	}
	s.factory = func(*kv.Storage) (sink.Sink, error) {
		return sink.NewFile(cfg.Sink.Dir)
	}
	// the first boundary of a body isn't preceded by a line break; seeding the
	// carry-over with a virtual CRLF lets it match the same separator as every
	// following one
	s.carry = append(s.carry, '\r', '\n')

	return s, nil
}

// OnProgress sets a callback invoked with (received, total) on every fed
// chunk, before any of its bytes are routed, so reported progress reflects
// "received" rather than "fully parsed".
func (s *Streamer) OnProgress(cb func(received, total int64)) *Streamer {
	s.onProgress = cb
	return s
}

// CreateSinkWith replaces the default temporary-file sink factory. Typical
// overrides pick an in-memory sink for small non-file fields, or pipe the
// payload elsewhere entirely.
func (s *Streamer) CreateSinkWith(factory SinkFactory) *Streamer {
	s.factory = factory
	return s
}

// Feed consumes the next body chunk. As much of the carry-over and the chunk
// as can be unambiguously classified is routed; a trailing partial boundary
// or header line is retained for the next call. An empty chunk is a no-op.
func (s *Streamer) Feed(chunk []byte) error {
	if s.completed {
		return status.ErrFedAfterComplete
	}
	if len(chunk) == 0 {
		return nil
	}

	s.received += int64(len(chunk))
	if s.onProgress != nil {
		s.onProgress(s.received, s.total)
	}

	data := chunk
	if len(s.carry) > 0 {
		s.scratch = append(s.scratch[:0], s.carry...)
		s.scratch = append(s.scratch, chunk...)
		s.carry = s.carry[:0]
		data = s.scratch
	}

	return s.advance(data)
}

// Complete signals end of body. Must be called exactly once, after the last
// Feed. The currently open part, if any, is finalized either way; an error
// means the body is malformed and already-parsed parts may only be used for
// best-effort diagnostics.
func (s *Streamer) Complete() error {
	if s.completed {
		return status.ErrRepeatedComplete
	}
	s.completed = true

	switch s.state {
	case eDone:
		return nil
	case eSeekBoundary:
		return status.ErrMissingFinalBoundary
	case eHeaders:
		return status.ErrUnterminatedHeaders
	default:
		if err := s.finishPart(); err != nil {
			return err
		}

		return status.ErrMissingFinalBoundary
	}
}

// Parts returns the parts in arrival order. Only meaningful after Complete
// has returned: until then the last part may still be receiving payload.
func (s *Streamer) Parts() []*Part {
	return s.parts
}

// ReleaseParts releases every part's sink, deleting temporary files. The host
// must call it exactly once on every exit path, error paths included; repeated
// calls are no-ops. On failures the first error is returned, remaining parts
// are still released.
func (s *Streamer) ReleaseParts() error {
	if s.released {
		return nil
	}
	s.released = true

	var first error
	for _, part := range s.parts {
		if err := part.release(); err != nil && first == nil {
			first = err
		}
	}

	return first
}

// Received returns the number of body bytes fed so far.
func (s *Streamer) Received() int64 {
	return s.received
}

// Total returns the declared body size, zero if unknown.
func (s *Streamer) Total() int64 {
	return s.total
}

// Examine renders a human-readable listing of the parsed parts, intended for
// debugging and diagnostics.
func (s *Streamer) Examine() string {
	var b strings.Builder

	for i, part := range s.parts {
		fmt.Fprintf(
			&b, "part #%d name=%q filename=%q file=%t size=%d\n",
			i+1, part.Name(), part.Filename(), part.IsFile(), part.Size(),
		)

		for key, value := range part.Headers().Pairs() {
			fmt.Fprintf(&b, "\t%s: %s\n", key, value)
		}
	}

	return b.String()
}
