package streamform

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/indigo-web/streamform/internal/strutil"
	"github.com/indigo-web/streamform/kv"
	"github.com/indigo-web/streamform/status"
	"github.com/indigo-web/utils/uf"
)

type parserState uint8

const (
	// eSeekBoundary discards preamble bytes until the first boundary.
	eSeekBoundary parserState = iota + 1
	// eHeaders accumulates a part's header section until the blank line.
	eHeaders
	// ePayload routes bytes into the current part's sink, withholding only
	// the minimal look-ahead that may turn out to be the next boundary.
	ePayload
	// eDone is terminal; epilogue bytes after the final boundary are ignored.
	eDone
)

var headersTerminator = []byte("\r\n\r\n")

// RFC 2046 permits linear whitespace padding between the boundary delimiter
// and its line break. Tolerating it unboundedly would let a hostile body grow
// the carry-over, so anything longer is treated as payload.
const maxBoundaryPadding = 32

// advance consumes as much of data as can be unambiguously classified. Any
// trailing bytes that might be a partial boundary are stored as carry-over.
func (s *Streamer) advance(data []byte) error {
	for {
		switch s.state {
		case eSeekBoundary, ePayload:
			idx := bytes.Index(data, s.sep)
			if idx == -1 {
				keep := sepOverlap(data, s.sep)
				if err := s.route(data[:len(data)-keep]); err != nil {
					return err
				}

				s.setCarry(data[len(data)-keep:])
				return nil
			}

			if err := s.route(data[:idx]); err != nil {
				return err
			}

			rest := data[idx+len(s.sep):]
			pad := padding(rest)
			if pad > maxBoundaryPadding {
				// a lookalike: the separator bytes belong to the payload
				if err := s.route(data[idx : idx+len(s.sep)]); err != nil {
					return err
				}

				data = rest
				continue
			}

			if len(rest)-pad < 2 {
				// not enough bytes yet to tell a real boundary line from
				// payload that merely starts like one
				s.setCarry(data[idx:])
				return nil
			}

			switch {
			case rest[pad] == '\r' && rest[pad+1] == '\n':
				if err := s.finishPart(); err != nil {
					return err
				}

				s.beginHeaders()
				data = rest[pad+2:]
			case pad == 0 && rest[0] == '-' && rest[1] == '-':
				if err := s.finishPart(); err != nil {
					return err
				}

				// whatever follows the final boundary is the epilogue
				s.state = eDone
				return nil
			default:
				if err := s.route(data[idx : idx+len(s.sep)]); err != nil {
					return err
				}

				data = rest
			}
		case eHeaders:
			leftover, done, err := s.stashHeaders(data)
			if err != nil {
				return err
			}
			if !done {
				return nil
			}

			if err = s.openPart(); err != nil {
				return err
			}

			data = leftover
		case eDone:
			return nil
		default:
			panic(fmt.Sprintf("BUG: unexpected parser state: %v", s.state))
		}
	}
}

// route hands classified payload bytes over to the current part. Before the
// first boundary there is no part, and the bytes are preamble to discard.
func (s *Streamer) route(data []byte) error {
	if len(data) == 0 || s.current == nil {
		return nil
	}

	return s.current.append(data)
}

func (s *Streamer) setCarry(tail []byte) {
	s.carry = append(s.carry[:0], tail...)
}

func (s *Streamer) finishPart() error {
	if s.current == nil {
		return nil
	}

	err := s.current.finalize()
	s.current = nil

	return err
}

func (s *Streamer) beginHeaders() {
	s.state = eHeaders
	// the boundary line's CRLF is already consumed, so the terminator match
	// starts halfway through: a part without headers opens with the blank
	// line alone
	s.termProgress = 2
}

// stashHeaders consumes header bytes until the section terminator, tracked
// byte-wise so a terminator split across chunks is still recognized.
func (s *Streamer) stashHeaders(data []byte) (leftover []byte, done bool, err error) {
	for i, c := range data {
		switch {
		case c == headersTerminator[s.termProgress]:
			s.termProgress++
		case c == '\r':
			s.termProgress = 1
		default:
			s.termProgress = 0
		}

		if s.termProgress == len(headersTerminator) {
			if !s.headerBuff.Append(data[:i+1]) {
				return nil, false, status.ErrHeadersTooLarge
			}

			return data[i+1:], true, nil
		}
	}

	if !s.headerBuff.Append(data) {
		return nil, false, status.ErrHeadersTooLarge
	}

	return nil, false, nil
}

// openPart parses the accumulated header section, obtains a sink for the new
// part via the factory and switches to payload routing.
func (s *Streamer) openPart() error {
	headers, err := s.parseHeaderSection(s.headerBuff.Finish())
	if err != nil {
		return err
	}

	snk, err := s.factory(headers)
	if err != nil {
		return err
	}

	part := newPart(headers, snk)
	s.parts = append(s.parts, part)
	s.current = part
	s.state = ePayload

	return nil
}

func (s *Streamer) parseHeaderSection(section []byte) (*kv.Storage, error) {
	headers := kv.NewPrealloc(s.cfg.Headers.PairsPrealloc)

	// the section stays intact in the header buffer for the session's
	// lifetime, so views into it are safe to keep
	text := uf.B2S(section)
	for len(text) > 0 {
		var line string
		line, text, _ = strings.Cut(text, "\r\n")
		if len(line) == 0 {
			continue
		}

		colon := strings.IndexByte(line, ':')
		if colon < 1 {
			return nil, status.ErrMalformedHeader
		}

		headers.Add(line[:colon], strutil.LStripWS(line[colon+1:]))
	}

	return headers, nil
}

// sepOverlap returns the length of the longest data suffix that is a proper
// prefix of sep: the minimal look-ahead to withhold from the sink, as the
// separator may resume in the next chunk.
func sepOverlap(data, sep []byte) int {
	max := len(sep) - 1
	if len(data) < max {
		max = len(data)
	}

	for k := max; k > 0; k-- {
		if bytes.Equal(data[len(data)-k:], sep[:k]) {
			return k
		}
	}

	return 0
}

func padding(data []byte) int {
	for i := 0; i < len(data); i++ {
		if data[i] != ' ' && data[i] != '\t' {
			return i
		}
	}

	return len(data)
}
