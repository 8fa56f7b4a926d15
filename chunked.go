package streamform

import (
	"io"

	"github.com/indigo-web/chunkedbody"
)

// Chunked adapts a Streamer to a body delivered with chunked transfer
// encoding: wire chunks are decoded first, and only the payload reaches the
// parser. Progress accounting then reflects decoded body bytes, not wire
// bytes.
type Chunked struct {
	streamer *Streamer
	parser   *chunkedbody.Parser
}

func NewChunked(streamer *Streamer) *Chunked {
	return &Chunked{
		streamer: streamer,
		parser:   chunkedbody.NewParser(chunkedbody.DefaultSettings()),
	}
}

// Feed decodes the next portion of the chunked stream and forwards the
// payload. When the final zero-length chunk is reached, the underlying
// session is completed automatically and io.EOF is returned.
func (c *Chunked) Feed(data []byte) error {
	for {
		piece, extra, err := c.parser.Parse(data, false)
		switch err {
		case nil, io.EOF:
		default:
			return err
		}

		if ferr := c.streamer.Feed(piece); ferr != nil {
			return ferr
		}

		if err == io.EOF {
			if cerr := c.streamer.Complete(); cerr != nil {
				return cerr
			}

			return io.EOF
		}

		if len(extra) == 0 {
			return nil
		}

		data = extra
	}
}
