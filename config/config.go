package config

type (
	HeadersSpace struct {
		Default, Maximal int
	}

	Headers struct {
		// Space limits the amount of memory occupied by header sections over
		// the whole session, as parsed header fields keep referencing it.
		// Default value is the initially allocated space, Maximal is the hard
		// cap after which the body is rejected as malformed.
		Space HeadersSpace
		// PairsPrealloc is the number of preallocated seats for a part's
		// header fields.
		PairsPrealloc int
	}

	Body struct {
		// PartsPrealloc is the number of preallocated seats for parts in a
		// session. HTML forms rarely carry more than a dozen fields.
		PartsPrealloc int
	}

	Sink struct {
		// Dir is the directory file sinks are created in. Empty means the
		// system default temporary directory.
		Dir string
		// BufferPrealloc is the initial capacity of an in-memory buffer sink.
		BufferPrealloc int
	}
)

// Config holds settings used across a parsing session, mainly restrictions
// and pre-allocations. There is deliberately no process-wide state: every
// session receives its configuration explicitly.
type Config struct {
	Headers Headers
	Body    Body
	Sink    Sink
}

// Default returns the default config. Initially well-balanced, however
// maximal defaults are pretty permitting.
func Default() *Config {
	return &Config{
		Headers: Headers{
			Space: HeadersSpace{
				Default: 1 * 1024, // 1kb covers any browser-generated part header section
				Maximal: 16 * 1024,
			},
			PairsPrealloc: 4, // Content-Disposition and Content-Type, with room to spare
		},
		Body: Body{
			PartsPrealloc: 8,
		},
		Sink: Sink{
			Dir:            "", // os.TempDir
			BufferPrealloc: 1024,
		},
	}
}
