package streamform

import (
	"github.com/indigo-web/streamform/internal/strutil"
	"github.com/indigo-web/streamform/kv"
	"github.com/indigo-web/streamform/sink"
	"github.com/indigo-web/streamform/status"
	"github.com/indigo-web/utils/uf"
	json "github.com/json-iterator/go"
)

// Part is one field or file segment of a multipart body. Its headers are
// immutable once parsed, its payload lives in the exclusively owned sink.
type Part struct {
	headers  *kv.Storage
	name     string
	filename string
	isFile   bool
	size     int64
	sink     sink.Sink
	released bool
}

func newPart(headers *kv.Storage, snk sink.Sink) *Part {
	part := &Part{
		headers: headers,
		sink:    snk,
	}

	_, params := strutil.CutHeader(headers.Value("content-disposition"))
	for key, value := range strutil.WalkKV(params) {
		switch {
		case strutil.CmpFold(key, "name"):
			part.name = value
		case strutil.CmpFold(key, "filename"):
			part.filename = value
			part.isFile = true
		}
	}

	return part
}

// Name returns the form field name, taken from Content-Disposition.
func (p *Part) Name() string {
	return p.name
}

// Filename returns the client-reported file name, empty for non-file fields.
func (p *Part) Filename() string {
	return p.filename
}

// IsFile reports whether the part carried a filename attribute, i.e. came
// from a file input rather than a plain field.
func (p *Part) IsFile() bool {
	return p.isFile
}

// Size returns the number of payload bytes consumed so far.
func (p *Part) Size() int64 {
	return p.size
}

// Headers returns the part's header fields in arrival order.
func (p *Part) Headers() *kv.Storage {
	return p.headers
}

// Bytes returns the accumulated payload. Available once the part is
// finalized, i.e. after its closing boundary was parsed.
func (p *Part) Bytes() ([]byte, error) {
	return p.sink.Bytes()
}

func (p *Part) String() (string, error) {
	data, err := p.Bytes()
	return uf.B2S(data), err
}

// JSON deserializes the payload into the model. The part must carry an
// application/json content type.
func (p *Part) JSON(model any) error {
	contentType, _ := strutil.CutHeader(p.headers.Value("content-type"))
	if !strutil.CmpFold(strutil.RStripWS(contentType), "application/json") {
		return status.ErrNotJSON
	}

	data, err := p.Bytes()
	if err != nil {
		return err
	}

	iterator := json.ConfigDefault.BorrowIterator(data)
	iterator.ReadVal(model)
	err = iterator.Error
	json.ConfigDefault.ReturnIterator(iterator)

	return err
}

func (p *Part) append(data []byte) error {
	if err := p.sink.Append(data); err != nil {
		return err
	}

	p.size += int64(len(data))
	return nil
}

func (p *Part) finalize() error {
	return p.sink.Finalize()
}

func (p *Part) release() error {
	if p.released {
		return nil
	}

	p.released = true
	return p.sink.Release()
}
