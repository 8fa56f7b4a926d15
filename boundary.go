package streamform

import (
	"github.com/indigo-web/streamform/internal/strutil"
	"github.com/indigo-web/streamform/status"
)

// RFC 2046 limits the boundary token to 70 characters.
const maxBoundaryLength = 70

// ParseBoundary extracts the boundary token from a Content-Type header value,
// e.g. `multipart/form-data; boundary=----WebKitFormBoundary7MA4YWxkTrZu0gW`.
func ParseBoundary(contentType string) (string, error) {
	mediaType, params := strutil.CutHeader(contentType)
	if !strutil.CmpFold(strutil.RStripWS(mediaType), "multipart/form-data") {
		return "", status.ErrNotMultipart
	}

	for key, value := range strutil.WalkKV(params) {
		if strutil.CmpFold(key, "boundary") {
			if len(value) == 0 {
				return "", status.ErrMissingBoundary
			}
			if len(value) > maxBoundaryLength {
				return "", status.ErrBoundaryTooLong
			}

			return value, nil
		}
	}

	return "", status.ErrMissingBoundary
}
