package export

import "errors"

// ErrUnsupportedFormat is returned for unknown serialization formats.
var ErrUnsupportedFormat = errors.New("unsupported format")
