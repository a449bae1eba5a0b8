package docstore

import (
	"fmt"

	"github.com/nmattia/docindex/internal/protoerr"
)

var (
	errFieldTooLong = fmt.Errorf("docstore: field exceeds fixed width: %w", protoerr.ErrStorage)
	errShortRecord  = fmt.Errorf("docstore: short record read: %w", protoerr.ErrStorage)
	errShortWrite   = fmt.Errorf("docstore: short write: %w", protoerr.ErrStorage)
	errTombstoned   = fmt.Errorf("docstore: document deleted: %w", protoerr.ErrNotFound)
	errKeyMismatch  = fmt.Errorf("docstore: stored key does not match requested key: %w", protoerr.ErrNotFound)
)
