package wire

import (
	"fmt"

	"github.com/nmattia/docindex/internal/protoerr"
)

var (
	errCorruptHeader  = fmt.Errorf("wire: short header: %w", protoerr.ErrCorruptFrame)
	errCapacity       = fmt.Errorf("wire: %w", protoerr.ErrCapacityExceeded)
	errValueTooLarge  = fmt.Errorf("wire: %w", protoerr.ErrValueTooLarge)
	errU32Empty       = fmt.Errorf("wire: empty u32 argument: %w", protoerr.ErrTypeMismatch)
	errU32NonDigit    = fmt.Errorf("wire: non-digit in u32 argument: %w", protoerr.ErrTypeMismatch)
	errU32Overflow    = fmt.Errorf("wire: u32 argument overflows: %w", protoerr.ErrTypeMismatch)
	errU32BadLen      = fmt.Errorf("wire: u32 value must be exactly 4 bytes: %w", protoerr.ErrTypeMismatch)
	errStrTooLarge    = fmt.Errorf("wire: string argument too large: %w", protoerr.ErrValueTooLarge)
)
