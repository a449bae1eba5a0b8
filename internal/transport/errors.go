package transport

import "errors"

var errShortFrame = errors.New("transport: frame length shorter than header")
