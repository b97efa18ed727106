package goal

import "errors"

// ErrUnknownRelation indicates a relation token outside the supported set.
var ErrUnknownRelation = errors.New("unknown relation")
