package workflow

import "errors"

// Node failure sentinels. Each node wraps its underlying cause so callers
// can tell which stage of the pipeline failed.
var (
	ErrClassifyFailed  = errors.New("classify node failed")
	ErrAggregateFailed = errors.New("aggregate node failed")
	ErrReviewFailed    = errors.New("review node failed")
)
