package upload

import "context"

// Uploader stores a byte stream under a destination folder and returns a reference.
// Failures are returned as-is; callers decide whether to retry.
type Uploader interface {
	Upload(ctx context.Context, req Request) (Result, error)
}
