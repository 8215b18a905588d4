// ABOUTME: Sentinel error for request validation failures

package request

import "errors"

// ErrInvalidRequest is wrapped by Validate's specific messages so callers
// can check with errors.Is(err, request.ErrInvalidRequest).
var ErrInvalidRequest = errors.New("invalid playlist request")
