package dashboard

import "github.com/kedarrpandya/foodbridge/internal/analytics"

// ReloadMsg carries a freshly loaded payload bundle, or the error that
// prevented loading it.
type ReloadMsg struct {
	Path   string
	Bundle *analytics.Bundle
	Err    error
}

// FileChangedMsg indicates that the payload file changed and the quiet
// period has passed.
type FileChangedMsg struct{}

// StoreChangedMsg indicates that toasts or the session changed.
type StoreChangedMsg struct{}

// pointerFlushMsg delivers pointer motion held back by the rate limit.
type pointerFlushMsg struct{}
