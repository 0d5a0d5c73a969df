package feed

import "fmt"

// FetchError reports a failed feed download. It aborts the current run;
// the scheduler simply waits for the next tick.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error { return e.Err }

// FormatError reports a feed whose top-level shape is unusable. It aborts
// the current run before any item is processed.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("feed format: %s: %v", e.Reason, e.Err)
	}
	return "feed format: " + e.Reason
}

func (e *FormatError) Unwrap() error { return e.Err }

// ItemError reports a single unusable feed product. The run skips the item
// and continues.
type ItemError struct {
	Reason string
	Err    error
}

func (e *ItemError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *ItemError) Unwrap() error { return e.Err }
