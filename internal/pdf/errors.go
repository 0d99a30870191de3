// Package pdf converts rendered HTML to PDF and PNG artifacts via a headless
// browser, with post-processing for metadata, watermarks, and logos.
package pdf

import "fmt"

// RenderError represents a headless-browser launch, navigation, or capture
// failure. Not retried by the pipeline; callers may retry.
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
