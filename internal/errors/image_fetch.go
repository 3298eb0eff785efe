package errors

import (
	"errors"
	"fmt"
)

// ImageFetchError wraps any failure to download or decode a poster image.
type ImageFetchError struct {
	URL string
	Err error
}

func (e *ImageFetchError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("fetch image: %v", e.Err)
	}
	return fmt.Sprintf("fetch image %s: %v", e.URL, e.Err)
}

func (e *ImageFetchError) Unwrap() error {
	return e.Err
}

// NewImageFetchError creates an ImageFetchError for url caused by err.
func NewImageFetchError(url string, err error) *ImageFetchError {
	return &ImageFetchError{URL: url, Err: err}
}

// IsImageFetchError reports whether err is an ImageFetchError (even when wrapped).
func IsImageFetchError(err error) bool {
	var fetchErr *ImageFetchError
	return errors.As(err, &fetchErr)
}
